package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ki-Sung/weather-email-service/internal/migrate"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close db: %v", closeErr)
		}
	})
	if err := migrate.Run(context.Background(), db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func delivery(id string, status types.DeliveryStatus, started time.Time) types.Delivery {
	return types.Delivery{
		ID:         id,
		Trigger:    types.TriggerSchedule,
		Status:     status,
		Subject:    "[Weather Notifier] Today's weather: Clear ☀️",
		Recipients: 2,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
	}
}

func TestListDeliveries_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	got, err := repo.ListDeliveries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListDeliveries: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("ListDeliveries = %#v, want empty non-nil slice", got)
	}
}

func TestInsertAndListDeliveries(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 4, 10, 7, 0, 0, 123456789, time.FixedZone("KST", 9*3600))

	for i, id := range []string{"a", "b", "c"} {
		d := delivery(id, types.DeliverySent, base.Add(time.Duration(i)*24*time.Hour))
		if err := repo.InsertDelivery(ctx, d); err != nil {
			t.Fatalf("InsertDelivery(%s): %v", id, err)
		}
	}

	got, err := repo.ListDeliveries(ctx, 2)
	if err != nil {
		t.Fatalf("ListDeliveries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListDeliveries: got %d rows, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("order = [%s %s], want [c b]", got[0].ID, got[1].ID)
	}

	want := delivery("c", types.DeliverySent, base.Add(48*time.Hour))
	if !got[0].StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got[0].StartedAt, want.StartedAt)
	}
	if !got[0].FinishedAt.Equal(want.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got[0].FinishedAt, want.FinishedAt)
	}
	if got[0].Subject != want.Subject || got[0].Recipients != 2 || got[0].Trigger != types.TriggerSchedule {
		t.Errorf("row = %+v, want %+v", got[0], want)
	}
}

func TestInsertDelivery_RejectsUnknownStatus(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	d := delivery("x", types.DeliveryStatus("lost"), time.Now())
	if err := repo.InsertDelivery(context.Background(), d); err == nil {
		t.Fatal("InsertDelivery error = nil, want constraint violation")
	}
}

func TestInsertDelivery_DuplicateID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	d := delivery("dup", types.DeliverySent, time.Now())
	if err := repo.InsertDelivery(ctx, d); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := repo.InsertDelivery(ctx, d); err == nil {
		t.Fatal("second insert error = nil, want non-nil")
	}
}

func TestLastDelivery(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)

	if _, err := repo.LastDelivery(ctx, types.DeliverySent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LastDelivery on empty log: err = %v, want ErrNotFound", err)
	}

	failed := delivery("f1", types.DeliveryFailed, base.Add(2*time.Hour))
	failed.Error = "fetch weather: unexpected status: 500"
	for _, d := range []types.Delivery{
		delivery("s1", types.DeliverySent, base),
		delivery("s2", types.DeliverySent, base.Add(time.Hour)),
		failed,
	} {
		if err := repo.InsertDelivery(ctx, d); err != nil {
			t.Fatalf("InsertDelivery(%s): %v", d.ID, err)
		}
	}

	got, err := repo.LastDelivery(ctx, types.DeliverySent)
	if err != nil {
		t.Fatalf("LastDelivery: %v", err)
	}
	if got.ID != "s2" {
		t.Errorf("LastDelivery(sent).ID = %q, want s2", got.ID)
	}

	got, err = repo.LastDelivery(ctx, types.DeliveryFailed)
	if err != nil {
		t.Fatalf("LastDelivery: %v", err)
	}
	if got.Error != failed.Error {
		t.Errorf("Error = %q, want %q", got.Error, failed.Error)
	}
}

func TestDeleteDeliveriesBefore(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)

	for i, id := range []string{"old1", "old2", "new"} {
		if err := repo.InsertDelivery(ctx, delivery(id, types.DeliverySent, base.AddDate(0, 0, i*30))); err != nil {
			t.Fatalf("InsertDelivery(%s): %v", id, err)
		}
	}

	n, err := repo.DeleteDeliveriesBefore(ctx, base.AddDate(0, 0, 45))
	if err != nil {
		t.Fatalf("DeleteDeliveriesBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	left, err := repo.ListDeliveries(ctx, 10)
	if err != nil {
		t.Fatalf("ListDeliveries: %v", err)
	}
	if len(left) != 1 || left[0].ID != "new" {
		t.Errorf("remaining = %+v, want only new", left)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-04-10T07:00:00.000000000Z", want: time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)},
		{in: "2025-04-10T07:00:00Z", want: time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)},
		{in: "2025-04-10T16:00:00+09:00", want: time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseTime(%q) error = nil, want non-nil", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTime(%q) error = %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
