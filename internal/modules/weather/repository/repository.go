package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

//go:embed sql/insert-delivery.sql
var insertDeliverySQL string

//go:embed sql/list-deliveries.sql
var listDeliveriesSQL string

//go:embed sql/get-last-delivery-by-status.sql
var getLastDeliveryByStatusSQL string

//go:embed sql/delete-deliveries-before.sql
var deleteDeliveriesBeforeSQL string

var ErrNotFound = errors.New("not found")

type DeliveryRepository interface {
	InsertDelivery(ctx context.Context, d types.Delivery) error
	// ListDeliveries returns the newest deliveries first.
	ListDeliveries(ctx context.Context, limit int) ([]types.Delivery, error)
	// LastDelivery returns ErrNotFound when no delivery has the given status.
	LastDelivery(ctx context.Context, status types.DeliveryStatus) (types.Delivery, error)
	DeleteDeliveriesBefore(ctx context.Context, before time.Time) (int64, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) DeliveryRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) InsertDelivery(ctx context.Context, d types.Delivery) error {
	_, err := r.db.ExecContext(ctx, insertDeliverySQL,
		d.ID,
		string(d.Trigger),
		string(d.Status),
		d.Subject,
		d.Recipients,
		d.Error,
		formatTime(d.StartedAt),
		formatTime(d.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *repositoryImpl) ListDeliveries(ctx context.Context, limit int) ([]types.Delivery, error) {
	rows, err := r.db.QueryContext(ctx, listDeliveriesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close deliveries rows", "error", err)
		}
	}()

	out := []types.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) LastDelivery(ctx context.Context, status types.DeliveryStatus) (types.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRowContext(ctx, getLastDeliveryByStatusSQL, string(status)))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Delivery{}, ErrNotFound
	}
	return d, err
}

func (r *repositoryImpl) DeleteDeliveriesBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteDeliveriesBeforeSQL, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("delete deliveries: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDelivery(s scanner) (types.Delivery, error) {
	var (
		d                 types.Delivery
		trigger, status   string
		started, finished string
	)
	if err := s.Scan(&d.ID, &trigger, &status, &d.Subject, &d.Recipients, &d.Error, &started, &finished); err != nil {
		return types.Delivery{}, err
	}
	d.Trigger = types.Trigger(trigger)
	d.Status = types.DeliveryStatus(status)

	var err error
	if d.StartedAt, err = parseTime(started); err != nil {
		return types.Delivery{}, err
	}
	if d.FinishedAt, err = parseTime(finished); err != nil {
		return types.Delivery{}, err
	}
	return d, nil
}

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		var err2 error
		t, err2 = time.Parse(time.RFC3339Nano, s)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: %w; RFC3339Nano: %w", s, err, err2)
		}
	}
	return t, nil
}
