// Package service runs one daily delivery end to end: fetch, analyse, render,
// send, publish, record.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Ki-Sung/weather-email-service/internal/config"
	"github.com/Ki-Sung/weather-email-service/internal/mailer"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/analysis"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/provider"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/repository"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/views"
)

var ErrRunInProgress = errors.New("delivery already in progress")

// SummaryPublisher receives every successfully built summary.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, s types.DailySummary) error
}

type Service struct {
	source     provider.Source
	sender     mailer.Sender
	repository repository.DeliveryRepository
	publisher  SummaryPublisher

	locationName      string
	loc               *time.Location
	sendFailureNotice bool
	now               func() time.Time
	logger            *slog.Logger

	// held for the duration of a run; concurrent triggers are rejected
	running sync.Mutex
}

// NewService wires the delivery pipeline. publisher may be nil.
func NewService(
	cfg config.Config,
	source provider.Source,
	sender mailer.Sender,
	repo repository.DeliveryRepository,
	publisher SummaryPublisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Timezone
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		source:            source,
		sender:            sender,
		repository:        repo,
		publisher:         publisher,
		locationName:      cfg.LocationName,
		loc:               loc,
		sendFailureNotice: cfg.SendFailureNotice,
		now:               time.Now,
		logger:            logger,
	}
}

// Summary fetches current data and builds today's summary without sending anything.
func (s *Service) Summary(ctx context.Context) (types.DailySummary, error) {
	weather, air, err := s.fetch(ctx)
	if err != nil {
		return types.DailySummary{}, err
	}
	return analysis.BuildSummary(weather, air, s.now().In(s.loc))
}

// Preview renders the mail that a run would send right now into w.
func (s *Service) Preview(ctx context.Context, w io.Writer) error {
	summary, err := s.Summary(ctx)
	if err != nil {
		return err
	}
	msg, err := s.renderEmail(summary, analysis.Compose(summary))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, msg.HTML)
	return err
}

func (s *Service) Deliveries(ctx context.Context, limit int) ([]types.Delivery, error) {
	return s.repository.ListDeliveries(ctx, limit)
}

// Run performs one delivery and records it in the delivery log. When the
// weather data cannot be loaded, a failure notice is mailed instead if enabled.
// The returned error is nil only for a delivered daily mail or failure notice.
func (s *Service) Run(ctx context.Context, trigger types.Trigger) (types.Delivery, error) {
	if !s.running.TryLock() {
		return types.Delivery{}, ErrRunInProgress
	}
	defer s.running.Unlock()

	d := types.Delivery{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: s.now(),
	}
	logger := s.logger.With("delivery_id", d.ID, "trigger", string(trigger))
	logger.Info("delivery started")

	err := s.deliver(ctx, logger, &d)
	d.FinishedAt = s.now()
	if err != nil {
		d.Status = types.DeliveryFailed
		d.Error = err.Error()
	}

	// record even when the caller's context was canceled mid-run
	if recErr := s.repository.InsertDelivery(context.WithoutCancel(ctx), d); recErr != nil {
		logger.Error("record delivery", "error", recErr)
	}

	if err != nil {
		logger.Error("delivery failed", "error", err)
		return d, err
	}
	logger.Info("delivery finished",
		"status", string(d.Status),
		"recipients", d.Recipients,
		"duration_ms", d.FinishedAt.Sub(d.StartedAt).Milliseconds(),
	)
	return d, nil
}

func (s *Service) deliver(ctx context.Context, logger *slog.Logger, d *types.Delivery) error {
	weather, air, fetchErr := s.fetch(ctx)
	if fetchErr != nil {
		logger.Warn("weather fetch failed", "error", fetchErr)
	}

	summary, err := analysis.BuildSummary(weather, air, d.StartedAt.In(s.loc))
	if err != nil {
		cause := err
		if fetchErr != nil {
			cause = fmt.Errorf("%w: %w", err, fetchErr)
		}
		return s.deliverFailureNotice(ctx, d, cause)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSummary(ctx, summary); err != nil {
			logger.Warn("publish summary", "error", err)
		}
	}

	content := analysis.Compose(summary)
	msg, err := s.renderEmail(summary, content)
	if err != nil {
		return err
	}
	d.Subject = msg.Subject

	n, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send daily mail: %w", err)
	}
	d.Recipients = n
	d.Status = types.DeliverySent
	return nil
}

func (s *Service) deliverFailureNotice(ctx context.Context, d *types.Delivery, cause error) error {
	if !s.sendFailureNotice {
		return cause
	}

	content := analysis.FailureContent()
	var buf bytes.Buffer
	err := views.RenderFailure(&buf, &views.FailureData{
		LocationName: s.locationName,
		Date:         d.StartedAt.In(s.loc).Format("Monday, January 2, 2006"),
		Subject:      content.Subject,
	})
	if err != nil {
		return fmt.Errorf("render failure notice: %w", err)
	}
	d.Subject = content.Subject

	n, err := s.sender.Send(ctx, mailer.Message{Subject: content.Subject, HTML: buf.String()})
	if err != nil {
		return fmt.Errorf("send failure notice: %w (after %w)", err, cause)
	}
	d.Recipients = n
	d.Status = types.DeliveryFailureNotice
	d.Error = cause.Error()
	return nil
}

// fetch loads both payloads concurrently. An air-quality failure only drops
// the air-quality payload.
func (s *Service) fetch(ctx context.Context) (*types.WeatherPayload, *types.AirQualityPayload, error) {
	var (
		weather *types.WeatherPayload
		air     *types.AirQualityPayload
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.source.FetchWeather(gctx)
		if err != nil {
			return err
		}
		weather = w
		return nil
	})
	g.Go(func() error {
		a, err := s.source.FetchAirQuality(gctx)
		if err != nil {
			s.logger.Warn("air quality fetch failed", "error", err)
			return nil
		}
		air = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return weather, air, nil
}

func (s *Service) renderEmail(summary types.DailySummary, content analysis.Content) (mailer.Message, error) {
	var buf bytes.Buffer
	if err := views.RenderEmail(&buf, views.NewEmailData(s.locationName, summary, content, s.loc)); err != nil {
		return mailer.Message{}, fmt.Errorf("render daily mail: %w", err)
	}
	return mailer.Message{Subject: content.Subject, HTML: buf.String()}, nil
}
