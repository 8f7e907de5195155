// Package scheduler triggers the daily delivery and periodic housekeeping.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Ki-Sung/weather-email-service/internal/config"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

// midnightSpec runs housekeeping once a day regardless of deliveries.
const midnightSpec = "0 0 * * *"

type Runner interface {
	Run(ctx context.Context, trigger types.Trigger) (types.Delivery, error)
}

type Scheduler struct {
	cron            *cron.Cron
	dailyID         cron.EntryID
	runner          Runner
	housekeeper     *Housekeeper
	cleanupInterval time.Duration
	now             func() time.Time
	logger          *slog.Logger

	mu          sync.Mutex
	ctx         context.Context
	lastCleanup time.Time
}

func New(cfg config.Config, runner Runner, housekeeper *Housekeeper, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Timezone
	if loc == nil {
		loc = time.UTC
	}
	spec, err := DailySpec(cfg.ScheduleTime)
	if err != nil {
		return nil, err
	}

	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:          runner,
		housekeeper:     housekeeper,
		cleanupInterval: cfg.CleanupInterval,
		now:             time.Now,
		logger:          logger,
		ctx:             context.Background(),
	}

	if s.dailyID, err = s.cron.AddFunc(spec, s.runDaily); err != nil {
		return nil, fmt.Errorf("schedule delivery %q: %w", spec, err)
	}
	if _, err := s.cron.AddFunc(midnightSpec, s.cleanup); err != nil {
		return nil, fmt.Errorf("schedule housekeeping: %w", err)
	}
	return s, nil
}

// DailySpec converts an HH:MM time of day into a five-field cron spec.
func DailySpec(hhmm string) (string, error) {
	hour, minute, err := config.ParseClock(hhmm)
	if err != nil {
		return "", fmt.Errorf("invalid schedule time: %w", err)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// Start runs housekeeping once and starts the cron loop. Jobs run with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cleanup()
	s.cron.Start()
	s.logger.Info("scheduler started", "next_delivery", s.NextRun().Format(time.RFC3339))
}

// Stop stops scheduling and waits for running jobs up to ctx, then runs a
// final housekeeping pass.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		return fmt.Errorf("waiting for scheduled jobs: %w", ctx.Err())
	}
	s.cleanup()
	return nil
}

// NextRun reports when the daily delivery fires next.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.dailyID).Next
}

func (s *Scheduler) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Scheduler) runDaily() {
	ctx := s.jobContext()
	if _, err := s.runner.Run(ctx, types.TriggerSchedule); err != nil {
		s.logger.Error("scheduled delivery failed", "error", err)
	}
	s.maybeCleanup()
}

// maybeCleanup runs housekeeping when cleanupInterval has passed since the last one.
func (s *Scheduler) maybeCleanup() {
	s.mu.Lock()
	due := s.now().Sub(s.lastCleanup) > s.cleanupInterval
	s.mu.Unlock()
	if due {
		s.cleanup()
	}
}

func (s *Scheduler) cleanup() {
	if s.housekeeper != nil {
		s.housekeeper.Run(context.WithoutCancel(s.jobContext()))
	}
	s.mu.Lock()
	s.lastCleanup = s.now()
	s.mu.Unlock()
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
