package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// DeliveryRetention is how long delivery-log rows are kept.
const DeliveryRetention = 90 * 24 * time.Hour

// Pruner deletes delivery-log rows older than a cutoff.
type Pruner interface {
	DeleteDeliveriesBefore(ctx context.Context, before time.Time) (int64, error)
}

// Housekeeper returns freed heap to the OS and prunes the delivery log.
type Housekeeper struct {
	pruner Pruner
	rss    func(ctx context.Context) (uint64, error)
	now    func() time.Time
	logger *slog.Logger
}

// NewHousekeeper creates a housekeeper; pruner may be nil.
func NewHousekeeper(pruner Pruner, logger *slog.Logger) *Housekeeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Housekeeper{
		pruner: pruner,
		rss:    processRSS,
		now:    time.Now,
		logger: logger,
	}
}

func (h *Housekeeper) Run(ctx context.Context) {
	before, beforeErr := h.rss(ctx)
	debug.FreeOSMemory()
	after, afterErr := h.rss(ctx)

	if beforeErr != nil || afterErr != nil {
		h.logger.Warn("memory stats unavailable", "error", firstErr(beforeErr, afterErr))
	} else {
		h.logger.Info("memory cleanup",
			"rss_before_mb", toMB(before),
			"rss_after_mb", toMB(after),
			"freed_mb", toMB(before)-toMB(after),
		)
	}

	if h.pruner == nil {
		return
	}
	cutoff := h.now().Add(-DeliveryRetention)
	n, err := h.pruner.DeleteDeliveriesBefore(ctx, cutoff)
	if err != nil {
		h.logger.Error("prune delivery log", "error", err)
		return
	}
	if n > 0 {
		h.logger.Info("delivery log pruned", "rows", n, "before", cutoff.Format(time.RFC3339))
	}
}

func processRSS(ctx context.Context) (uint64, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, fmt.Errorf("process handle: %w", err)
	}
	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("memory info: %w", err)
	}
	return mem.RSS, nil
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
