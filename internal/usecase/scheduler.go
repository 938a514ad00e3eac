package usecase

import (
	"context"
	"time"

	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

// Scheduler drives the monitor on a fixed interval. One cycle always runs to
// completion before the next tick is considered; cancellation is observed
// only at the tick boundary, never mid-cycle.
type Scheduler struct {
	monitor  *MonitorService
	interval time.Duration
	logger   *logging.Logger
}

func NewScheduler(monitor *MonitorService, interval time.Duration, logger *logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		monitor:  monitor,
		interval: interval,
		logger:   logger,
	}
}

// Run executes the first cycle immediately, then once per interval until ctx
// is cancelled. A failed cycle is logged and retried on the next tick; the
// loop itself never exits on cycle failure.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("sync loop starting", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// A started cycle runs to completion even when ctx is cancelled mid-way;
	// the cancel is honoured at the select below.
	cycleCtx := context.WithoutCancel(ctx)

	for {
		if _, err := s.monitor.CheckOnce(cycleCtx); err != nil {
			s.logger.Error("check failed, will retry on next interval", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("sync loop stopping")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
