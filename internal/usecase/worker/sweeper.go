package worker

import (
	"context"
	"log/slog"
	"time"
)

// ExpirySweep cancels unpaid reservations whose payment window has elapsed.
type ExpirySweep interface {
	ExpireDue(ctx context.Context) (int, error)
}

// Sweeper periodically runs the expiry sweep. The sweep itself is the only
// transition out of payment_required by timeout; reads never mutate.
type Sweeper struct {
	sweep    ExpirySweep
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(sweep ExpirySweep, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until the context is cancelled. One sweep runs immediately so
// a restart does not leave overdue reservations waiting a full interval.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("expiry sweeper started", slog.Duration("interval", s.interval))

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if _, err := s.sweep.ExpireDue(ctx); err != nil {
		s.logger.Error("expiry sweep failed", slog.String("error", err.Error()))
	}
}
