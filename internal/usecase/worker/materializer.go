package worker

import (
	"context"
	"log/slog"
	"time"
)

// TemplateExpansion turns recurring templates into concrete bookable slots.
type TemplateExpansion interface {
	MaterializeTemplates(ctx context.Context) (int64, error)
}

// Materializer keeps the rolling horizon of concrete slots topped up. The
// expansion is idempotent, so overlapping runs with the admin endpoint are
// harmless.
type Materializer struct {
	expand   TemplateExpansion
	interval time.Duration
	logger   *slog.Logger
}

func NewMaterializer(expand TemplateExpansion, interval time.Duration, logger *slog.Logger) *Materializer {
	return &Materializer{
		expand:   expand,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until the context is cancelled, expanding once at startup and
// then on every tick.
func (m *Materializer) Run(ctx context.Context) {
	m.logger.Info("template materializer started", slog.Duration("interval", m.interval))

	m.runOnce(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("template materializer stopped")
			return
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Materializer) runOnce(ctx context.Context) {
	if _, err := m.expand.MaterializeTemplates(ctx); err != nil {
		m.logger.Error("template materialization failed", slog.String("error", err.Error()))
	}
}
