package components

import (
	"context"
	"log/slog"

	"brow-studio-api/internal/pkg/config"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/internal/usecase/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(rc commands.ReservationCommands, cfg config.Config, logger *slog.Logger) *worker.Sweeper {
			return worker.NewSweeper(rc, cfg.Booking.SweepInterval, logger)
		},
		func(sc commands.SlotCommands, cfg config.Config, logger *slog.Logger) *worker.Materializer {
			return worker.NewMaterializer(sc, cfg.Booking.MaterializeInterval, logger)
		},
	),
	fx.Invoke(StartWorkers),
)

// StartWorkers runs the sweeper and materializer loops for the lifetime of
// the process. Both exit when the app context is cancelled.
func StartWorkers(lc fx.Lifecycle, sweeper *worker.Sweeper, materializer *worker.Materializer) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go sweeper.Run(ctx)
			go materializer.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
