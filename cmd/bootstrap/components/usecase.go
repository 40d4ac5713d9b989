package components

import (
	"log/slog"
	"time"

	"brow-studio-api/internal/infra/mailer"
	"brow-studio-api/internal/infra/redispub"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/config"
	"brow-studio-api/internal/pkg/metrics"
	"brow-studio-api/internal/usecase"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/internal/usecase/queries"
	"brow-studio-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	metrics.New,
	fx.Annotate(
		redispub.NewPublisher,
		fx.As(new(commands.EventPublisher)),
	),
	fx.Annotate(
		mailer.NewConsoleMailer,
		fx.As(new(commands.Mailer)),
	),
	commands.NewNotifier,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewNotificationCommands,
		commands.NewKycCommands,
		func(
			slotRepo commands.SlotRepository,
			tx shared.TxManager,
			clk clock.Clock,
			m *metrics.Metrics,
			logger *slog.Logger,
			cfg config.Config,
			loc *time.Location,
		) commands.SlotCommands {
			return commands.NewSlotCommands(slotRepo, tx, clk, m, logger, cfg.Booking.MaterializeHorizon, loc)
		},
		func(
			reservationRepo commands.ReservationRepository,
			slotRepo commands.SlotRepository,
			userRepo commands.UserRepository,
			kycRepo commands.KycRepository,
			notifier *commands.Notifier,
			tx shared.TxManager,
			clk clock.Clock,
			m *metrics.Metrics,
			logger *slog.Logger,
			cfg config.Config,
		) commands.ReservationCommands {
			return commands.NewReservationCommands(
				reservationRepo, slotRepo, userRepo, kycRepo, notifier,
				tx, clk, m, logger, cfg.Booking.PaymentWindow,
			)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewReservationQueries,
		queries.NewKycQueries,
		queries.NewNotificationQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
