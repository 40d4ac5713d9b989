package components

import (
	"time"

	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/infra/readstore"
	"brow-studio-api/internal/infra/repository"
	"brow-studio-api/internal/pkg/config"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/internal/usecase/queries"
	"brow-studio-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewDisplayLocation,
		fx.Annotate(
			shared.NewPgxTxManager,
			fx.As(new(shared.TxManager)),
		),
	),
	repositoryModule,
	readstoreModule,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repository.NewSlotRepository,
			fx.As(new(commands.SlotRepository)),
		),
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewKycRepository,
			fx.As(new(commands.KycRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
	),
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		func(dbtx db.DBTX, loc *time.Location, cfg config.Config) queries.ReservationReadStore {
			return readstore.NewReservationReadStore(dbtx, loc, cfg.Booking.ApprovalWindow)
		},
		fx.Annotate(
			readstore.NewKycReadStore,
			fx.As(new(queries.KycReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewDisplayLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Booking.DisplayTimeZone)
}
