package components

import (
	"brow-studio-api/internal/handler"
	"brow-studio-api/internal/handler/api"
	"brow-studio-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSlotHandler,
		api.NewReservationHandler,
		api.NewKycHandler,
		api.NewNotificationHandler,
		api.NewRegionHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	slot *api.SlotHandler,
	reservation *api.ReservationHandler,
	kyc *api.KycHandler,
	notification *api.NotificationHandler,
	region *api.RegionHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Slot:         slot,
		Reservation:  reservation,
		Kyc:          kyc,
		Notification: notification,
		Region:       region,
	}
}
