package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"brow-studio-api/internal/handler/api"
	"brow-studio-api/internal/handler/middleware"
	"brow-studio-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Slot         *api.SlotHandler
	Reservation  *api.ReservationHandler
	Kyc          *api.KycHandler
	Notification *api.NotificationHandler
	Region       *api.RegionHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		regions := apiGroup.Group("/regions")
		{
			addRoutes(regions, []route{
				{Method: http.MethodGet, Path: "/provinces", Handler: h.Region.ListProvinces},
				{Method: http.MethodGet, Path: "/provinces/:province/districts", Handler: h.Region.ListDistricts},
				{Method: http.MethodGet, Path: "/provinces/:province/districts/:district/subdistricts", Handler: h.Region.ListSubDistricts},
			})
		}

		slots := apiGroup.Group("/slots")
		slots.Use(authMiddleware.RequireAuth())
		{
			addRoutes(slots, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Slot.ListAvailable},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "/me", Handler: h.Reservation.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPost, Path: "/:id/confirm-payment", Handler: h.Reservation.ConfirmPayment},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
			})
		}

		kyc := apiGroup.Group("/kyc")
		kyc.Use(authMiddleware.RequireAuth())
		{
			addRoutes(kyc, []route{
				{Method: http.MethodPut, Path: "/me", Handler: h.Kyc.Submit},
				{Method: http.MethodGet, Path: "/me", Handler: h.Kyc.GetMine},
				{Method: http.MethodPost, Path: "/me/acknowledge-notice", Handler: h.Kyc.AcknowledgeNotice},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Notification.ListFeed},
				{Method: http.MethodGet, Path: "/unread-count", Handler: h.Notification.CountUnread},
				{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
				{Method: http.MethodPost, Path: "/read-all", Handler: h.Notification.MarkAllRead},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/slots", Handler: h.Slot.ListAll},
				{Method: http.MethodPost, Path: "/slots", Handler: h.Slot.CreateSlots},
				{Method: http.MethodPost, Path: "/slots/templates", Handler: h.Slot.CreateTemplate},
				{Method: http.MethodPost, Path: "/slots/materialize", Handler: h.Slot.Materialize},
				{Method: http.MethodDelete, Path: "/slots/:id", Handler: h.Slot.Delete},

				{Method: http.MethodGet, Path: "/reservations", Handler: h.Reservation.ListAll},
				{Method: http.MethodPost, Path: "/reservations/:id/approve", Handler: h.Reservation.Approve},
				{Method: http.MethodPost, Path: "/reservations/:id/reject", Handler: h.Reservation.Reject},
				{Method: http.MethodDelete, Path: "/reservations/:id", Handler: h.Reservation.AdminDelete},

				{Method: http.MethodGet, Path: "/notifications", Handler: h.Notification.ListFeed},

				{Method: http.MethodGet, Path: "/kyc", Handler: h.Kyc.ListAll},
				{Method: http.MethodGet, Path: "/kyc/:userId", Handler: h.Kyc.GetByUserID},
				{Method: http.MethodPost, Path: "/kyc/:userId/approve", Handler: h.Kyc.Approve},
				{Method: http.MethodPost, Path: "/kyc/:userId/reject", Handler: h.Kyc.Reject},
				{Method: http.MethodPost, Path: "/kyc/:userId/procedure/start", Handler: h.Kyc.StartProcedure},
				{Method: http.MethodPost, Path: "/kyc/:userId/procedure/complete", Handler: h.Kyc.CompleteProcedure},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
