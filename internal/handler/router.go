package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"innkeeper/internal/handler/api"
	"innkeeper/internal/handler/middleware"
	"innkeeper/internal/infra/metrics"
	"innkeeper/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation *api.ReservationHandler
	Folio       *api.FolioHandler
	Room        *api.RoomHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, m *metrics.Metrics, h Handlers) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, m, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(m.Middleware())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, m *metrics.Metrics, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Reservation.Confirm},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: h.Reservation.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: h.Reservation.CheckOut},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
				{Method: http.MethodGet, Path: "/:id/folio", Handler: h.Folio.Get},
				{Method: http.MethodPost, Path: "/:id/consumptions", Handler: h.Folio.AddConsumption},
				{Method: http.MethodPost, Path: "/:id/extra-charges", Handler: h.Folio.AddExtraCharge},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: h.Folio.Settle},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodDelete, Path: "/consumptions/:id", Handler: h.Folio.RemoveConsumption},
			{Method: http.MethodGet, Path: "/availability", Handler: h.Room.Availability},
		})

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Room.Register},
				{Method: http.MethodGet, Path: "", Handler: h.Room.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Room.Get},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Room.UpdateStatus},
				{Method: http.MethodGet, Path: "/:id/claims", Handler: h.Room.Claims},
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
