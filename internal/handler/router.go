package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"viewing-scheduler/internal/handler/api"
	"viewing-scheduler/internal/handler/middleware"
	"viewing-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, availabilityHandler *api.AvailabilityHandler, viewingHandler *api.ViewingHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, availabilityHandler, viewingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, availabilityHandler *api.AvailabilityHandler, viewingHandler *api.ViewingHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		availability := apiGroup.Group("/availability")
		availability.Use(authMiddleware.RequireAuth())
		{
			addRoutes(availability, []route{
				{Method: http.MethodPut, Path: "", Handler: availabilityHandler.SetAvailability},
				{Method: http.MethodGet, Path: "", Handler: availabilityHandler.GetAvailability},
				{Method: http.MethodGet, Path: "/slots", Handler: availabilityHandler.GetAvailableSlots},
			})
		}

		viewings := apiGroup.Group("/viewings")
		viewings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(viewings, []route{
				{Method: http.MethodPost, Path: "", Handler: viewingHandler.BookViewing},
				{Method: http.MethodGet, Path: "", Handler: viewingHandler.ListViewings},
				{Method: http.MethodGet, Path: "/:id", Handler: viewingHandler.GetViewing},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: viewingHandler.RescheduleViewing},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: viewingHandler.CancelViewing},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: viewingHandler.ConfirmViewing},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: viewingHandler.CompleteViewing},
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
