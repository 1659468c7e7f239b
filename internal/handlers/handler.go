package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"brewery_dashboard/internal/logger"
	"brewery_dashboard/internal/service"
)

// Config tunes the HTTP layer. Zero values fall back to defaults.
type Config struct {
	// ManualRefreshEvery is the minimum gap between accepted POST /refresh calls.
	ManualRefreshEvery time.Duration
	// StreamInterval is the default /ws poll interval.
	StreamInterval time.Duration
}

const (
	defaultManualRefreshEvery = 10 * time.Second
	defaultStreamInterval     = 5 * time.Second
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	refreshLimiter *rate.Limiter
	streamInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if cfg.ManualRefreshEvery <= 0 {
		cfg.ManualRefreshEvery = defaultManualRefreshEvery
	}
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = defaultStreamInterval
	}
	return &Handler{
		services:       services,
		log:            log,
		refreshLimiter: rate.NewLimiter(rate.Every(cfg.ManualRefreshEvery), 1),
		streamInterval: cfg.StreamInterval,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// snapshot stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerVesselRoutes(api)
		api.POST("/refresh", h.manualRefresh)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerVesselRoutes(api *gin.RouterGroup) {
	vessels := api.Group("/vessels")
	{
		vessels.GET("", h.listVessels)
		vessels.GET("/:id", h.getVessel)
		// Body example: {"dex_count":1,"fruit_volume":50}
		vessels.PUT("/:id/adjustment", h.setAdjustment)
		vessels.DELETE("/:id/adjustment", h.clearAdjustment)
	}
}
