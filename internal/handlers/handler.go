package handlers

import (
	_ "writeoff_monitor/docs"
	"writeoff_monitor/internal/logger"
	"writeoff_monitor/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// run feed, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIdentity)
	{
		h.registerUnitRoutes(api)
		h.registerGridRoutes(api)
		h.registerMonitorRoutes(api)
		h.registerRunRoutes(api)
	}
}

func (h *Handler) registerUnitRoutes(api *gin.RouterGroup) {
	units := api.Group("/units")
	{
		units.GET("", h.listUnits)
		units.POST("", h.createUnit)
	}
}

func (h *Handler) registerGridRoutes(api *gin.RouterGroup) {
	grids := api.Group("/grids/:unit")
	{
		grids.GET("/weekday/:weekday", h.getWeekdayRows)
		// Body example: {"row":2,"column":6,"kind":"datetime","value":"12:05:00"}
		grids.PUT("/cells", h.putCell)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	monitor := api.Group("/monitor")
	{
		monitor.POST("/run", h.runMonitor)
		monitor.GET("/preview", h.previewMonitor)
	}
}

func (h *Handler) registerRunRoutes(api *gin.RouterGroup) {
	api.GET("/runs", h.getRuns)
}
