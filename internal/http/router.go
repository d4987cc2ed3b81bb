package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/demo"
	"github.com/mrlokans/bookstack/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies left nil disable their routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.Recovery())

	// Authentication is handled upstream; single-user mode.
	router.Use(DefaultUserMiddleware())

	demoMode := demo.NewMiddleware(cfg.DemoMode)
	router.Use(demoMode.Handler())

	health := NewHealthController(cfg.Database, cfg.AuditScheduler, cfg.Version)
	health.demoMode = demoMode.IsEnabled()
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	booksController := NewBooksController(cfg.Library)
	api.GET("/books", booksController.GetAllBooks)
	api.GET("/books/stats/toread", booksController.GetToReadStats)
	api.POST("/books/preview-score", booksController.PreviewScore)

	analyticsController := NewAnalyticsController(cfg.Library)
	api.GET("/analytics", analyticsController.Dashboard)
	api.GET("/analytics/timeline", analyticsController.Timeline)
	api.GET("/analytics/distributions", analyticsController.Distributions)
	api.GET("/analytics/insights", analyticsController.Insights)

	integrityController := NewIntegrityController(cfg.Library, cfg.SettingsStore, cfg.AuditScheduler)
	api.GET("/integrity", integrityController.Report)
	if cfg.Archive != nil {
		integrityController.archive = cfg.Archive
		api.GET("/integrity/reports", integrityController.ListReports)
		api.GET("/integrity/reports/:name", integrityController.GetReport)
	}
	if cfg.SettingsStore != nil {
		api.GET("/integrity/schedule", integrityController.GetSchedule)
		api.PUT("/integrity/schedule", integrityController.UpdateSchedule)
		api.DELETE("/integrity/schedule", integrityController.ResetSchedule)
	}
	if cfg.AuditScheduler != nil {
		api.POST("/integrity/run", integrityController.RunNow)
	}

	preferencesController := NewPreferencesController(cfg.Library)
	api.GET("/preferences", preferencesController.Get)
	api.PUT("/preferences", preferencesController.Update)
	api.POST("/preferences/rescore", preferencesController.Rescore)

	if cfg.Events != nil {
		auditController := NewAuditController(cfg.Events)
		api.GET("/audit/events", auditController.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}

// RequestLogger logs each request through zerolog.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logging.Info()
		if status >= 500 {
			event = logging.Error()
		} else if status >= 400 {
			event = logging.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
