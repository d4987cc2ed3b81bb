package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`

	// DemoMode is true when writes are rejected by the demo guard.
	DemoMode bool `json:"demo_mode"`
}

// SchedulerStatus reports whether the integrity audit scheduler is active.
type SchedulerStatus interface {
	IsRunning() bool
}

type HealthController struct {
	db        *database.Database
	scheduler SchedulerStatus
	version   string
	demoMode  bool
}

// NewHealthController creates the controller. scheduler may be nil.
func NewHealthController(db *database.Database, scheduler SchedulerStatus, version string) *HealthController {
	return &HealthController{
		db:        db,
		scheduler: scheduler,
		version:   version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	switch {
	case h.scheduler == nil:
		checks["integrity_scheduler"] = "not configured"
	case h.scheduler.IsRunning():
		checks["integrity_scheduler"] = "running"
	default:
		checks["integrity_scheduler"] = "stopped"
	}

	health := HealthResponse{
		Status:   status,
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Checks:   checks,
		DemoMode: h.demoMode,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
