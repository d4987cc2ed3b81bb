package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/database/audit"
	"github.com/mrlokans/bookstack/internal/entities"
)

// EventReader pages through the event log.
type EventReader interface {
	GetEvents(f audit.Filter) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	events EventReader
}

func NewAuditController(events EventReader) *AuditController {
	return &AuditController{
		events: events,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit/events?type=&status=&since=&page=&limit=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page := parseIntQuery(c, "page", 1, 1, 1<<20)
	limit := parseIntQuery(c, "limit", 25, 1, 100)

	filter := audit.Filter{
		UserID:    GetUserID(c),
		EventType: entities.AuditEventType(c.Query("type")),
		Status:    entities.AuditStatus(c.Query("status")),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if since := c.Query("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondBadRequest(c, "since must be an RFC3339 timestamp")
			return
		}
		filter.Since = ts
	}

	events, total, err := ac.events.GetEvents(filter)
	if err != nil {
		respondInternalError(c, err, "audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     filter.Offset,
		HasMore:    int64(filter.Offset+len(events)) < total,
		TotalPages: totalPages,
	})
}
