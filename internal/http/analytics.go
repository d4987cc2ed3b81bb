package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/analytics"
	"github.com/mrlokans/bookstack/internal/services"
)

// AnalyticsLibrary is what the analytics endpoints need from the library service.
type AnalyticsLibrary interface {
	Dashboard(userID uint) (*analytics.Dashboard, error)
	Timeline(userID uint, g analytics.Granularity) (services.TimelineView, error)
	Distributions(userID uint) (services.DistributionsView, error)
	Insights(userID uint) (analytics.Insights, error)
}

// AnalyticsController serves the derived views of a library.
type AnalyticsController struct {
	library AnalyticsLibrary
}

func NewAnalyticsController(library AnalyticsLibrary) *AnalyticsController {
	return &AnalyticsController{library: library}
}

// Dashboard handles GET /api/analytics.
func (ac *AnalyticsController) Dashboard(c *gin.Context) {
	dashboard, err := ac.library.Dashboard(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Timeline handles GET /api/analytics/timeline?granularity=month|year.
func (ac *AnalyticsController) Timeline(c *gin.Context) {
	g, err := analytics.ParseGranularity(c.DefaultQuery("granularity", string(analytics.Monthly)))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	view, err := ac.library.Timeline(GetUserID(c), g)
	if err != nil {
		respondInternalError(c, err, "timeline")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Distributions handles GET /api/analytics/distributions.
func (ac *AnalyticsController) Distributions(c *gin.Context) {
	view, err := ac.library.Distributions(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "distributions")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Insights handles GET /api/analytics/insights.
func (ac *AnalyticsController) Insights(c *gin.Context) {
	insights, err := ac.library.Insights(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "insights")
		return
	}
	c.JSON(http.StatusOK, insights)
}
