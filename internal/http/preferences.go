package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/database/preferences"
	"github.com/mrlokans/bookstack/internal/services"
)

// PreferencesLibrary reads and changes a user's engine configuration.
type PreferencesLibrary interface {
	Preferences(userID uint) (preferences.Settings, error)
	UpdatePreferences(userID uint, update services.PreferencesUpdate) (services.UpdateResult, error)
	RecomputeScores(userID uint) (services.RescoreResult, error)
}

type PreferencesController struct {
	library PreferencesLibrary
}

func NewPreferencesController(library PreferencesLibrary) *PreferencesController {
	return &PreferencesController{library: library}
}

// Get handles GET /api/preferences.
func (pc *PreferencesController) Get(c *gin.Context) {
	settings, err := pc.library.Preferences(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "load preferences")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/preferences. Omitted sections are kept; a changed
// formula rescores the library.
func (pc *PreferencesController) Update(c *gin.Context) {
	var update services.PreferencesUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := pc.library.UpdatePreferences(GetUserID(c), update)
	if err != nil {
		respondServiceError(c, err, "update preferences")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Rescore handles POST /api/preferences/rescore.
func (pc *PreferencesController) Rescore(c *gin.Context) {
	result, err := pc.library.RecomputeScores(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "rescore")
		return
	}
	respondSuccess(c, "scores recomputed", result)
}
