package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type PreferenceController struct {
	Prefs *services.PreferenceService
}

func NewPreferenceController(prefs *services.PreferenceService) *PreferenceController {
	return &PreferenceController{Prefs: prefs}
}

// GetPreferences -> the effective record resolved by the Preferences middleware
func (pc *PreferenceController) GetPreferences(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Preferences", utils.PreferencesFrom(c.Request.Context()))
}

func (pc *PreferenceController) UpdatePreferences(c *gin.Context) {
	var patch services.PreferencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pref, err := pc.Prefs.Update(middlewares.UserID(c), patch)
	if err != nil {
		respondServiceError(c, "update preferences", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Preferences updated", pref)
}
