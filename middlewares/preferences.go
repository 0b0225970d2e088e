package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// Preferences resolves the effective preference record for the caller and
// attaches it to the request context. Anonymous callers get the venue record.
func Preferences(prefs *services.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pref, err := prefs.Effective(UserID(c))
		if err != nil {
			utils.ErrorLogger.Printf("Error loading preferences: %v", err)
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(utils.WithPreferences(c.Request.Context(), pref))
		c.Next()
	}
}
