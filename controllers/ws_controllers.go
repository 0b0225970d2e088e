package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are enforced by the CORS layer and the token check
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSController struct {
	Hub   *notify.Hub
	Prefs *services.PreferenceService
}

func NewWSController(hub *notify.Hub, prefs *services.PreferenceService) *WSController {
	return &WSController{Hub: hub, Prefs: prefs}
}

// Handle -> staff dashboard websocket. The connection only receives events.
func (wc *WSController) Handle(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)
	if role != models.RoleAdmin && role != models.RoleStaff {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	userID := middlewares.UserID(c)
	sound := true
	if pref, err := wc.Prefs.Effective(userID); err != nil {
		utils.ErrorLogger.Printf("Error loading preferences for websocket client: %v", err)
	} else {
		sound = pref.SoundNotificationEnabled
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	wc.Hub.Register(ws, role, userID, sound)
	utils.InfoLogger.Printf("Websocket client connected (role=%s, clients=%d)", role, wc.Hub.ClientCount())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	wc.Hub.Unregister(ws)
	utils.InfoLogger.Printf("Websocket client disconnected (role=%s)", role)
}
