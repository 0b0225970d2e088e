package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

var errWaiterSystemDisabled = errors.New("waiter call system is disabled")

type WaiterCallController struct {
	DB  *gorm.DB
	Pub notify.Publisher
}

func NewWaiterCallController(db *gorm.DB, pub notify.Publisher) *WaiterCallController {
	if pub == nil {
		pub = notify.Nop{}
	}
	return &WaiterCallController{DB: db, Pub: pub}
}

// GetPendingCalls -> unresolved calls, newest first
func (wc *WaiterCallController) GetPendingCalls(c *gin.Context) {
	var calls []models.WaiterCall
	if err := wc.DB.Where("status = ?", models.WaiterCallPending).
		Order("called_at desc").
		Find(&calls).Error; err != nil {
		respondServiceError(c, "fetch waiter calls", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending waiter calls", calls)
}

// CreateCall -> customer asks for a waiter. Refused while the venue has the
// waiter system switched off.
func (wc *WaiterCallController) CreateCall(c *gin.Context) {
	if !utils.PreferencesFrom(c.Request.Context()).WaiterSystemEnabled {
		utils.RespondError(c, http.StatusForbidden, errWaiterSystemDisabled)
		return
	}

	var req struct {
		TableCode string `json:"table_code" binding:"required"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.TableCode) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_code is required"))
		return
	}

	call := models.WaiterCall{
		TableCode: strings.TrimSpace(req.TableCode),
		Message:   req.Message,
		Status:    models.WaiterCallPending,
		CalledAt:  time.Now(),
	}
	if err := wc.DB.Create(&call).Error; err != nil {
		respondServiceError(c, "create waiter call", err)
		return
	}

	wc.Pub.Publish(notify.EventWaiterCallCreated, call)
	utils.InfoLogger.Printf("New waiter call %d from table %s", call.ID, call.TableCode)
	utils.RespondJSON(c, http.StatusCreated, "Waiter called", call)
}

// UpdateCall -> staff resolves a call ("completed" is accepted as an alias)
func (wc *WaiterCallController) UpdateCall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var call models.WaiterCall
	if err := wc.DB.First(&call, id).Error; err != nil {
		respondServiceError(c, "get waiter call", err)
		return
	}

	switch req.Status {
	case models.WaiterCallResolved, "completed":
		now := time.Now()
		call.Status = models.WaiterCallResolved
		call.ResolvedAt = &now
	case models.WaiterCallPending:
		call.Status = models.WaiterCallPending
		call.ResolvedAt = nil
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be pending or resolved"))
		return
	}

	if err := wc.DB.Save(&call).Error; err != nil {
		respondServiceError(c, "update waiter call", err)
		return
	}

	if call.Status == models.WaiterCallResolved {
		wc.Pub.Publish(notify.EventWaiterCallResolved, call)
	}
	utils.InfoLogger.Printf("Waiter call %d updated to %s", call.ID, call.Status)
	utils.RespondJSON(c, http.StatusOK, "Waiter call updated", call)
}
