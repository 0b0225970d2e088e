package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/testutil"
)

func TestWaiterCallLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	prefs := services.NewPreferenceService(db)
	rec := &notify.Recorder{}
	wc := controllers.NewWaiterCallController(db, rec)

	r := gin.New()
	r.Use(middlewares.Preferences(prefs))
	r.POST("/waiter-calls", wc.CreateCall)
	r.GET("/waiter-calls", wc.GetPendingCalls)
	r.PATCH("/waiter-calls/:id", wc.UpdateCall)

	w := performRequest(t, r, http.MethodPost, "/waiter-calls", gin.H{"table_code": "M3", "message": "bill please"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var call models.WaiterCall
	decode(t, w, &call)
	assert.Equal(t, models.WaiterCallPending, call.Status)

	var pending []models.WaiterCall
	decode(t, performRequest(t, r, http.MethodGet, "/waiter-calls", nil), &pending)
	assert.Len(t, pending, 1)

	w = performRequest(t, r, http.MethodPatch, "/waiter-calls/1", gin.H{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodPatch, "/waiter-calls/1", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &call)
	assert.Equal(t, models.WaiterCallResolved, call.Status)
	assert.NotNil(t, call.ResolvedAt)

	decode(t, performRequest(t, r, http.MethodGet, "/waiter-calls", nil), &pending)
	assert.Empty(t, pending)

	assert.Equal(t, []string{notify.EventWaiterCallCreated, notify.EventWaiterCallResolved}, rec.Names())
}

func TestWaiterCallRefusedWhenDisabled(t *testing.T) {
	db := testutil.NewDB(t)
	prefs := services.NewPreferenceService(db)
	off := false
	_, err := prefs.Update(models.VenueUserID, services.PreferencePatch{WaiterSystemEnabled: &off})
	require.NoError(t, err)

	wc := controllers.NewWaiterCallController(db, nil)
	r := gin.New()
	r.Use(middlewares.Preferences(prefs))
	r.POST("/waiter-calls", wc.CreateCall)

	w := performRequest(t, r, http.MethodPost, "/waiter-calls", gin.H{"table_code": "M3"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.WaiterCall{}).Count(&count)
	assert.Zero(t, count)
}
