package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/testutil"
)

func TestCheckReservation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewReservationService(db)
	svc.Location = time.UTC
	svc.Now = func() time.Time { return time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC) }
	rc := controllers.NewReservationController(svc)

	r := gin.New()
	r.POST("/reservations", rc.CreateReservation)
	r.POST("/reservations/check", rc.CheckReservation)
	r.DELETE("/reservations/:id", rc.DeleteReservation)

	w := performRequest(t, r, http.MethodPost, "/reservations", gin.H{
		"table_code":     "M1",
		"customer_name":  "Ayse",
		"customer_phone": "555-0101",
		"date":           "2024-03-01",
		"start_time":     "19:00",
		"end_time":       "21:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performRequest(t, r, http.MethodPost, "/reservations", gin.H{
		"table_code":    "M1",
		"customer_name": "Late",
		"date":          "2024-03-01",
		"start_time":    "22:00",
		"end_time":      "21:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var held struct {
		Reserved    bool                   `json:"reserved"`
		Reservation map[string]interface{} `json:"reservation"`
	}
	w = performRequest(t, r, http.MethodPost, "/reservations/check", gin.H{"table_code": "M1"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &held)
	assert.True(t, held.Reserved)
	assert.Equal(t, "Ayse", held.Reservation["customer_name"])
	assert.NotContains(t, held.Reservation, "customer_phone")

	held.Reserved = false
	w = performRequest(t, r, http.MethodPost, "/reservations/check", gin.H{"table_code": "M2"})
	decode(t, w, &held)
	assert.False(t, held.Reserved)

	w = performRequest(t, r, http.MethodPost, "/reservations/check", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodDelete, "/reservations/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
