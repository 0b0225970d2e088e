package controllers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/testutil"
)

func setupAccountingRouter(t *testing.T) *gin.Engine {
	db := testutil.NewDB(t)
	ac := controllers.NewAccountingController(services.NewLedgerService(db, nil))

	r := gin.New()
	r.GET("/accounting/daily-sales", ac.GetDailySales)
	r.POST("/accounting/daily-sales", ac.RecordSale)
	r.DELETE("/accounting/daily-sales", ac.ClearDailySales)
	r.GET("/accounting/daily-sales/export", ac.ExportDailySales)
	return r
}

func TestAccountingRecordAndClear(t *testing.T) {
	r := setupAccountingRouter(t)

	for _, subtotal := range []float64{100, 50} {
		w := performRequest(t, r, http.MethodPost, "/accounting/daily-sales", gin.H{
			"table_code": "M1",
			"subtotal":   subtotal,
			"tax":        subtotal / 10,
			"total":      subtotal * 1.1,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := performRequest(t, r, http.MethodPost, "/accounting/daily-sales", gin.H{"table_code": "M1", "total": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// total must be subtotal plus tax
	w = performRequest(t, r, http.MethodPost, "/accounting/daily-sales", gin.H{
		"table_code": "M1", "subtotal": 100, "tax": 10, "total": 5000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var days []services.DaySummary
	decode(t, performRequest(t, r, http.MethodGet, "/accounting/daily-sales", nil), &days)
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].OrderCount)
	assert.InDelta(t, 165.0, days[0].TotalRevenue, 0.001)

	var cleared struct {
		Count int64 `json:"count"`
	}
	decode(t, performRequest(t, r, http.MethodDelete, "/accounting/daily-sales", nil), &cleared)
	assert.EqualValues(t, 2, cleared.Count)

	decode(t, performRequest(t, r, http.MethodGet, "/accounting/daily-sales", nil), &days)
	assert.Empty(t, days)
}

func TestAccountingExportPDF(t *testing.T) {
	r := setupAccountingRouter(t)
	performRequest(t, r, http.MethodPost, "/accounting/daily-sales", gin.H{"table_code": "M1", "subtotal": 100, "tax": 10, "total": 110})

	w := performRequest(t, r, http.MethodGet, "/accounting/daily-sales/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "daily-sales-")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}
