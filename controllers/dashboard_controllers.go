package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB       *gorm.DB
	Location *time.Location
}

func NewDashboardController(db *gorm.DB, loc *time.Location) *DashboardController {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardController{DB: db, Location: loc}
}

type DashboardStats struct {
	TableStats struct {
		Open   int64 `json:"open"`
		Closed int64 `json:"closed"`
	} `json:"table_stats"`
	OrderStats struct {
		Pending   int64 `json:"pending"`
		Confirmed int64 `json:"confirmed"`
		Rejected  int64 `json:"rejected"`
	} `json:"order_stats"`
	PendingWaiterCalls int64   `json:"pending_waiter_calls"`
	TodayOrders        int64   `json:"today_orders"`
	TodayRevenue       float64 `json:"today_revenue"`
}

// GetDashboardStats -> counters for the staff dashboard header
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	var stats DashboardStats

	now := time.Now().In(dc.Location)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, dc.Location)

	counts := []struct {
		model interface{}
		query string
		arg   string
		dst   *int64
	}{
		{&models.Table{}, "status = ?", models.TableStatusOpen, &stats.TableStats.Open},
		{&models.Table{}, "status = ?", models.TableStatusClosed, &stats.TableStats.Closed},
		{&models.Order{}, "status = ?", models.OrderStatusPending, &stats.OrderStats.Pending},
		{&models.Order{}, "status = ?", models.OrderStatusConfirmed, &stats.OrderStats.Confirmed},
		{&models.Order{}, "status = ?", models.OrderStatusRejected, &stats.OrderStats.Rejected},
		{&models.WaiterCall{}, "status = ?", models.WaiterCallPending, &stats.PendingWaiterCalls},
	}
	for _, q := range counts {
		if err := dc.DB.Model(q.model).Where(q.query, q.arg).Count(q.dst).Error; err != nil {
			respondServiceError(c, "load dashboard stats", err)
			return
		}
	}

	var sales []models.DailySale
	if err := dc.DB.Select("total").Where("paid_at >= ?", startOfDay).Find(&sales).Error; err != nil {
		respondServiceError(c, "load dashboard stats", err)
		return
	}
	totals := make([]float64, len(sales))
	for i, s := range sales {
		totals[i] = s.Total
	}
	stats.TodayOrders = int64(len(sales))
	stats.TodayRevenue = utils.Sum(totals...)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
