package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type AccountingController struct {
	Ledger *services.LedgerService
}

func NewAccountingController(ledger *services.LedgerService) *AccountingController {
	return &AccountingController{Ledger: ledger}
}

// GetDailySales -> sales grouped per day, newest first. Old sales are pruned first.
func (ac *AccountingController) GetDailySales(c *gin.Context) {
	days, err := ac.Ledger.ListByDay()
	if err != nil {
		respondServiceError(c, "fetch daily sales", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily sales", days)
}

// RecordSale -> manual ledger entry
func (ac *AccountingController) RecordSale(c *gin.Context) {
	var req struct {
		OrderID   uint              `json:"order_id"`
		TableCode string            `json:"table_code" binding:"required"`
		Items     []models.SaleItem `json:"items"`
		Subtotal  float64           `json:"subtotal"`
		Tax       float64           `json:"tax"`
		Total     float64           `json:"total"`
		PaidAt    *time.Time        `json:"paid_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sale := models.DailySale{
		OrderID:   req.OrderID,
		TableCode: req.TableCode,
		Items:     req.Items,
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Total:     req.Total,
	}
	if req.PaidAt != nil {
		sale.PaidAt = *req.PaidAt
	}
	if err := ac.Ledger.Record(&sale); err != nil {
		respondServiceError(c, "record sale", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Sale recorded", sale)
}

// ClearDailySales -> end of day reset
func (ac *AccountingController) ClearDailySales(c *gin.Context) {
	count, err := ac.Ledger.Clear()
	if err != nil {
		respondServiceError(c, "clear daily sales", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily sales cleared", gin.H{"count": count})
}

// ExportDailySales -> PDF report download
func (ac *AccountingController) ExportDailySales(c *gin.Context) {
	var buf bytes.Buffer
	if err := ac.Ledger.ExportPDF(&buf); err != nil {
		respondServiceError(c, "export daily sales", err)
		return
	}

	filename := fmt.Sprintf("daily-sales-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
