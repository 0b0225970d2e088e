package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// Actions accepted by UpdateOrder.
const (
	ActionApprove     = "approve"
	ActionReject      = "reject"
	ActionPaid        = "paid"
	ActionCancelItem  = "cancel_item"
	ActionRestoreItem = "restore_item"
)

// statusActions maps a requested status onto the matching action.
var statusActions = map[string]string{
	models.OrderStatusConfirmed: ActionApprove,
	models.OrderStatusRejected:  ActionReject,
	models.OrderStatusPaid:      ActionPaid,
}

var knownOrderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusRejected:  true,
	models.OrderStatusPaid:      true,
}

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder -> customer places an order for a table
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.PlaceOrder(req)
	if err != nil {
		respondServiceError(c, "create order", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// GetAllOrders -> ?status=pending,confirmed (default) or ?status=all
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	statuses, err := parseStatusFilter(c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orders, err := oc.Orders.List(statuses...)
	if err != nil {
		respondServiceError(c, "list orders", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func parseStatusFilter(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return models.ActiveOrderStatuses, nil
	case "all":
		return nil, nil
	}

	var statuses []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if !knownOrderStatuses[s] {
			return nil, fmt.Errorf("unknown order status %q", s)
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(id)
	if err != nil {
		respondServiceError(c, "get order", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> drives the order lifecycle. The body carries either an
// action or a target status.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Action string `json:"action"`
		Status string `json:"status"`
		ItemID string `json:"item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	action := req.Action
	if action == "" {
		action = statusActions[req.Status]
	}

	switch action {
	case ActionApprove:
		res, err := oc.Orders.Approve(id)
		if err != nil {
			respondServiceError(c, "approve order", err)
			return
		}
		msg := "Order confirmed"
		if res.Merged {
			msg = fmt.Sprintf("Order merged into order %d", res.Order.ID)
		}
		utils.RespondJSON(c, http.StatusOK, msg, res)

	case ActionReject:
		order, err := oc.Orders.Reject(id)
		if err != nil {
			respondServiceError(c, "reject order", err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Order rejected", order)

	case ActionPaid:
		res, err := oc.Orders.MarkPaid(id)
		if err != nil {
			respondServiceError(c, "mark order paid", err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Order paid, table cleared", res)

	case ActionCancelItem:
		res, err := oc.Orders.CancelItem(id, req.ItemID)
		if err != nil {
			respondServiceError(c, "cancel item", err)
			return
		}
		msg := "Item cancelled"
		if res.Deleted {
			msg = "Last item cancelled, order deleted"
		}
		utils.RespondJSON(c, http.StatusOK, msg, res)

	case ActionRestoreItem:
		order, err := oc.Orders.RestoreItem(id, req.ItemID)
		if err != nil {
			respondServiceError(c, "restore item", err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item restored", order)

	default:
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unsupported action %q (status %q)", req.Action, req.Status))
	}
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := oc.Orders.Delete(id); err != nil {
		respondServiceError(c, "delete order", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}
