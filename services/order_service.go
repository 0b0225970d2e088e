package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const noteSeparator = " | "

// ItemInput is one line of an order as sent by the customer menu.
type ItemInput struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PlaceOrderInput struct {
	TableCode    string      `json:"table_code" binding:"required"`
	Items        []ItemInput `json:"items" binding:"required"`
	CustomerNote string      `json:"customer_note"`
}

// ApproveResult tells whether the approved order was absorbed into another.
type ApproveResult struct {
	Order      *models.Order `json:"order"`
	Merged     bool          `json:"merged"`
	MergedFrom uint          `json:"merged_from,omitempty"`
}

// CancelResult is returned by CancelItem; Order is nil when the order was deleted.
type CancelResult struct {
	Order   *models.Order `json:"order,omitempty"`
	Deleted bool          `json:"deleted"`
}

type PaymentResult struct {
	Order         *models.Order     `json:"order"`
	Sale          *models.DailySale `json:"sale,omitempty"`
	ClearedOrders int64             `json:"cleared_orders"`
}

// OrderService drives orders through pending -> confirmed -> paid (or rejected)
// and keeps the owning table's status in step.
type OrderService struct {
	db     *gorm.DB
	tables *TableRegistry
	ledger *LedgerService
	pub    notify.Publisher
	Now    func() time.Time
}

func NewOrderService(db *gorm.DB, tables *TableRegistry, ledger *LedgerService, pub notify.Publisher) *OrderService {
	if pub == nil {
		pub = notify.Nop{}
	}
	return &OrderService{
		db:     db,
		tables: tables,
		ledger: ledger,
		pub:    pub,
		Now:    time.Now,
	}
}

func itemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id asc")
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	return s.load(s.db, id)
}

func (s *OrderService) load(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.Preload("Items", itemsByID).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// List returns orders with the given statuses, newest first. No statuses means all.
func (s *OrderService) List(statuses ...string) ([]models.Order, error) {
	q := s.db.Preload("Items", itemsByID).Order("created_at desc, id desc")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// PlaceOrder stores a new pending order and closes its table.
func (s *OrderService) PlaceOrder(in PlaceOrderInput) (*models.Order, error) {
	tableCode := strings.TrimSpace(in.TableCode)
	if tableCode == "" {
		return nil, fmt.Errorf("%w: table code is required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	order := models.Order{
		TableCode:    tableCode,
		Status:       models.OrderStatusPending,
		CustomerNote: strings.TrimSpace(in.CustomerNote),
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("%w: item id is required", ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity of item %s must be positive", ErrValidation, it.ID)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: price of item %s must not be negative", ErrValidation, it.ID)
		}

		// the same product twice becomes one line
		if line := order.FindItem(it.ID); line != nil {
			line.Quantity += it.Quantity
			line.Subtotal = utils.LineSubtotal(line.Price, line.Quantity)
			continue
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  utils.LineSubtotal(it.Price, it.Quantity),
		})
	}
	recompute(&order)

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order for table %s: %w", tableCode, err)
	}

	s.syncTable(tableCode, "place")
	s.pub.Publish(notify.EventOrderCreated, order)
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"table_code": order.TableCode,
		"total":      order.Total,
	}).Info("New order placed")
	return &order, nil
}

// Approve confirms a pending order. When the table already has a confirmed
// order, the pending order's active items are merged into it instead.
func (s *OrderService) Approve(id uint) (*ApproveResult, error) {
	result := &ApproveResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pending, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if pending.Status != models.OrderStatusPending {
			return fmt.Errorf("%w: order %d is %s, only pending orders can be approved", ErrInvalidStatus, id, pending.Status)
		}

		var target models.Order
		err = tx.Preload("Items", itemsByID).
			Where("table_code = ? AND status = ? AND id <> ?", pending.TableCode, models.OrderStatusConfirmed, pending.ID).
			Order("id asc").
			First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pending.Status = models.OrderStatusConfirmed
			if err := tx.Omit(clause.Associations).Save(pending).Error; err != nil {
				return fmt.Errorf("confirm order %d: %w", id, err)
			}
			result.Order = pending
			return nil
		}
		if err != nil {
			return fmt.Errorf("find merge target for table %s: %w", pending.TableCode, err)
		}

		if err := mergeInto(tx, &target, pending); err != nil {
			return err
		}
		if err := deleteOrders(tx, "id = ?", pending.ID); err != nil {
			return err
		}
		result.Order = &target
		result.Merged = true
		result.MergedFrom = pending.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.syncTable(result.Order.TableCode, "approve")
	if result.Merged {
		s.pub.Publish(notify.EventOrderMerged, result)
		utils.InfoLogger.Printf("Order %d merged into order %d", result.MergedFrom, result.Order.ID)
	} else {
		s.pub.Publish(notify.EventOrderUpdated, result.Order)
		utils.InfoLogger.Printf("Order %d confirmed", result.Order.ID)
	}
	return result, nil
}

// mergeInto adds src's active lines to dst by product id and saves dst.
func mergeInto(tx *gorm.DB, dst, src *models.Order) error {
	for _, it := range src.ActiveItems() {
		line := dst.FindItem(it.ProductID)
		if line == nil {
			moved := models.OrderItem{
				OrderID:   dst.ID,
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
				Subtotal:  it.Subtotal,
			}
			if err := tx.Create(&moved).Error; err != nil {
				return fmt.Errorf("move item %s to order %d: %w", it.ProductID, dst.ID, err)
			}
			dst.Items = append(dst.Items, moved)
			continue
		}

		if line.Cancelled {
			line.Cancelled = false
			line.Quantity = it.Quantity
			line.Price = it.Price
			line.Subtotal = it.Subtotal
		} else {
			line.Quantity += it.Quantity
			line.Subtotal = utils.Sum(line.Subtotal, it.Subtotal)
		}
		if err := tx.Save(line).Error; err != nil {
			return fmt.Errorf("merge item %s into order %d: %w", it.ProductID, dst.ID, err)
		}
	}

	dst.CustomerNote = joinNotes(dst.CustomerNote, src.CustomerNote)
	recompute(dst)
	if err := tx.Omit(clause.Associations).Save(dst).Error; err != nil {
		return fmt.Errorf("save merged order %d: %w", dst.ID, err)
	}
	return nil
}

func joinNotes(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + noteSeparator + b
	}
}

// Reject marks a pending order rejected. The record is kept.
func (s *OrderService) Reject(id uint) (*models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: order %d is %s, only pending orders can be rejected", ErrInvalidStatus, id, order.Status)
	}

	order.Status = models.OrderStatusRejected
	if err := s.db.Omit(clause.Associations).Save(order).Error; err != nil {
		return nil, fmt.Errorf("reject order %d: %w", id, err)
	}

	s.syncTable(order.TableCode, "reject")
	s.pub.Publish(notify.EventOrderUpdated, order)
	utils.InfoLogger.Printf("Order %d rejected", order.ID)
	return order, nil
}

// CancelItem flags a line as cancelled. An order left without active lines is deleted.
func (s *OrderService) CancelItem(id uint, productID string) (*CancelResult, error) {
	order, line, err := s.activeLine(id, productID)
	if err != nil {
		return nil, err
	}
	if line.Cancelled {
		return &CancelResult{Order: order}, nil
	}
	line.Cancelled = true

	if len(order.ActiveItems()) == 0 {
		if err := deleteOrders(s.db, "id = ?", order.ID); err != nil {
			return nil, err
		}
		s.syncTable(order.TableCode, "cancel_item")
		s.pub.Publish(notify.EventOrderDeleted, order)
		utils.InfoLogger.Printf("Order %d deleted after its last item was cancelled", order.ID)
		return &CancelResult{Deleted: true}, nil
	}

	if err := s.saveLine(order, line); err != nil {
		return nil, err
	}
	s.pub.Publish(notify.EventOrderUpdated, order)
	utils.InfoLogger.Printf("Item %s cancelled on order %d", productID, order.ID)
	return &CancelResult{Order: order}, nil
}

// RestoreItem clears the cancelled flag of a line.
func (s *OrderService) RestoreItem(id uint, productID string) (*models.Order, error) {
	order, line, err := s.activeLine(id, productID)
	if err != nil {
		return nil, err
	}
	if !line.Cancelled {
		return order, nil
	}
	line.Cancelled = false

	if err := s.saveLine(order, line); err != nil {
		return nil, err
	}
	s.pub.Publish(notify.EventOrderUpdated, order)
	utils.InfoLogger.Printf("Item %s restored on order %d", productID, order.ID)
	return order, nil
}

func (s *OrderService) activeLine(id uint, productID string) (*models.Order, *models.OrderItem, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, nil, fmt.Errorf("%w: item id is required", ErrValidation)
	}
	order, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if !order.IsActive() {
		return nil, nil, fmt.Errorf("%w: order %d is %s", ErrInvalidStatus, id, order.Status)
	}
	line := order.FindItem(productID)
	if line == nil {
		return nil, nil, fmt.Errorf("item %s on order %d: %w", productID, id, ErrNotFound)
	}
	return order, line, nil
}

func (s *OrderService) saveLine(order *models.Order, line *models.OrderItem) error {
	recompute(order)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(line).Error; err != nil {
			return fmt.Errorf("save item %s: %w", line.ProductID, err)
		}
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return fmt.Errorf("save order %d: %w", order.ID, err)
		}
		return nil
	})
}

// MarkPaid settles an order: it is marked paid, written to the ledger, the
// table is reopened and every order of the table is cleared. Only the status
// change is required to succeed; later steps are logged on failure.
func (s *OrderService) MarkPaid(id uint) (*PaymentResult, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !order.IsActive() {
		return nil, fmt.Errorf("%w: order %d is %s and cannot be paid", ErrInvalidStatus, id, order.Status)
	}

	now := s.Now()
	order.Status = models.OrderStatusPaid
	order.PaidAt = &now
	if err := s.db.Omit(clause.Associations).Save(order).Error; err != nil {
		return nil, fmt.Errorf("mark order %d paid: %w", id, err)
	}

	result := &PaymentResult{Order: order}
	fields := logrus.Fields{"order_id": order.ID, "table_code": order.TableCode}

	if s.ledger != nil {
		sale, err := s.ledger.RecordSale(order)
		if err != nil {
			utils.ErrorLogger.WithFields(fields).Errorf("Failed to record sale: %v", err)
		}
		result.Sale = sale
	}

	if err := s.tables.SetStatusByCode(order.TableCode, models.TableStatusOpen); err != nil {
		utils.ErrorLogger.WithFields(fields).Errorf("Failed to reopen table: %v", err)
	}

	cleared, err := s.clearTable(order.TableCode)
	if err != nil {
		utils.ErrorLogger.WithFields(fields).Errorf("Failed to clear table orders: %v", err)
	}
	result.ClearedOrders = cleared

	s.pub.Publish(notify.EventOrderPaid, result)
	utils.InfoLogger.WithFields(fields).Infof("Order paid, %s recorded, %d orders cleared", utils.FormatLira(order.Total), cleared)
	return result, nil
}

func (s *OrderService) clearTable(tableCode string) (int64, error) {
	var count int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("table_code = ?", tableCode).Count(&count).Error; err != nil {
			return err
		}
		return deleteOrders(tx, "table_code = ?", tableCode)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes an order and resyncs its table.
func (s *OrderService) Delete(id uint) error {
	order, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := deleteOrders(s.db, "id = ?", order.ID); err != nil {
		return err
	}

	s.syncTable(order.TableCode, "delete")
	s.pub.Publish(notify.EventOrderDeleted, order)
	utils.InfoLogger.Printf("Order %d deleted", order.ID)
	return nil
}

// deleteOrders removes the matching orders together with their items.
func deleteOrders(tx *gorm.DB, query string, args ...interface{}) error {
	ids := tx.Model(&models.Order{}).Select("id").Where(query, args...)
	if err := tx.Where("order_id IN (?)", ids).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := tx.Where(query, args...).Delete(&models.Order{}).Error; err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	return nil
}

func (s *OrderService) syncTable(tableCode, op string) {
	if err := s.tables.Sync(tableCode); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"table_code": tableCode,
			"operation":  op,
		}).Errorf("Failed to sync table status: %v", err)
	}
}

// recompute derives subtotal, tax and total from the active lines.
func recompute(order *models.Order) {
	active := order.ActiveItems()
	lines := make([]float64, 0, len(active))
	for _, it := range active {
		lines = append(lines, it.Subtotal)
	}
	order.Subtotal, order.Tax, order.Total = utils.Totals(lines)
}
