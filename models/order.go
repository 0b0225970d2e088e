package models

import (
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusRejected  = "rejected"
	OrderStatusPaid      = "paid"
)

// ActiveOrderStatuses keep a table closed.
var ActiveOrderStatuses = []string{OrderStatusPending, OrderStatusConfirmed}

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	TableCode    string      `gorm:"type:varchar(50);not null;index" json:"table_code"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Subtotal     float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax          float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Total        float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	CustomerNote string      `gorm:"type:text" json:"customer_note,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	PaidAt       *time.Time  `json:"paid_at,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// IsActive reports whether the order still holds its table.
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// ActiveItems returns the lines that are not cancelled.
func (o *Order) ActiveItems() []OrderItem {
	active := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		if !it.Cancelled {
			active = append(active, it)
		}
	}
	return active
}

// FindItem returns the line for a product id, or nil.
func (o *Order) FindItem(productID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}
