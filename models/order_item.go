package models

import (
	"time"
)

// OrderItem is one product line of an order. ProductID is exposed as "id"
// because items are addressed and merged by product.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"line_id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID string    `gorm:"type:varchar(64);not null" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Subtotal  float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Cancelled bool      `gorm:"not null;default:false" json:"cancelled"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
