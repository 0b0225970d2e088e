package models

import "time"

// SaleItem is the item snapshot stored with a sale.
type SaleItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
	Cancelled bool    `json:"cancelled,omitempty"`
}

// DailySale is an append-only accounting record written when an order is paid.
type DailySale struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID   uint       `gorm:"index" json:"order_id"`
	TableCode string     `gorm:"type:varchar(50);not null" json:"table_code"`
	Items     []SaleItem `gorm:"serializer:json;type:text" json:"items"`
	Subtotal  float64    `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax       float64    `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total     float64    `gorm:"type:decimal(12,2);not null" json:"total"`
	PaidAt    time.Time  `gorm:"not null;index" json:"paid_at"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
