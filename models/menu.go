package models

import "time"

// Product is a menu entry. Name/EName carry the two menu languages.
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Category     *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	EName        string    `gorm:"type:varchar(255);not null" json:"ename"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description  string    `gorm:"type:text" json:"description"`
	EDescription string    `gorm:"type:text" json:"edescription"`
	Image        string    `gorm:"type:varchar(255)" json:"image"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
