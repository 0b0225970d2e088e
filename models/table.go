package models

import "time"

const (
	TableStatusOpen   = "open"
	TableStatusClosed = "closed"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Status    string    `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
