package models

import (
	"time"
)

const (
	WaiterCallPending  = "pending"
	WaiterCallResolved = "resolved"
)

type WaiterCall struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TableCode  string     `gorm:"type:varchar(50);not null;index" json:"table_code"`
	Message    string     `gorm:"type:text" json:"message,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CalledAt   time.Time  `gorm:"not null" json:"called_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
