package models

import "time"

const (
	ReservationDateLayout = "2006-01-02"
	ReservationTimeLayout = "15:04"
)

// Reservation holds a table for a window on one calendar day.
// Date and times are venue-local wall clock values.
type Reservation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TableCode     string    `gorm:"type:varchar(50);not null;index:idx_reservation_slot" json:"table_code"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone"`
	Date          string    `gorm:"type:varchar(10);not null;index:idx_reservation_slot" json:"date"`
	StartTime     string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime       string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Note          string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
