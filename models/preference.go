package models

import "time"

// VenueUserID marks the venue-wide preference record.
const VenueUserID uint = 0

// Preference replaces the dashboard toggles that used to live in browser storage.
type Preference struct {
	ID                       uint      `gorm:"primaryKey" json:"-"`
	UserID                   uint      `gorm:"uniqueIndex;not null;default:0" json:"user_id"`
	WaiterSystemEnabled      bool      `gorm:"not null" json:"waiter_system_enabled"`
	SoundNotificationEnabled bool      `gorm:"not null" json:"sound_notification_enabled"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// DefaultPreference is used when no record has been saved yet.
func DefaultPreference(userID uint) Preference {
	return Preference{
		UserID:                   userID,
		WaiterSystemEnabled:      true,
		SoundNotificationEnabled: true,
	}
}
