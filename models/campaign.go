package models

import "time"

const (
	DurationMinutes = "minutes"
	DurationHours   = "hours"
	DurationDays    = "days"
)

type Campaign struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	TitleEn       string    `gorm:"type:varchar(255)" json:"title_en"`
	Description   string    `gorm:"type:text" json:"description"`
	DescriptionEn string    `gorm:"type:text" json:"description_en"`
	Discount      string    `gorm:"type:varchar(50)" json:"discount"`
	BgGradient    string    `gorm:"type:varchar(100)" json:"bg_gradient"`
	Active        bool      `gorm:"not null" json:"active"`
	Duration      *int      `json:"duration"`
	DurationUnit  string    `gorm:"type:varchar(10);default:'minutes'" json:"duration_unit"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// ExpiresAt is nil for campaigns without a duration.
func (c *Campaign) ExpiresAt() *time.Time {
	if c.Duration == nil || *c.Duration <= 0 {
		return nil
	}
	unit := time.Minute
	switch c.DurationUnit {
	case DurationHours:
		unit = time.Hour
	case DurationDays:
		unit = 24 * time.Hour
	}
	t := c.CreatedAt.Add(time.Duration(*c.Duration) * unit)
	return &t
}

// Visible reports whether the campaign should be shown to customers at now.
func (c *Campaign) Visible(now time.Time) bool {
	if !c.Active {
		return false
	}
	if exp := c.ExpiresAt(); exp != nil && !now.Before(*exp) {
		return false
	}
	return true
}
