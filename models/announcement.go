package models

import "time"

type Announcement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	TitleEn       string    `gorm:"type:varchar(255)" json:"title_en"`
	Description   string    `gorm:"type:text" json:"description"`
	DescriptionEn string    `gorm:"type:text" json:"description_en"`
	BgGradient    string    `gorm:"type:varchar(100)" json:"bg_gradient"`
	Icon          string    `gorm:"type:varchar(20)" json:"icon"`
	Active        bool      `gorm:"not null" json:"active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
