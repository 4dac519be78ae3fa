package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog represents a blog that owns posts.
type Blog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;index" json:"name"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	WebsiteURL   string         `gorm:"not null" json:"websiteUrl"`
	IsMembership bool           `gorm:"not null;default:false" json:"isMembership"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
