package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment left on a post. LikesCount and
// DislikesCount are summary columns maintained by the projector.
type Comment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Content       string `gorm:"type:text;not null" json:"content"`
	PostID        uint   `gorm:"not null;index" json:"postId"`
	UserID        uint   `gorm:"not null;index" json:"userId"`
	UserLogin     string `gorm:"not null" json:"userLogin"`
	LikesCount    int    `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount int    `gorm:"not null;default:0" json:"dislikesCount"`
	// MyStatus is the requesting user's reaction; computed at read time
	MyStatus  LikeStatus     `gorm:"-" json:"myStatus"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
