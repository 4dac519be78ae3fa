// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// NewestLikes is the bounded most-recent-likers list persisted on a post
// summary, ordered most-recent-first. Stored as jsonb.
type NewestLikes []LikeDetails

// Value implements driver.Valuer.
func (n NewestLikes) Value() (driver.Value, error) {
	if n == nil {
		n = NewestLikes{}
	}
	return json.Marshal(n)
}

// Scan implements sql.Scanner.
func (n *NewestLikes) Scan(value interface{}) error {
	if value == nil {
		*n = NewestLikes{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	}
	return fmt.Errorf("unsupported type %T for NewestLikes", value)
}

// Post represents a post belonging to a blog. The engagement summary
// columns (LikesCount, DislikesCount, NewestLikes) are written only by
// the projector; every other write path leaves them untouched.
type Post struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Title            string      `gorm:"not null" json:"title"`
	ShortDescription string      `gorm:"not null" json:"shortDescription"`
	Content          string      `gorm:"type:text;not null" json:"content"`
	BlogID           uint        `gorm:"not null;index" json:"blogId"`
	BlogName         string      `gorm:"not null" json:"blogName"`
	LikesCount       int         `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount    int         `gorm:"not null;default:0" json:"dislikesCount"`
	NewestLikes      NewestLikes `gorm:"type:jsonb;default:'[]'" json:"newestLikes"`
	// MyStatus is the requesting user's reaction; computed at read time
	MyStatus  LikeStatus     `gorm:"-" json:"myStatus"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
