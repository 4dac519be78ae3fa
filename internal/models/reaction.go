package models

import (
	"time"
)

// LikeStatus is a user's current reaction to a subject. None is never
// persisted; it is represented by the absence of a Reaction row.
type LikeStatus string

const (
	StatusNone    LikeStatus = "None"
	StatusLike    LikeStatus = "Like"
	StatusDislike LikeStatus = "Dislike"
)

// ParseLikeStatus validates a raw like-status value from a request body.
func ParseLikeStatus(raw string) (LikeStatus, error) {
	switch LikeStatus(raw) {
	case StatusNone, StatusLike, StatusDislike:
		return LikeStatus(raw), nil
	}
	return "", NewValidationError("likeStatus must be one of None, Like, Dislike")
}

// SubjectKind identifies which entity a reaction is attached to.
type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectComment SubjectKind = "comment"
)

// Reaction is one ledger row: the current reaction of one user to one
// subject. At most one live row exists per (subject_kind, subject_id,
// user_id); the unique index is the only synchronization primitive the
// engagement subsystem relies on.
type Reaction struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	SubjectKind SubjectKind `gorm:"not null;uniqueIndex:idx_reaction_subject_user" json:"subject_kind"`
	SubjectID   uint        `gorm:"not null;uniqueIndex:idx_reaction_subject_user" json:"subject_id"`
	UserID      uint        `gorm:"not null;uniqueIndex:idx_reaction_subject_user" json:"user_id"`
	UserLogin   string      `gorm:"not null" json:"user_login"`
	Status      LikeStatus  `gorm:"not null" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LikeDetails is one entry of a post's newest-likes list.
type LikeDetails struct {
	AddedAt time.Time `json:"addedAt"`
	UserID  uint      `json:"userId"`
	Login   string    `json:"login"`
}
