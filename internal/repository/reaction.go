// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// ReactionRepository is the reaction ledger: one live row per
// (subject, user), holding that user's current Like or Dislike. A None
// reaction is the absence of a row.
type ReactionRepository interface {
	Upsert(ctx context.Context, kind models.SubjectKind, subjectID, userID uint, login string, status models.LikeStatus) error
	CountByStatus(ctx context.Context, kind models.SubjectKind, subjectID uint, status models.LikeStatus) (int64, error)
	MostRecentLikers(ctx context.Context, kind models.SubjectKind, subjectID uint, limit int) ([]models.Reaction, error)
	StatusFor(ctx context.Context, kind models.SubjectKind, subjectID, userID uint) (models.LikeStatus, error)
	StatusesFor(ctx context.Context, kind models.SubjectKind, subjectIDs []uint, userID uint) (map[uint]models.LikeStatus, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Upsert(ctx context.Context, kind models.SubjectKind, subjectID, userID uint, login string, status models.LikeStatus) error {
	start := time.Now()
	defer func() {
		observability.DatabaseQueryLatency.WithLabelValues("upsert", "reactions").Observe(time.Since(start).Seconds())
	}()

	if status == models.StatusNone {
		// Hard delete: None is represented by row absence
		return r.db.WithContext(ctx).Unscoped().
			Where("subject_kind = ? AND subject_id = ? AND user_id = ?", kind, subjectID, userID).
			Delete(&models.Reaction{}).Error
	}

	// The unique index on (subject_kind, subject_id, user_id) makes this
	// atomic under concurrent requests from the same user. The WHERE on
	// DO UPDATE keeps a same-status repeat from touching updated_at, so
	// recency ordering is not perturbed by replays.
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO reactions (subject_kind, subject_id, user_id, user_login, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (subject_kind, subject_id, user_id)
		 DO UPDATE SET status = EXCLUDED.status, user_login = EXCLUDED.user_login, updated_at = EXCLUDED.updated_at
		 WHERE reactions.status <> EXCLUDED.status`,
		kind, subjectID, userID, login, status,
	).Error
}

func (r *reactionRepository) CountByStatus(ctx context.Context, kind models.SubjectKind, subjectID uint, status models.LikeStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("subject_kind = ? AND subject_id = ? AND status = ?", kind, subjectID, status).
		Count(&count).Error
	return count, err
}

func (r *reactionRepository) MostRecentLikers(ctx context.Context, kind models.SubjectKind, subjectID uint, limit int) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ? AND status = ?", kind, subjectID, models.StatusLike).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) StatusFor(ctx context.Context, kind models.SubjectKind, subjectID, userID uint) (models.LikeStatus, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ? AND user_id = ?", kind, subjectID, userID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StatusNone, nil
	}
	if err != nil {
		return models.StatusNone, err
	}
	return reaction.Status, nil
}

func (r *reactionRepository) StatusesFor(ctx context.Context, kind models.SubjectKind, subjectIDs []uint, userID uint) (map[uint]models.LikeStatus, error) {
	statuses := make(map[uint]models.LikeStatus, len(subjectIDs))
	if len(subjectIDs) == 0 || userID == 0 {
		return statuses, nil
	}

	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("subject_kind = ? AND subject_id IN ? AND user_id = ?", kind, subjectIDs, userID).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	for _, re := range reactions {
		statuses[re.SubjectID] = re.Status
	}
	return statuses, nil
}
