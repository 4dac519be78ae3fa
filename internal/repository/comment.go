package repository

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, sortBy, sortDirection string, limit, offset int) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateEngagement(ctx context.Context, id uint, likes, dislikes int64) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	key := cache.CommentKey(id)

	err := cache.Aside(ctx, key, &comment, cache.CommentTTL, func() error {
		return r.db.WithContext(ctx).First(&comment, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

var commentSortColumns = map[string]string{
	"createdAt": "created_at",
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, sortBy, sortDirection string, limit, offset int) ([]models.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := base.
		Order(orderClause(commentSortColumns, sortBy, sortDirection)).
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	cache.InvalidateComment(ctx, comment.ID)
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateComment(ctx, id)
	return nil
}

func (r *commentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) UpdateEngagement(ctx context.Context, id uint, likes, dislikes int64) error {
	start := time.Now()
	defer func() {
		observability.DatabaseQueryLatency.WithLabelValues("update_engagement", "comments").Observe(time.Since(start).Seconds())
	}()

	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"likes_count":    likes,
			"dislikes_count": dislikes,
		}).Error
	if err == nil {
		cache.InvalidateComment(ctx, id)
	}
	return err
}
