package repository

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error)
	ListByBlog(ctx context.Context, blogID uint, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error)
	Search(ctx context.Context, searchTitleTerm, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateEngagement(ctx context.Context, id uint, likes, dislikes int64, newest models.NewestLikes) error
	RenameBlog(ctx context.Context, blogID uint, blogName string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostsListKey)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

var postSortColumns = map[string]string{
	"title":     "title",
	"blogName":  "blog_name",
	"createdAt": "created_at",
}

func (r *postRepository) List(ctx context.Context, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Post{}), sortBy, sortDirection, limit, offset)
}

func (r *postRepository) ListByBlog(ctx context.Context, blogID uint, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("blog_id = ?", blogID)
	return r.list(ctx, base, sortBy, sortDirection, limit, offset)
}

func (r *postRepository) Search(ctx context.Context, searchTitleTerm, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	if searchTitleTerm != "" {
		base = base.Where("title ILIKE ?", "%"+searchTitleTerm+"%")
	}
	return r.list(ctx, base, sortBy, sortDirection, limit, offset)
}

func (r *postRepository) list(ctx context.Context, base *gorm.DB, sortBy, sortDirection string, limit, offset int) ([]models.Post, int64, error) {
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := base.
		Order(orderClause(postSortColumns, sortBy, sortDirection)).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// UpdateEngagement writes the projected summary in a single statement.
// It deliberately bypasses Save so the summary write cannot clobber
// concurrent content edits.
func (r *postRepository) UpdateEngagement(ctx context.Context, id uint, likes, dislikes int64, newest models.NewestLikes) error {
	start := time.Now()
	defer func() {
		observability.DatabaseQueryLatency.WithLabelValues("update_engagement", "posts").Observe(time.Since(start).Seconds())
	}()

	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"likes_count":    likes,
			"dislikes_count": dislikes,
			"newest_likes":   newest,
		}).Error
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

// RenameBlog keeps the denormalized blog_name on posts in sync after a
// blog rename.
func (r *postRepository) RenameBlog(ctx context.Context, blogID uint, blogName string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("blog_id = ?", blogID).
		Update("blog_name", blogName).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostsListKey)
	}
	return err
}
