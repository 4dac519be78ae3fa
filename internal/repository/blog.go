package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, searchNameTerm string, sortBy, sortDirection string, limit, offset int) ([]models.Blog, int64, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	err := r.db.WithContext(ctx).Create(blog).Error
	if err == nil {
		cache.Invalidate(ctx, cache.BlogsListKey)
	}
	return err
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	key := cache.BlogKey(id)

	err := cache.Aside(ctx, key, &blog, cache.BlogTTL, func() error {
		return r.db.WithContext(ctx).First(&blog, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// blogSortColumns whitelists the API sort fields against column names.
var blogSortColumns = map[string]string{
	"name":       "name",
	"createdAt":  "created_at",
	"websiteUrl": "website_url",
}

func (r *blogRepository) List(ctx context.Context, searchNameTerm string, sortBy, sortDirection string, limit, offset int) ([]models.Blog, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Blog{})
	if searchNameTerm != "" {
		base = base.Where("name ILIKE ?", "%"+searchNameTerm+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []models.Blog
	err := base.
		Order(orderClause(blogSortColumns, sortBy, sortDirection)).
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return err
	}
	cache.InvalidateBlog(ctx, blog.ID)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateBlog(ctx, id)
	return nil
}

func (r *blogRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
