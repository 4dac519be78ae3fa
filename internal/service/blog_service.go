package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"gorm.io/gorm"
)

type BlogService struct {
	blogRepo repository.BlogRepository
	postRepo repository.PostRepository
}

type CreateBlogInput struct {
	Name        string
	Description string
	WebsiteURL  string
}

type UpdateBlogInput struct {
	BlogID      uint
	Name        string
	Description string
	WebsiteURL  string
}

type ListBlogsInput struct {
	SearchNameTerm string
	SortBy         string
	SortDirection  string
	Page           int
	PageSize       int
}

func NewBlogService(blogRepo repository.BlogRepository, postRepo repository.PostRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, postRepo: postRepo}
}

func validateBlogFields(name, description, websiteURL string) error {
	if err := validation.ValidateBlogName(name); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateBlogDescription(description); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateWebsiteURL(websiteURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if err := validateBlogFields(in.Name, in.Description, in.WebsiteURL); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Name:        in.Name,
		Description: in.Description,
		WebsiteURL:  in.WebsiteURL,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) GetBlog(ctx context.Context, id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Blog", id)
	}
	if err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) ListBlogs(ctx context.Context, in ListBlogsInput) (models.Page[models.Blog], error) {
	page, size, limit, offset := normalizePaging(in.Page, in.PageSize)
	blogs, total, err := s.blogRepo.List(ctx, in.SearchNameTerm, in.SortBy, in.SortDirection, limit, offset)
	if err != nil {
		return models.Page[models.Blog]{}, err
	}
	return models.NewPage(blogs, total, page, size), nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, in UpdateBlogInput) error {
	if err := validateBlogFields(in.Name, in.Description, in.WebsiteURL); err != nil {
		return err
	}

	blog, err := s.GetBlog(ctx, in.BlogID)
	if err != nil {
		return err
	}

	renamed := blog.Name != in.Name
	blog.Name = in.Name
	blog.Description = in.Description
	blog.WebsiteURL = in.WebsiteURL
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return err
	}

	// Posts carry a denormalized blog name
	if renamed {
		return s.postRepo.RenameBlog(ctx, blog.ID, blog.Name)
	}
	return nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id uint) error {
	exists, err := s.blogRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Blog", id)
	}
	return s.blogRepo.Delete(ctx, id)
}
