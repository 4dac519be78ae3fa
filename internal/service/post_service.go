package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo     repository.PostRepository
	blogRepo     repository.BlogRepository
	reactionRepo repository.ReactionRepository
}

type CreatePostInput struct {
	Title            string
	ShortDescription string
	Content          string
	BlogID           uint
}

type UpdatePostInput struct {
	PostID           uint
	Title            string
	ShortDescription string
	Content          string
	BlogID           uint
}

type ListPostsInput struct {
	// BlogID restricts the listing to one blog when non-zero
	BlogID          uint
	SearchTitleTerm string
	SortBy          string
	SortDirection   string
	Page            int
	PageSize        int
	Viewer          Identity
}

func NewPostService(
	postRepo repository.PostRepository,
	blogRepo repository.BlogRepository,
	reactionRepo repository.ReactionRepository,
) *PostService {
	return &PostService{postRepo: postRepo, blogRepo: blogRepo, reactionRepo: reactionRepo}
}

func validatePostFields(title, shortDescription, content string) error {
	if err := validation.ValidatePostTitle(title); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostShortDescription(shortDescription); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(content); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.ShortDescription, in.Content); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Blog", in.BlogID)
	}
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Content:          in.Content,
		BlogID:           blog.ID,
		BlogName:         blog.Name,
		NewestLikes:      models.NewestLikes{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post with the viewer's own reaction attached.
func (s *PostService) GetPost(ctx context.Context, id uint, viewer Identity) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, err
	}

	post.MyStatus = models.StatusNone
	if viewer.UserID != 0 {
		status, err := s.reactionRepo.StatusFor(ctx, models.SubjectPost, id, viewer.UserID)
		if err != nil {
			return nil, err
		}
		post.MyStatus = status
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (models.Page[models.Post], error) {
	page, size, limit, offset := normalizePaging(in.Page, in.PageSize)

	var (
		posts []models.Post
		total int64
		err   error
	)
	switch {
	case in.BlogID != 0:
		exists, existsErr := s.blogRepo.Exists(ctx, in.BlogID)
		if existsErr != nil {
			return models.Page[models.Post]{}, existsErr
		}
		if !exists {
			return models.Page[models.Post]{}, models.NewNotFoundError("Blog", in.BlogID)
		}
		posts, total, err = s.postRepo.ListByBlog(ctx, in.BlogID, in.SortBy, in.SortDirection, limit, offset)
	case in.SearchTitleTerm != "":
		posts, total, err = s.postRepo.Search(ctx, in.SearchTitleTerm, in.SortBy, in.SortDirection, limit, offset)
	default:
		posts, total, err = s.postRepo.List(ctx, in.SortBy, in.SortDirection, limit, offset)
	}
	if err != nil {
		return models.Page[models.Post]{}, err
	}

	if err := s.attachStatuses(ctx, posts, in.Viewer); err != nil {
		return models.Page[models.Post]{}, err
	}
	return models.NewPage(posts, total, page, size), nil
}

func (s *PostService) attachStatuses(ctx context.Context, posts []models.Post, viewer Identity) error {
	for i := range posts {
		posts[i].MyStatus = models.StatusNone
		if posts[i].NewestLikes == nil {
			posts[i].NewestLikes = models.NewestLikes{}
		}
	}
	if viewer.UserID == 0 || len(posts) == 0 {
		return nil
	}

	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	statuses, err := s.reactionRepo.StatusesFor(ctx, models.SubjectPost, ids, viewer.UserID)
	if err != nil {
		return err
	}
	for i := range posts {
		if status, ok := statuses[posts[i].ID]; ok {
			posts[i].MyStatus = status
		}
	}
	return nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	if err := validatePostFields(in.Title, in.ShortDescription, in.Content); err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", in.PostID)
	}
	if err != nil {
		return err
	}

	post.Title = in.Title
	post.ShortDescription = in.ShortDescription
	post.Content = in.Content
	if in.BlogID != 0 && in.BlogID != post.BlogID {
		blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Blog", in.BlogID)
		}
		if err != nil {
			return err
		}
		post.BlogID = blog.ID
		post.BlogName = blog.Name
	}
	return s.postRepo.Update(ctx, post)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	exists, err := s.postRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", id)
	}
	return s.postRepo.Delete(ctx, id)
}
