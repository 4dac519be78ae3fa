package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo  repository.CommentRepository
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
}

type CreateCommentInput struct {
	PostID  uint
	Caller  Identity
	Content string
}

type UpdateCommentInput struct {
	CommentID uint
	Caller    Identity
	Content   string
}

type DeleteCommentInput struct {
	CommentID uint
	Caller    Identity
}

type ListCommentsInput struct {
	PostID        uint
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
	Viewer        Identity
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, reactionRepo: reactionRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Caller.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	comment := &models.Comment{
		Content:   in.Content,
		PostID:    in.PostID,
		UserID:    in.Caller.UserID,
		UserLogin: in.Caller.Login,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint, viewer Identity) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment", id)
	}
	if err != nil {
		return nil, err
	}

	comment.MyStatus = models.StatusNone
	if viewer.UserID != 0 {
		status, err := s.reactionRepo.StatusFor(ctx, models.SubjectComment, id, viewer.UserID)
		if err != nil {
			return nil, err
		}
		comment.MyStatus = status
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) (models.Page[models.Comment], error) {
	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return models.Page[models.Comment]{}, err
	}
	if !exists {
		return models.Page[models.Comment]{}, models.NewNotFoundError("Post", in.PostID)
	}

	page, size, limit, offset := normalizePaging(in.Page, in.PageSize)
	comments, total, err := s.commentRepo.ListByPost(ctx, in.PostID, in.SortBy, in.SortDirection, limit, offset)
	if err != nil {
		return models.Page[models.Comment]{}, err
	}

	if err := s.attachStatuses(ctx, comments, in.Viewer); err != nil {
		return models.Page[models.Comment]{}, err
	}
	return models.NewPage(comments, total, page, size), nil
}

func (s *CommentService) attachStatuses(ctx context.Context, comments []models.Comment, viewer Identity) error {
	for i := range comments {
		comments[i].MyStatus = models.StatusNone
	}
	if viewer.UserID == 0 || len(comments) == 0 {
		return nil
	}

	ids := make([]uint, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	statuses, err := s.reactionRepo.StatusesFor(ctx, models.SubjectComment, ids, viewer.UserID)
	if err != nil {
		return err
	}
	for i := range comments {
		if status, ok := statuses[comments[i].ID]; ok {
			comments[i].MyStatus = status
		}
	}
	return nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) error {
	if in.Caller.UserID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return models.NewValidationError(err.Error())
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Comment", in.CommentID)
	}
	if err != nil {
		return err
	}
	if comment.UserID != in.Caller.UserID {
		return models.NewForbiddenError("You can only update your own comments")
	}

	comment.Content = in.Content
	return s.commentRepo.Update(ctx, comment)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if in.Caller.UserID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Comment", in.CommentID)
	}
	if err != nil {
		return err
	}
	if comment.UserID != in.Caller.UserID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
