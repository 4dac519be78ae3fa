package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// Identity carries the authenticated caller through the service layer.
// A zero UserID means anonymous.
type Identity struct {
	UserID uint
	Login  string
}

// ReactionService applies a user's reaction to a post or comment and
// refreshes that subject's engagement summary.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	projector    *Projector
}

type SetReactionInput struct {
	Subject   models.SubjectKind
	SubjectID uint
	Caller    Identity
	// LikeStatus is the raw value from the request body; it is parsed
	// here so handlers stay thin.
	LikeStatus string
}

// NewReactionService creates a new reaction service
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	projector *Projector,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		projector:    projector,
	}
}

// SetReaction is idempotent: repeating the same status for the same
// caller leaves the ledger and the projected summary unchanged.
func (s *ReactionService) SetReaction(ctx context.Context, in SetReactionInput) error {
	if in.Caller.UserID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}

	status, err := models.ParseLikeStatus(in.LikeStatus)
	if err != nil {
		return err
	}

	exists, err := s.subjectExists(ctx, in.Subject, in.SubjectID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError(string(in.Subject), in.SubjectID)
	}

	if err := s.reactionRepo.Upsert(ctx, in.Subject, in.SubjectID, in.Caller.UserID, in.Caller.Login, status); err != nil {
		return err
	}

	// Project even when the upsert was a no-op: the recompute is cheap
	// and repairs any summary drift left by an earlier failure.
	if err := s.projector.Project(ctx, in.Subject, in.SubjectID); err != nil {
		return err
	}

	observability.ReactionsApplied.WithLabelValues(string(in.Subject), string(status)).Inc()
	return nil
}

func (s *ReactionService) subjectExists(ctx context.Context, kind models.SubjectKind, id uint) (bool, error) {
	switch kind {
	case models.SubjectComment:
		return s.commentRepo.Exists(ctx, id)
	default:
		return s.postRepo.Exists(ctx, id)
	}
}
