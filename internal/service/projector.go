package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// NewestLikesLimit bounds the most-recent-likers list on a post summary.
const NewestLikesLimit = 3

// Projector recomputes a subject's engagement summary from the reaction
// ledger. It always recomputes from scratch rather than adjusting
// counters incrementally, so a projection that runs after a missed or
// duplicated write converges to the correct values on its own.
type Projector struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
}

// NewProjector creates a projector over the given repositories.
func NewProjector(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *Projector {
	return &Projector{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
	}
}

// Project recomputes and persists the summary for one subject. The
// subject is assumed to exist; projecting a vanished subject updates
// zero rows and is harmless.
func (p *Projector) Project(ctx context.Context, kind models.SubjectKind, subjectID uint) error {
	err := p.project(ctx, kind, subjectID)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	observability.ProjectionRuns.WithLabelValues(string(kind), outcome).Inc()
	return err
}

func (p *Projector) project(ctx context.Context, kind models.SubjectKind, subjectID uint) error {
	likes, err := p.reactionRepo.CountByStatus(ctx, kind, subjectID, models.StatusLike)
	if err != nil {
		return err
	}
	dislikes, err := p.reactionRepo.CountByStatus(ctx, kind, subjectID, models.StatusDislike)
	if err != nil {
		return err
	}

	if kind == models.SubjectComment {
		return p.commentRepo.UpdateEngagement(ctx, subjectID, likes, dislikes)
	}

	likers, err := p.reactionRepo.MostRecentLikers(ctx, kind, subjectID, NewestLikesLimit)
	if err != nil {
		return err
	}
	newest := make(models.NewestLikes, 0, len(likers))
	for _, re := range likers {
		newest = append(newest, models.LikeDetails{
			AddedAt: re.UpdatedAt,
			UserID:  re.UserID,
			Login:   re.UserLogin,
		})
	}
	return p.postRepo.UpdateEngagement(ctx, subjectID, likes, dislikes, newest)
}
