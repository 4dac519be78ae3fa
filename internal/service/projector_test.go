package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLedger is an in-memory reaction ledger that preserves the real
// upsert semantics: one row per (subject, user), same-status repeats do
// not advance recency, None removes the row. It lets the projector's
// arithmetic run end to end without a database.
type memoryLedger struct {
	clock  int64
	nextID uint
	rows   map[string]*models.Reaction
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{rows: map[string]*models.Reaction{}}
}

func (m *memoryLedger) key(kind models.SubjectKind, subjectID, userID uint) string {
	return fmt.Sprintf("%s/%d/%d", kind, subjectID, userID)
}

func (m *memoryLedger) tick() time.Time {
	m.clock++
	return time.Unix(m.clock, 0)
}

func (m *memoryLedger) Upsert(_ context.Context, kind models.SubjectKind, subjectID, userID uint, login string, status models.LikeStatus) error {
	k := m.key(kind, subjectID, userID)
	if status == models.StatusNone {
		delete(m.rows, k)
		return nil
	}
	if row, ok := m.rows[k]; ok {
		if row.Status == status {
			return nil
		}
		row.Status = status
		row.UserLogin = login
		row.UpdatedAt = m.tick()
		return nil
	}
	m.nextID++
	now := m.tick()
	m.rows[k] = &models.Reaction{
		ID:          m.nextID,
		SubjectKind: kind,
		SubjectID:   subjectID,
		UserID:      userID,
		UserLogin:   login,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil
}

func (m *memoryLedger) CountByStatus(_ context.Context, kind models.SubjectKind, subjectID uint, status models.LikeStatus) (int64, error) {
	var count int64
	for _, row := range m.rows {
		if row.SubjectKind == kind && row.SubjectID == subjectID && row.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *memoryLedger) MostRecentLikers(_ context.Context, kind models.SubjectKind, subjectID uint, limit int) ([]models.Reaction, error) {
	var likers []models.Reaction
	for _, row := range m.rows {
		if row.SubjectKind == kind && row.SubjectID == subjectID && row.Status == models.StatusLike {
			likers = append(likers, *row)
		}
	}
	// updated_at DESC, id DESC
	for i := 0; i < len(likers); i++ {
		for j := i + 1; j < len(likers); j++ {
			a, b := likers[i], likers[j]
			if b.UpdatedAt.After(a.UpdatedAt) || (b.UpdatedAt.Equal(a.UpdatedAt) && b.ID > a.ID) {
				likers[i], likers[j] = likers[j], likers[i]
			}
		}
	}
	if len(likers) > limit {
		likers = likers[:limit]
	}
	return likers, nil
}

func (m *memoryLedger) StatusFor(_ context.Context, kind models.SubjectKind, subjectID, userID uint) (models.LikeStatus, error) {
	if row, ok := m.rows[m.key(kind, subjectID, userID)]; ok {
		return row.Status, nil
	}
	return models.StatusNone, nil
}

func (m *memoryLedger) StatusesFor(_ context.Context, kind models.SubjectKind, subjectIDs []uint, userID uint) (map[uint]models.LikeStatus, error) {
	statuses := map[uint]models.LikeStatus{}
	for _, id := range subjectIDs {
		if row, ok := m.rows[m.key(kind, id, userID)]; ok {
			statuses[id] = row.Status
		}
	}
	return statuses, nil
}

// postSummary records what the projector last wrote for a post.
type postSummary struct {
	likes    int64
	dislikes int64
	newest   models.NewestLikes
}

type engagementHarness struct {
	ledger    *memoryLedger
	posts     map[uint]*postSummary
	comments  map[uint]*postSummary
	service   *ReactionService
	projector *Projector
}

func newEngagementHarness() *engagementHarness {
	h := &engagementHarness{
		ledger:   newMemoryLedger(),
		posts:    map[uint]*postSummary{},
		comments: map[uint]*postSummary{},
	}

	postRepo := noopPostRepo()
	postRepo.updateEngagementFn = func(_ context.Context, id uint, likes, dislikes int64, newest models.NewestLikes) error {
		h.posts[id] = &postSummary{likes: likes, dislikes: dislikes, newest: newest}
		return nil
	}
	commentRepo := noopCommentRepo()
	commentRepo.updateEngagementFn = func(_ context.Context, id uint, likes, dislikes int64) error {
		h.comments[id] = &postSummary{likes: likes, dislikes: dislikes}
		return nil
	}

	h.projector = NewProjector(h.ledger, postRepo, commentRepo)
	h.service = NewReactionService(h.ledger, postRepo, commentRepo, h.projector)
	return h
}

func (h *engagementHarness) react(t *testing.T, userID uint, login string, status string) {
	t.Helper()
	err := h.service.SetReaction(context.Background(), SetReactionInput{
		Subject:    models.SubjectPost,
		SubjectID:  1,
		Caller:     Identity{UserID: userID, Login: login},
		LikeStatus: status,
	})
	require.NoError(t, err)
}

func (h *engagementHarness) post(t *testing.T) *postSummary {
	t.Helper()
	s, ok := h.posts[1]
	require.True(t, ok, "post summary was never projected")
	return s
}

func TestEngagement_TwoUserScenario(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	// A likes
	h.react(t, 1, "userA", "Like")
	assert.Equal(t, int64(1), h.post(t).likes)
	assert.Equal(t, int64(0), h.post(t).dislikes)

	// B dislikes
	h.react(t, 2, "userB", "Dislike")
	assert.Equal(t, int64(1), h.post(t).likes)
	assert.Equal(t, int64(1), h.post(t).dislikes)

	// A switches to dislike
	h.react(t, 1, "userA", "Dislike")
	assert.Equal(t, int64(0), h.post(t).likes)
	assert.Equal(t, int64(2), h.post(t).dislikes)

	// B withdraws
	h.react(t, 2, "userB", "None")
	assert.Equal(t, int64(0), h.post(t).likes)
	assert.Equal(t, int64(1), h.post(t).dislikes)

	// A withdraws; everything back to zero
	h.react(t, 1, "userA", "None")
	assert.Equal(t, int64(0), h.post(t).likes)
	assert.Equal(t, int64(0), h.post(t).dislikes)
	assert.Empty(t, h.post(t).newest)
}

func TestEngagement_NewestLikesBoundedAndOrdered(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	// Four users like in order A, B, C, D
	h.react(t, 1, "userA", "Like")
	h.react(t, 2, "userB", "Like")
	h.react(t, 3, "userC", "Like")
	h.react(t, 4, "userD", "Like")

	summary := h.post(t)
	assert.Equal(t, int64(4), summary.likes)
	require.Len(t, summary.newest, 3)
	assert.Equal(t, "userD", summary.newest[0].Login)
	assert.Equal(t, "userC", summary.newest[1].Login)
	assert.Equal(t, "userB", summary.newest[2].Login)
}

func TestEngagement_Idempotence(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	h.react(t, 1, "userA", "Like")
	h.react(t, 2, "userB", "Like")
	first := *h.post(t)

	// Replaying the same reaction changes nothing, including order
	h.react(t, 1, "userA", "Like")
	second := *h.post(t)
	assert.Equal(t, first.likes, second.likes)
	assert.Equal(t, first.dislikes, second.dislikes)
	require.Equal(t, len(first.newest), len(second.newest))
	for i := range first.newest {
		assert.Equal(t, first.newest[i].Login, second.newest[i].Login)
		assert.Equal(t, first.newest[i].AddedAt, second.newest[i].AddedAt)
	}
}

func TestEngagement_Reversibility(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	h.react(t, 1, "userA", "Like")
	h.react(t, 1, "userA", "Dislike")
	h.react(t, 1, "userA", "Like")
	h.react(t, 1, "userA", "None")

	summary := h.post(t)
	assert.Equal(t, int64(0), summary.likes)
	assert.Equal(t, int64(0), summary.dislikes)
	assert.Empty(t, summary.newest)

	status, err := h.ledger.StatusFor(context.Background(), models.SubjectPost, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNone, status)
}

func TestEngagement_Exclusivity(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	// A user flipping between states never counts twice
	h.react(t, 1, "userA", "Like")
	h.react(t, 1, "userA", "Dislike")

	summary := h.post(t)
	assert.Equal(t, int64(0), summary.likes)
	assert.Equal(t, int64(1), summary.dislikes)
	assert.Equal(t, int64(1), summary.likes+summary.dislikes)
}

func TestEngagement_SwitchBackMovesLikerToFront(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	h.react(t, 1, "userA", "Like")
	h.react(t, 2, "userB", "Like")
	h.react(t, 3, "userC", "Like")

	// A's like is the oldest; switching away and back makes it newest
	h.react(t, 1, "userA", "Dislike")
	h.react(t, 1, "userA", "Like")

	summary := h.post(t)
	assert.Equal(t, int64(3), summary.likes)
	require.Len(t, summary.newest, 3)
	assert.Equal(t, "userA", summary.newest[0].Login)
	assert.Equal(t, "userC", summary.newest[1].Login)
	assert.Equal(t, "userB", summary.newest[2].Login)
}

func TestEngagement_ProjectionConvergesAfterDrift(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	h.react(t, 1, "userA", "Like")
	h.react(t, 2, "userB", "Dislike")

	// Simulate a lost summary write, then re-project
	h.posts[1] = &postSummary{likes: 99, dislikes: 99}
	require.NoError(t, h.projector.Project(context.Background(), models.SubjectPost, 1))

	summary := h.post(t)
	assert.Equal(t, int64(1), summary.likes)
	assert.Equal(t, int64(1), summary.dislikes)
	require.Len(t, summary.newest, 1)
	assert.Equal(t, "userA", summary.newest[0].Login)
}

func TestEngagement_CommentSummaryHasNoNewestLikes(t *testing.T) {
	t.Parallel()
	h := newEngagementHarness()

	err := h.service.SetReaction(context.Background(), SetReactionInput{
		Subject:    models.SubjectComment,
		SubjectID:  5,
		Caller:     Identity{UserID: 1, Login: "userA"},
		LikeStatus: "Like",
	})
	require.NoError(t, err)

	summary, ok := h.comments[5]
	require.True(t, ok)
	assert.Equal(t, int64(1), summary.likes)
	assert.Nil(t, summary.newest)
	assert.NotContains(t, h.posts, uint(5))
}
