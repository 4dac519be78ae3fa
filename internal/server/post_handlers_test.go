package server

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likeStatusRequest(target, body, authorization string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func TestSetPostLikeStatus_RequiresAuth(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(s)

	req := likeStatusRequest("/api/posts/1/like-status", `{"likeStatus":"Like"}`, "")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSetPostLikeStatus_RejectsMalformedToken(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(s)

	req := likeStatusRequest("/api/posts/1/like-status", `{"likeStatus":"Like"}`, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSetPostLikeStatus_InvalidID(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(s)

	req := likeStatusRequest("/api/posts/abc/like-status", `{"likeStatus":"Like"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid ID", body["error"])
}

// An unknown likeStatus is rejected before the post is looked up, so no
// database expectations are set here.
func TestSetPostLikeStatus_InvalidStatus(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	req := likeStatusRequest("/api/posts/1/like-status", `{"likeStatus":"Meh"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPostLikeStatus_PostMissing(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := likeStatusRequest("/api/posts/99/like-status", `{"likeStatus":"Like"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Post with ID 99 not found", body["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The full write path: existence check, ledger upsert, then the summary
// recompute (two counts, newest likers, one UPDATE on posts).
func TestSetPostLikeStatus_Like(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reactions`)).
		WithArgs(models.SubjectPost, 1, 10, "alice", models.StatusLike).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, models.StatusLike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, models.StatusDislike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	likerRows := sqlmock.NewRows(
		[]string{"id", "subject_kind", "subject_id", "user_id", "user_login", "status", "updated_at"}).
		AddRow(1, "post", 1, 10, "alice", "Like", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, models.StatusLike, 3).
		WillReturnRows(likerRows)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := likeStatusRequest("/api/posts/1/like-status", `{"likeStatus":"Like"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// None removes the ledger row and the summary recomputes down to zero.
func TestSetPostLikeStatus_None(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, models.StatusLike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, models.StatusDislike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reactions"`)).
		WithArgs(models.SubjectPost, 1, models.StatusLike, 3).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "subject_kind", "subject_id", "user_id", "user_login", "status", "updated_at"}))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := likeStatusRequest("/api/posts/1/like-status", `{"likeStatus":"None"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCommentLikeStatus_CommentMissing(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments"`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := likeStatusRequest("/api/comments/5/like-status", `{"likeStatus":"Dislike"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Comment with ID 5 not found", body["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Comment reactions never touch the posts table; the summary lands on
// the comment row and carries no newest-likes list.
func TestSetCommentLikeStatus_Dislike(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments"`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reactions`)).
		WithArgs(models.SubjectComment, 5, 10, "alice", models.StatusDislike).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reactions"`)).
		WithArgs(models.SubjectComment, 5, models.StatusLike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reactions"`)).
		WithArgs(models.SubjectComment, 5, models.StatusDislike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := likeStatusRequest("/api/comments/5/like-status", `{"likeStatus":"Dislike"}`,
		bearerFor(t, s, 10, "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPost_NotFound(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/123", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPost_AnonymousSeesNoneStatus(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	postRows := sqlmock.NewRows(
		[]string{"id", "title", "short_description", "content", "blog_id", "blog_name",
			"likes_count", "dislikes_count", "newest_likes"}).
		AddRow(1, "First", "short", "content", 2, "Tech", 3, 1, []byte(`[]`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts"`)).
		WillReturnRows(postRows)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "First", body["title"])
	assert.Equal(t, float64(3), body["likesCount"])
	assert.Equal(t, string(models.StatusNone), body["myStatus"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost_RequiresBasicAuth(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"T","shortDescription":"s","content":"c","blogId":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePost_TitleTooLong(t *testing.T) {
	s, mock := newTestServer(t)
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"`+strings.Repeat("x", 31)+`","shortDescription":"s","content":"c","blogId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic YWRtaW46cXdlcnR5")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
