package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/featureflags"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

// newTestServer wires a Server over a sqlmock DB with no Redis. It builds
// the dependency graph by hand so tests never touch the Prometheus
// registry or a real database.
func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AdminLogin:    "admin",
		AdminPassword: "qwerty",
		Env:           "test",
	}
	middleware.InitMiddleware(cfg)

	db, mock := setupMockDB(t)

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	projector := service.NewProjector(reactionRepo, postRepo, commentRepo)

	s := &Server{
		config:          cfg,
		db:              db,
		flags:           featureflags.NewManager("comment_drafts=on,reaction_hints=off"),
		userRepo:        userRepo,
		blogRepo:        blogRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		reactionRepo:    reactionRepo,
		blogService:     service.NewBlogService(blogRepo, postRepo),
		postService:     service.NewPostService(postRepo, blogRepo, reactionRepo),
		commentService:  service.NewCommentService(commentRepo, postRepo, reactionRepo),
		userService:     service.NewUserService(userRepo),
		reactionService: service.NewReactionService(reactionRepo, postRepo, commentRepo, projector),
	}
	return s, mock
}

// newTestApp returns a Fiber app with all routes registered but no
// middleware stack beyond auth (which routes attach themselves).
func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// bearerFor mints a valid token for the given identity.
func bearerFor(t *testing.T, s *Server, userID uint, login string) string {
	t.Helper()
	token, err := s.generateToken(userID, login)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"blogId", "blog ID"},
		{"postId", "post ID"},
		{"commentId", "comment ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- parseListQuery ---

func TestParseListQuery_Defaults(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		return c.JSON(parseListQuery(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["Page"])
	assert.Equal(t, float64(10), body["PageSize"])
	assert.Equal(t, "createdAt", body["SortBy"])
	assert.Equal(t, "desc", body["SortDirection"])
}

func TestParseListQuery_Custom(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		return c.JSON(parseListQuery(c))
	})

	req := httptest.NewRequest(http.MethodGet,
		"/items?pageNumber=3&pageSize=25&sortBy=name&sortDirection=asc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(3), body["Page"])
	assert.Equal(t, float64(25), body["PageSize"])
	assert.Equal(t, "name", body["SortBy"])
	assert.Equal(t, "asc", body["SortDirection"])
}

func TestParseListQuery_UnknownSortDirectionFallsBackToDesc(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		return c.JSON(parseListQuery(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/items?sortDirection=sideways", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, "desc", body["SortDirection"])
}

// --- parseID ---

func TestParseID_ValidID(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(42), body["id"])
}

func TestParseID_InvalidNonNumeric(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		_, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid ID", body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestParseID_RejectsZeroAndNegative(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		_, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.SendStatus(http.StatusOK)
	})

	for _, raw := range []string{"0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/items/"+raw, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id=%s", raw)
		_ = resp.Body.Close()
	}
}

func TestParseID_ContextSpecificErrorMessage(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/blogs/:blogId/posts", func(c *fiber.Ctx) error {
		_, err := s.parseID(c, "blogId")
		if err != nil {
			return nil
		}
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/blogs/nope/posts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid blog ID", body["error"])
}

// --- caller ---

func TestCaller_Anonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity := caller(c)
		return c.JSON(fiber.Map{"userId": identity.UserID, "login": identity.Login})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["userId"])
	assert.Equal(t, "", body["login"])
}

func TestCaller_FromLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		c.Locals("userLogin", "alice")
		identity := caller(c)
		return c.JSON(fiber.Map{"userId": identity.UserID, "login": identity.Login})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(7), body["userId"])
	assert.Equal(t, "alice", body["login"])
}
