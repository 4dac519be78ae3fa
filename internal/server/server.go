// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "quill/docs" // swagger docs
	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/featureflags"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	flags           *featureflags.Manager
	userRepo        repository.UserRepository
	blogRepo        repository.BlogRepository
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	reactionRepo    repository.ReactionRepository
	blogService     *service.BlogService
	postService     *service.PostService
	commentService  *service.CommentService
	userService     *service.UserService
	reactionService *service.ReactionService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	prom := middleware.InitMetrics("quill-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       userRepo,
		blogRepo:       blogRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		reactionRepo:   reactionRepo,
	}

	projector := service.NewProjector(reactionRepo, postRepo, commentRepo)
	server.blogService = service.NewBlogService(blogRepo, postRepo)
	server.postService = service.NewPostService(postRepo, blogRepo, reactionRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo, reactionRepo)
	server.userService = service.NewUserService(userRepo)
	server.reactionService = service.NewReactionService(reactionRepo, postRepo, commentRepo, projector)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Distributed tracing spans
	app.Use(middleware.TracingMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Quill Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Feature flags evaluated for the caller (anonymous gets the
	// zero-user rollout bucket)
	api.Get("/flags", middleware.OptionalAuth, s.GetFeatureFlags)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", middleware.AuthRequired, s.Refresh)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)
	auth.Get("/me", middleware.AuthRequired, s.Me)

	// Blog routes: public reads, admin-only writes
	blogs := api.Group("/blogs")
	blogs.Get("/", s.GetBlogs)
	blogs.Get("/:id/posts", middleware.OptionalAuth, s.GetBlogPosts)
	blogs.Get("/:id", s.GetBlog)
	blogs.Post("/", middleware.BasicAuthRequired, s.CreateBlog)
	blogs.Post("/:id/posts", middleware.BasicAuthRequired, s.CreateBlogPost)
	blogs.Put("/:id", middleware.BasicAuthRequired, s.UpdateBlog)
	blogs.Delete("/:id", middleware.BasicAuthRequired, s.DeleteBlog)

	// Post routes. Specific /:id/:resource routes BEFORE generic /:id.
	posts := api.Group("/posts")
	posts.Get("/", middleware.OptionalAuth, s.GetPosts)
	posts.Put("/:id/like-status", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 30, time.Minute, "like_status"), s.SetPostLikeStatus)
	posts.Get("/:id/comments", middleware.OptionalAuth, s.GetPostComments)
	posts.Post("/:id/comments", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreatePostComment)
	posts.Get("/:id", middleware.OptionalAuth, s.GetPost)
	posts.Post("/", middleware.BasicAuthRequired, s.CreatePost)
	posts.Put("/:id", middleware.BasicAuthRequired, s.UpdatePost)
	posts.Delete("/:id", middleware.BasicAuthRequired, s.DeletePost)

	// Comment routes
	comments := api.Group("/comments")
	comments.Put("/:id/like-status", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 30, time.Minute, "like_status"), s.SetCommentLikeStatus)
	comments.Get("/:id", middleware.OptionalAuth, s.GetComment)
	comments.Put("/:id", middleware.AuthRequired, s.UpdateComment)
	comments.Delete("/:id", middleware.AuthRequired, s.DeleteComment)

	// User administration
	users := api.Group("/users", middleware.BasicAuthRequired)
	users.Get("/", s.GetUsers)
	users.Post("/", s.CreateUser)
	users.Delete("/:id", s.DeleteUser)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis; report but stay ready
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Quill API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
