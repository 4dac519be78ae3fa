// Package seed provides database seeding utilities for development and
// testing. Generated content respects the same field limits the API
// enforces, so seeded databases look like organically grown ones.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumBlogs        int
	PostsPerBlog    int
	CommentsPerPost int
	ShouldClean     bool
}

// DefaultOptions returns a sensible demo-sized data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:        25,
		NumBlogs:        6,
		PostsPerBlog:    8,
		CommentsPerPost: 3,
		ShouldClean:     true,
	}
}

// Seeder populates the database with generated content.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable content. Reactions go first so no
// ledger rows survive their subjects.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Reaction{},
		&models.Comment{},
		&models.Post{},
		&models.Blog{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// Seed populates the database and leaves every engagement summary
// consistent with the reaction ledger.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	log.Printf("🌱 Seeding %d users, %d blogs, %d posts per blog...",
		opts.NumUsers, opts.NumBlogs, opts.PostsPerBlog)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	blogs, err := s.createBlogs(opts.NumBlogs)
	if err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("✓ %d blogs created", len(blogs))

	posts, err := s.createPosts(blogs, opts.PostsPerBlog)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := s.createComments(posts, users, opts.CommentsPerPost)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	if err := s.createReactions(ctx, posts, comments, users); err != nil {
		return fmt.Errorf("failed to create reactions: %w", err)
	}
	log.Println("✓ reactions applied and summaries projected")

	return nil
}

func (s *Seeder) createUsers(n int) ([]models.User, error) {
	// MinCost keeps bulk seeding fast; these are throwaway accounts.
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		login := fakeLogin(i)
		users = append(users, models.User{
			Login:        login,
			Email:        fakeEmail(login),
			PasswordHash: string(hash),
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createBlogs(n int) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0, n)
	for i := 0; i < n; i++ {
		blogs = append(blogs, models.Blog{
			Name:        fakeBlogName(),
			Description: fakeBlogDescription(),
			WebsiteURL:  fakeWebsiteURL(),
		})
	}
	if err := s.db.CreateInBatches(&blogs, 100).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (s *Seeder) createPosts(blogs []models.Blog, perBlog int) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(blogs)*perBlog)
	for _, blog := range blogs {
		for i := 0; i < perBlog; i++ {
			posts = append(posts, models.Post{
				Title:            fakePostTitle(),
				ShortDescription: fakeShortDescription(),
				Content:          fakePostContent(),
				BlogID:           blog.ID,
				BlogName:         blog.Name,
				NewestLikes:      models.NewestLikes{},
			})
		}
	}
	if err := s.db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Seeder) createComments(posts []models.Post, users []models.User, perPost int) ([]models.Comment, error) {
	if len(users) == 0 {
		return nil, nil
	}
	comments := make([]models.Comment, 0, len(posts)*perPost)
	for _, post := range posts {
		for i := 0; i < perPost; i++ {
			author := users[s.rng.Intn(len(users))]
			comments = append(comments, models.Comment{
				Content:   fakeCommentContent(),
				PostID:    post.ID,
				UserID:    author.ID,
				UserLogin: author.Login,
			})
		}
	}
	if len(comments) == 0 {
		return comments, nil
	}
	if err := s.db.CreateInBatches(&comments, 100).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// createReactions runs the real ledger and projector so seeded
// summaries are exactly what production writes would produce.
func (s *Seeder) createReactions(ctx context.Context, posts []models.Post, comments []models.Comment, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	reactionRepo := repository.NewReactionRepository(s.db)
	postRepo := repository.NewPostRepository(s.db)
	commentRepo := repository.NewCommentRepository(s.db)
	projector := service.NewProjector(reactionRepo, postRepo, commentRepo)

	react := func(kind models.SubjectKind, subjectID uint) error {
		for _, user := range users {
			roll := s.rng.Float64()
			var status models.LikeStatus
			switch {
			case roll < 0.35:
				status = models.StatusLike
			case roll < 0.45:
				status = models.StatusDislike
			default:
				continue
			}
			if err := reactionRepo.Upsert(ctx, kind, subjectID, user.ID, user.Login, status); err != nil {
				return err
			}
		}
		return projector.Project(ctx, kind, subjectID)
	}

	for _, post := range posts {
		if err := react(models.SubjectPost, post.ID); err != nil {
			return err
		}
	}
	for _, comment := range comments {
		if err := react(models.SubjectComment, comment.ID); err != nil {
			return err
		}
	}
	return nil
}
