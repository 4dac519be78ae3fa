// Command main runs the database seeder for Quill.
package main

import (
	"context"
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numBlogs := flag.Int("blogs", 6, "Number of blogs to create")
	postsPerBlog := flag.Int("posts-per-blog", 8, "Number of posts per blog")
	commentsPerPost := flag.Int("comments-per-post", 3, "Number of comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	builtinsOnly := flag.Bool("builtins-only", false, "Only create the starter blogs")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *builtinsOnly {
		if err := seed.Builtins(db); err != nil {
			log.Fatalf("❌ Built-in blog seeding failed: %v", err)
		}
		log.Println("✅ Starter blogs ensured")
		return
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(context.Background(), seed.Options{
		NumUsers:        *numUsers,
		NumBlogs:        *numBlogs,
		PostsPerBlog:    *postsPerBlog,
		CommentsPerPost: *commentsPerPost,
		ShouldClean:     *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// Starter blogs go in last so a clean run still has them.
	if err := seed.Builtins(db); err != nil {
		log.Fatalf("❌ Built-in blog seeding failed: %v", err)
	}

	log.Println("✅ Database seeded successfully")
}
