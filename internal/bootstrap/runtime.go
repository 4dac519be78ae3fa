// Package bootstrap establishes the runtime dependencies (database,
// Redis, development fixtures) shared by the server and CLI commands.
package bootstrap

import (
	"fmt"
	"strings"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns creates the starter blogs on boot. Only honored in
	// development.
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally seeds built-in
// content. The Redis client may be nil when the cache is unreachable;
// callers degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns && strings.EqualFold(cfg.Env, "development") {
		if err := seed.Builtins(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in blogs: %w", err)
		}
	}

	return db, r, nil
}
