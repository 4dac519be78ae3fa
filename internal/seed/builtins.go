package seed

import (
	"errors"
	"fmt"

	"quill/internal/models"

	"gorm.io/gorm"
)

// builtinBlogs are the starter blogs every development database gets.
// Names stay within the 15 character limit enforced by the API.
var builtinBlogs = []models.Blog{
	{Name: "Engineering", Description: "Notes from the engineering team on systems, tooling and process.", WebsiteURL: "https://engineering.quill.dev"},
	{Name: "Product", Description: "Product announcements and behind-the-scenes looks at upcoming work.", WebsiteURL: "https://product.quill.dev"},
	{Name: "Community", Description: "Stories, interviews and highlights from the community.", WebsiteURL: "https://community.quill.dev"},
}

// Builtins creates the starter blogs if they do not already exist.
// Safe to run repeatedly; existing blogs are left untouched.
func Builtins(db *gorm.DB) error {
	for _, blog := range builtinBlogs {
		var existing models.Blog
		err := db.Where("name = ?", blog.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up built-in blog %q: %w", blog.Name, err)
		}
		if err := db.Create(&blog).Error; err != nil {
			return fmt.Errorf("failed to create built-in blog %q: %w", blog.Name, err)
		}
	}
	return nil
}
