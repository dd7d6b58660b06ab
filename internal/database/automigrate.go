package database

import (
	"fmt"

	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models. Tables, indexes
// and the composite unique constraints on the like tables are created from the
// struct tags in the domain package.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.Post{},
		&domain.Comment{},
		&domain.PostLike{},
		&domain.CommentLike{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}
