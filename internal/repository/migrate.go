package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

// Migrate creates the users and posts tables when they do not exist yet.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}
