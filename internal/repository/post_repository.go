package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gopherblog/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Omit(clause.Associations).Create(post).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("create post failed: %w", ErrDuplicate)
		}
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) ListByAuthorID(authorID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("author_id = ?", authorID).Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

// UpdateContent rewrites title and body only; created_at and author_id are untouched.
func (r *PostRepository) UpdateContent(id uint, title, body string) error {
	err := r.db.Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title": title,
		"body":  body,
	}).Error
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("update post failed: %w", ErrDuplicate)
		}
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Post{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts failed: %w", err)
	}
	return count, nil
}
