package model

import "time"

// Post bodies are stored as sanitized markdown source and only turned into
// HTML when rendered. CreatedAt is set on insert and never updated.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
