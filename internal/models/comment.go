package models

import (
	"strings"
	"time"
)

// Comment represents a comment on a post. Comments cannot be edited.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type CommentView struct {
	ID             uint      `json:"id"`
	PostID         uint      `json:"post_id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Body = strings.TrimSpace(r.Body)
}
