package models

import (
	"strings"
	"time"
)

// Post is a blog entry. AuthorID is written once at creation.
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AuthorID   uint      `json:"author_id" gorm:"not null;index"`
	Author     User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Body       string    `json:"body" gorm:"type:text;not null"`
	CategoryID *uint     `json:"category_id" gorm:"index"`
	Category   *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PostView is a post as served to readers: joined author and category names
// plus engagement figures computed from the likes and comments tables.
type PostView struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CategoryID     *uint     `json:"category_id"`
	CategoryName   *string   `json:"category_name"`
	LikeCount      int64     `json:"like_count"`
	CommentCount   int64     `json:"comment_count"`
	ViewerHasLiked *bool     `json:"viewer_has_liked,omitempty"` // only set for authenticated readers
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,min=5,max=255"`
	Body       string `json:"body" validate:"required,min=10"`
	CategoryID *uint  `json:"category_id" validate:"omitempty,min=1"`
}

func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
}

// UpdatePostRequest replaces title, body and category of an existing post
type UpdatePostRequest struct {
	Title      string `json:"title" validate:"required,min=5,max=255"`
	Body       string `json:"body" validate:"required,min=10"`
	CategoryID *uint  `json:"category_id" validate:"omitempty,min=1"`
}

func (r *UpdatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
}
