package models

import "time"

// Like records that a user likes a post. The composite primary key is the
// only thing preventing a second like for the same pair.
type Like struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
