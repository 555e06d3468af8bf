// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Like is a single like edge between a user and a post. The unique pair index
// makes the post's liker set and the user's liked-post set two views of the
// same rows, so the two can never disagree.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
