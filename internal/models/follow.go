// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follow is a directed follow edge: the follower follows the followee.
// A's following list and B's follower list are both projections of these
// rows, which keeps the edge pair symmetric by construction.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
