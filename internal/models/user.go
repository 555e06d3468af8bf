// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Plume application.
//
// Follower, following, and liked-post relationships are stored as rows in the
// follows and likes tables; the slice fields below are query-time projections
// so API responses keep the shape clients expect.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	FullName   string `gorm:"not null" json:"full_name"`
	Bio        string `json:"bio"`
	Link       string `json:"link"`
	ProfileImg string `json:"profile_img"`
	CoverImg   string `json:"cover_img"`

	// Followers/Following are not persisted; populated at query time.
	Followers []uint `gorm:"-" json:"followers"`
	Following []uint `gorm:"-" json:"following"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
