// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the Plume application.
// A post carries text, an image, or both; creation enforces at least one.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Text   string `gorm:"type:text" json:"text"`
	// Img is the hosted image URL, empty when the post has no image.
	Img      string    `json:"img"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
	// LikerIDs is not persisted; computed from the likes table at query time.
	LikerIDs  []uint    `gorm:"-" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
