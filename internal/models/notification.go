// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NotificationType identifies what action produced a notification.
type NotificationType string

const (
	// NotificationTypeLike is emitted when a user likes a post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeFollow is emitted when a user follows another user.
	NotificationTypeFollow NotificationType = "follow"
)

// Notification is a directed event from one user to another. FromID and ToID
// are weak references: deleting a user or post leaves its notifications in
// place rather than cascading.
type Notification struct {
	ID     uint             `gorm:"primaryKey" json:"id"`
	FromID uint             `gorm:"not null;index" json:"from_id"`
	From   User             `gorm:"foreignKey:FromID" json:"from"`
	ToID   uint             `gorm:"not null;index" json:"to_id"`
	Type   NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Read   bool             `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
