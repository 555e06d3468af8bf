// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"plume/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
// Notifications are only ever created inside a graph or engagement transaction;
// construct the repository over the transaction handle for those writes.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, toID uint) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, toID uint) error
	DeleteAllForRecipient(ctx context.Context, toID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, toID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Preload("From").
		Where("to_id = ?", toID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, toID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("to_id = ?", toID).
		Update("read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) DeleteAllForRecipient(ctx context.Context, toID uint) error {
	if err := r.db.WithContext(ctx).
		Where("to_id = ?", toID).
		Delete(&models.Notification{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
