package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// NotificationService exposes the recipient-side notification operations.
// Creation happens only inside graph/engagement transactions, never here.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListAndMarkRead returns the recipient's notifications with actors attached,
// then marks them all read. The returned snapshot reflects the pre-read state.
func (s *NotificationService) ListAndMarkRead(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

// DeleteAll removes every notification addressed to the user.
func (s *NotificationService) DeleteAll(ctx context.Context, userID uint) error {
	return s.notificationRepo.DeleteAllForRecipient(ctx, userID)
}
