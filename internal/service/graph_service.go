// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/repository"

	"gorm.io/gorm"
)

const (
	suggestedSampleSize = 10
	suggestedLimit      = 4
)

// GraphService maintains the follow graph. Edge writes and their notification
// side effect are grouped in one transaction so the pair can never half-apply.
type GraphService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewGraphService returns a new GraphService.
func NewGraphService(db *gorm.DB, userRepo repository.UserRepository, followRepo repository.FollowRepository) *GraphService {
	return &GraphService{
		db:         db,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// SetFollowState makes the actor follow or unfollow the target.
// Following an already-followed user and unfollowing a non-followed one are
// no-op successes. Following emits a follow notification; unfollowing never does.
func (s *GraphService) SetFollowState(ctx context.Context, actorID, targetID uint, follow bool) error {
	if actorID == targetID {
		return models.NewValidationError("You can't follow/unfollow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return err
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return err
	}

	if !follow {
		if !exists {
			return nil
		}
		return s.followRepo.Delete(ctx, actorID, targetID)
	}

	if exists {
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewFollowRepository(tx).Create(ctx, &models.Follow{
			FollowerID: actorID,
			FolloweeID: targetID,
		}); err != nil {
			return err
		}
		return repository.NewNotificationRepository(tx).Create(ctx, &models.Notification{
			FromID: actorID,
			ToID:   target.ID,
			Type:   models.NotificationTypeFollow,
		})
	})
	if err != nil {
		return err
	}

	middleware.NotificationsEmitted.WithLabelValues(string(models.NotificationTypeFollow)).Inc()
	return nil
}

// SuggestedUsers draws a random sample of ten users (excluding the actor),
// drops the ones the actor already follows, and returns at most four. The
// post-hoc filter means the result is not a uniform sample of unfollowed users.
func (s *GraphService) SuggestedUsers(ctx context.Context, actorID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	followingIDs, err := s.followRepo.FollowingIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	following := make(map[uint]bool, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = true
	}

	sample, err := s.userRepo.SampleExcluding(ctx, actorID, suggestedSampleSize)
	if err != nil {
		return nil, err
	}

	suggested := make([]models.User, 0, suggestedLimit)
	for _, u := range sample {
		if following[u.ID] {
			continue
		}
		suggested = append(suggested, u)
		if len(suggested) == suggestedLimit {
			break
		}
	}
	return suggested, nil
}

// FollowIDs returns the follower and following ID projections for a user.
func (s *GraphService) FollowIDs(ctx context.Context, userID uint) (followers, following []uint, err error) {
	followers, err = s.followRepo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	following, err = s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return followers, following, nil
}
