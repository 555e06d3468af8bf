package service

import (
	"context"
	"strings"

	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/repository"

	"gorm.io/gorm"
)

// EngagementService handles likes and comments on posts. A like toggle is an
// involution: applying it twice restores the post's liker set and the user's
// liked-post set, because both are projections of the same like row.
type EngagementService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(db *gorm.DB, postRepo repository.PostRepository, likeRepo repository.LikeRepository) *EngagementService {
	return &EngagementService{
		db:       db,
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

// ToggleLike flips the actor's like on the post and returns the resulting
// liker IDs. Liking notifies the post's author (self-likes included; the
// design does not forbid them); unliking emits nothing.
func (s *EngagementService) ToggleLike(ctx context.Context, actorID, postID uint) ([]uint, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.likeRepo.Delete(ctx, actorID, postID); err != nil {
			return nil, err
		}
	} else {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repository.NewLikeRepository(tx).Create(ctx, &models.Like{
				UserID: actorID,
				PostID: postID,
			}); err != nil {
				return err
			}
			return repository.NewNotificationRepository(tx).Create(ctx, &models.Notification{
				FromID: actorID,
				ToID:   post.UserID,
				Type:   models.NotificationTypeLike,
			})
		})
		if err != nil {
			return nil, err
		}
		middleware.NotificationsEmitted.WithLabelValues(string(models.NotificationTypeLike)).Inc()
	}

	likers, err := s.likeRepo.LikerIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likers == nil {
		likers = []uint{}
	}
	return likers, nil
}

// AddComment appends a comment to the post and returns the refreshed post.
// Repeated identical comments are allowed.
func (s *EngagementService) AddComment(ctx context.Context, actorID, postID uint, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text field is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.AddComment(ctx, &models.Comment{
		PostID: postID,
		UserID: actorID,
		Text:   text,
	}); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}
