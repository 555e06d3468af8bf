package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// FeedService composes read-only post views. Every variant sorts by creation
// time descending and carries populated author/commenter identities.
type FeedService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		likeRepo:   likeRepo,
	}
}

// AllPosts returns every post, newest first.
func (s *FeedService) AllPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// PostsByAuthor returns the given user's posts, newest first.
func (s *FeedService) PostsByAuthor(ctx context.Context, username string) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessageError("User not found")
	}
	return s.postRepo.ListByAuthor(ctx, user.ID)
}

// PostsByFollowing returns posts authored by users the actor follows.
func (s *FeedService) PostsByFollowing(ctx context.Context, actorID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	followingIDs, err := s.followRepo.FollowingIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthors(ctx, followingIDs)
}

// PostsLikedBy returns the posts the given user has liked.
func (s *FeedService) PostsLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	likedIDs, err := s.likeRepo.LikedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByIDs(ctx, likedIDs)
}
