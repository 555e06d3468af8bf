package service

import (
	"context"

	"plume/internal/media"
	"plume/internal/models"
	"plume/internal/repository"
)

// PostService handles the post lifecycle. Image binding happens before the
// post row exists; deletion releases the bound resource best-effort so a
// failed release never resurrects the post.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	binder   media.Binder
}

// CreatePostInput carries the post payload; Img is the raw image payload to
// bind, not a hosted URL.
type CreatePostInput struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, binder media.Binder) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		binder:   binder,
	}
}

// CreatePost persists a new post for the author. At least one of text and
// image is required.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in CreatePostInput) (*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	if in.Text == "" && in.Img == "" {
		return nil, models.NewValidationError("Post must have text or image")
	}

	imgURL := ""
	if in.Img != "" {
		boundURL, err := s.binder.Bind(ctx, in.Img)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		imgURL = boundURL
	}

	post := &models.Post{
		UserID: authorID,
		Text:   in.Text,
		Img:    imgURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	if post.LikerIDs == nil {
		post.LikerIDs = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return post, nil
}

// DeletePost removes the post. Only the author may delete; the bound image,
// if any, is released before the row goes away.
func (s *PostService) DeletePost(ctx context.Context, requesterID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		return models.NewForbiddenError("You are not authorized to delete this post")
	}

	if post.Img != "" {
		s.binder.Release(ctx, post.Img)
	}

	return s.postRepo.Delete(ctx, postID)
}

// GetPost returns a single post with author, comments, and likers attached.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}
