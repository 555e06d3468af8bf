package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllPosts handles GET /api/posts/all
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.AllPosts(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts, "")
}

// GetFollowingPosts handles GET /api/posts/following
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.PostsByFollowing(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts, "")
}

// GetLikedPosts handles GET /api/posts/likes/:id
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	posts, err := s.feedService.PostsLikedBy(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts, "")
}

// GetUserPosts handles GET /api/posts/user/:username
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	posts, err := s.feedService.PostsByAuthor(c.UserContext(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts, "")
}

// CreatePost handles POST /api/posts/create
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var input service.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, post, "Post created successfully")
}

// LikeUnlikePost handles POST /api/posts/like/:id
func (s *Server) LikeUnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likers, err := s.engagementService.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, likers, "")
}

// CommentOnPost handles POST /api/posts/comment/:id
func (s *Server) CommentOnPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.engagementService.AddComment(c.UserContext(), currentUserID(c), postID, req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, post, "Comment added successfully")
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, nil, "Post deleted successfully")
}
