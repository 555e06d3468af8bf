package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/profile/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := s.profileService.GetProfile(c.UserContext(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user, "")
}

// GetSuggestedUsers handles GET /api/users/suggested
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	users, err := s.graphService.SuggestedUsers(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, users, "")
}

// FollowUnfollowUser handles POST /api/users/follow/:id. The same endpoint
// toggles: it follows when no edge exists and unfollows when one does.
func (s *Server) FollowUnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actorID := currentUserID(c)

	following, err := s.followRepo.Exists(c.UserContext(), actorID, targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.graphService.SetFollowState(c.UserContext(), actorID, targetID, !following); err != nil {
		return models.RespondWithError(c, err)
	}

	message := "User followed successfully"
	if following {
		message = "User unfollowed successfully"
	}
	return models.RespondWithData(c, fiber.StatusOK, nil, message)
}

// UpdateUserProfile handles POST /api/users/update
func (s *Server) UpdateUserProfile(c *fiber.Ctx) error {
	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.UpdateProfile(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user, "Profile updated successfully")
}
