package server

import (
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Listing marks everything
// read as a side effect.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifications, err := s.notificationService.ListAndMarkRead(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, notifications, "")
}

// DeleteNotifications handles DELETE /api/notifications
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	if err := s.notificationService.DeleteAll(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, nil, "Notifications deleted successfully")
}
