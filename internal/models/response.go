package models

import (
	"github.com/gofiber/fiber/v2"
)

// APIResponse is the standard success envelope.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message,omitempty"`
}

// RespondWithData writes a success envelope with the given status, payload and message.
func RespondWithData(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}
