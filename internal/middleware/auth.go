// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"plume/internal/config"
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// On success the user ID lands in Locals("userID") and in the request context
// so the context-aware logger picks it up.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Authorization required"))
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid authorization header format"))
	}

	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid token claims"))
	}

	// Validate issuer and audience
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "plume-api" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid token issuer"))
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "plume-client" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid token audience"))
	}

	// Extract user ID from "sub" claim (subject claim per RFC 7519)
	sub, ok := claims["sub"].(string)
	if !ok {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid subject claim"))
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	// Store user ID in context
	c.Locals("userID", uint(userID))
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), UserIDKey, uint(userID))
	c.SetUserContext(ctx)

	return c.Next()
}
