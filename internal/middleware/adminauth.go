package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/internal/auth"
)

// NewAdminAuth returns a middleware that requires a valid admin session
// token on every privileged call. Tokens are sent as a bearer credential.
func NewAdminAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing admin session token")
		}
		if err := tokens.VerifySession(token); err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired admin session token")
		}
		return c.Next()
	}
}
