package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cla-designs/clabot/internal/auth"
	"github.com/cla-designs/clabot/internal/tokenstorage"
)

// AuthMiddleware guards the admin API group with the jwt cookie issued by
// the login handler.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if !tokenstorage.CheckToken(tokenString) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unknown token",
		})
	}

	login, err := auth.ParseLogin(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	c.Locals("adminLogin", login)

	return c.Next()
}
