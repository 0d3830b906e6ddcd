package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// PreflightMiddleware answers every OPTIONS request with 200 and an empty
// body, whether or not the path exists.
func PreflightMiddleware(allowOrigins string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		origin := allowOrigins
		if origin == "" {
			origin = "*"
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET,POST,PUT,DELETE,OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Origin, Content-Type, Accept, X-Request-ID")
		c.Status(fiber.StatusOK)
		return nil
	}
}
