package middleware

import (
	"time"

	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func LoggingMiddleware(log *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Render the error here so the logged status is the one the client sees.
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		kv := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"ip", c.IP(),
			"request_id", RequestID(c),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("Request", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warn("Request", kv...)
		default:
			log.Info("Request", kv...)
		}
		return nil
	}
}
