package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Success sends data as-is with the given status.
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Created sends 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

// Message sends {"message": msg}.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// Error sends {"error": message} plus optional extra fields.
func Error(c *fiber.Ctx, status int, message string, details ...fiber.Map) error {
	body := fiber.Map{"error": message}
	for _, d := range details {
		for k, v := range d {
			body[k] = v
		}
	}
	return c.Status(status).JSON(body)
}

// NotFound sends 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// BadRequest sends 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Conflict sends 409.
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// ErrorHandler renders every error that reaches fiber. APIErrors keep their
// status, fiber routing errors get the API's wording, the rest become a
// generic 500.
func ErrorHandler(log *Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if apiErr, ok := AsAPIError(err); ok {
			if apiErr.Status >= fiber.StatusInternalServerError {
				log.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
			}
			return c.Status(apiErr.Status).JSON(apiErr.Body())
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusMethodNotAllowed:
				return Error(c, fe.Code, "Method not allowed")
			case fiber.StatusNotFound:
				return Error(c, fe.Code, "Not found")
			case fiber.StatusInternalServerError:
				log.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
				return Error(c, fe.Code, "Internal server error")
			default:
				return Error(c, fe.Code, fe.Message)
			}
		}

		log.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// Fail renders client errors in place and hands everything else to the
// app's ErrorHandler so it is logged once.
func Fail(c *fiber.Ctx, err error) error {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Status < fiber.StatusInternalServerError {
		return c.Status(apiErr.Status).JSON(apiErr.Body())
	}
	return err
}
