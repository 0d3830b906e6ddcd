package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// APIError is an error that maps directly onto an HTTP response.
// Details are merged into the JSON body next to "error".
type APIError struct {
	Status  int
	Message string
	Details fiber.Map
	Err     error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Body renders the response payload.
func (e *APIError) Body() fiber.Map {
	body := fiber.Map{"error": e.Message}
	for k, v := range e.Details {
		body[k] = v
	}
	return body
}

func ValidationErr(message string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: message}
}

func NotFoundErr(message string) *APIError {
	return &APIError{Status: fiber.StatusNotFound, Message: message}
}

func ConflictErr(message string) *APIError {
	return &APIError{Status: fiber.StatusConflict, Message: message}
}

func ForbiddenErr(message string) *APIError {
	return &APIError{Status: fiber.StatusForbidden, Message: message}
}

func InternalErr(err error) *APIError {
	return &APIError{Status: fiber.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// WithDetails attaches extra response fields.
func (e *APIError) WithDetails(details fiber.Map) *APIError {
	e.Details = details
	return e
}

// AsAPIError reports whether err carries an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
