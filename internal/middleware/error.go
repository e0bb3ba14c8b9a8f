package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ouvidoria-ativa/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler maps the service failure taxonomy and plain Fiber errors to a
// uniform JSON error body. Citizen-facing sentinels keep their plain-language
// message; unknown failures collapse to a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrValidation):
		code, errorCode, message = fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrAuthRequired):
		code, errorCode, message = fiber.StatusUnauthorized, "AUTHENTICATION_REQUIRED", domain.ErrAuthRequired.Error()
	case errors.Is(err, domain.ErrNotFound):
		code, errorCode, message = fiber.StatusNotFound, "NOT_FOUND", domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrAlreadyFinalized):
		code, errorCode, message = fiber.StatusConflict, "INVALID_STATE", domain.ErrAlreadyFinalized.Error()
	case errors.Is(err, domain.ErrInvalidState):
		code, errorCode, message = fiber.StatusConflict, "INVALID_STATE", err.Error()
	case errors.Is(err, domain.ErrLocked):
		code, errorCode, message = fiber.StatusLocked, "LOCKED", domain.ErrLocked.Error()
	case errors.Is(err, domain.ErrProtocolTaken):
		code, errorCode, message = fiber.StatusConflict, "CONFLICT", "could not allocate a unique protocol, try again"
	case errors.Is(err, domain.ErrUnavailable):
		code, errorCode, message = fiber.StatusServiceUnavailable, "UNAVAILABLE", domain.ErrUnavailable.Error()
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
			errorCode = codeName(code)
		}
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func codeName(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	}
	return "INTERNAL_ERROR"
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
