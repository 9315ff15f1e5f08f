package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/elimu-hub/internal/domain"
)

// aiFailureMessage is the only text clients see when the completion provider fails.
const aiFailureMessage = "Sorry, I encountered an error. Please try again."

// writeError maps a use case error onto the HTTP status and uniform error body.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("user_id", GetUserID(c)).Msg("request failed")
	}
	return c.Status(status).JSON(errBody(code, msg))
}

func classify(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return fiber.StatusBadRequest, "FILE_TOO_LARGE", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS", err.Error()
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusInternalServerError, "AI_ERROR", aiFailureMessage
	}
	return fiber.StatusInternalServerError, "INTERNAL", "internal server error"
}

// ErrorHandler is the fiber app error handler. A body over the server's BodyLimit is
// rejected by fasthttp before any handler runs and surfaces here as a 413; it gets the
// same 400 FILE_TOO_LARGE as an upload over its per-kind limit. Other fiber errors keep
// their status, everything else goes through writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return c.Status(fiber.StatusBadRequest).JSON(errBody("FILE_TOO_LARGE", "file exceeds the maximum upload size"))
		}
		return c.Status(fe.Code).JSON(errBody("HTTP_ERROR", fe.Message))
	}
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(errBody("INVALID_BODY", "invalid request body"))
}
