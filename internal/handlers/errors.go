package handlers

import (
	"errors"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const msgInternal = "internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int                   `json:"statusCode"`
	Message    string                `json:"message"`
	Errors     []apperror.FieldError `json:"errors,omitempty"`
}

// ErrorHandler maps errors returned by handlers and middleware to a status
// and an ErrorResponse. Unexpected errors are logged and reported as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{StatusCode: fiber.StatusInternalServerError, Message: msgInternal}

	var fiberErr *fiber.Error
	if appErr, ok := apperror.As(err); ok {
		resp.StatusCode = appErr.StatusCode()
		if resp.StatusCode == fiber.StatusInternalServerError {
			logger.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		} else {
			resp.Message = appErr.Message
			resp.Errors = appErr.Fields
		}
	} else if errors.As(err, &fiberErr) {
		resp.StatusCode = fiberErr.Code
		resp.Message = fiberErr.Message
	} else {
		logger.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(resp.StatusCode).JSON(resp)
}
