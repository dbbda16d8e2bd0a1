package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/studycompanion/study-service/internal/utils"
)

// ErrorResponse is the error body for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse confirms an operation with a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse confirms an operation with a bare success flag.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// BaseHandler carries the logging shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondWithError sends the error body and logs the underlying cause.
// The cause never reaches the client.
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.LogError(err, message,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else {
		h.logger.Warn(message,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// isValidationError reports whether err came from request validation,
// and whether the failing rule was the subject enum rather than a
// missing required field.
func isValidationError(err error) (invalidSubject bool, ok bool) {
	var fieldErrors playgroundvalidator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return false, false
	}
	for _, fe := range fieldErrors {
		if fe.Tag() == "subject" {
			return true, true
		}
	}
	return false, true
}
