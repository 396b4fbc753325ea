package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/middlewares"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes a JSON payload.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Error maps a domain error onto its HTTP status and writes a structured
// error body. Internal errors are logged with their cause but returned with a
// generic message.
func Error(c *gin.Context, err error) {
	errorType := platformerrors.TypeOf(err)
	status := platformerrors.ErrorTypeToHTTPStatus(errorType)

	message := err.Error()
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		message = platformErr.Message
	}

	if status >= http.StatusInternalServerError {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("Request failed")
		message = "internal server error"
	}

	c.JSON(status, errorResponse{
		Error:     message,
		RequestID: middlewares.RequestIDFromContext(c),
	})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Error:     message,
		RequestID: middlewares.RequestIDFromContext(c),
	})
}

// NotFound writes a 404 with the given message.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, errorResponse{
		Error:     message,
		RequestID: middlewares.RequestIDFromContext(c),
	})
}
