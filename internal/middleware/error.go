package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/clinic-directory/pkg/errors"
)

// ErrorResponse is the body written for errors no handler rendered itself.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler logs every error attached to the context. When the handler
// did not write a response, the last error is rendered as JSON.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Interface("meta", e.Meta).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		status := apperrors.StatusOf(last.Err)
		message := "Internal server error"
		if status != http.StatusInternalServerError {
			message = last.Error()
		}

		c.JSON(status, errorResponse(c, status, message))
	}
}

func errorResponse(c *gin.Context, status int, message string) ErrorResponse {
	return ErrorResponse{
		Code:      status,
		Message:   message,
		RequestID: c.GetString(ContextRequestID),
	}
}

// abortWithError stops the chain with an ErrorResponse body.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse(c, status, message))
}
