package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/medadhere/drugresolver/internal/errors"
)

// ErrorCode represents standardized error codes for the API.
type ErrorCode string

const (
	// Client error codes (4xx)
	ErrorCodeInvalidQuery   ErrorCode = "INVALID_QUERY"
	ErrorCodeInvalidJSON    ErrorCode = "INVALID_JSON"
	ErrorCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"

	// Server error codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeNotReady      ErrorCode = "INDEX_NOT_READY"
)

// APIError is the standardized error response envelope.
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError sends a standardized error response.
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	errorResponse := &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendValidationError maps a request validation failure onto a 400
// response with the INVALID_QUERY code.
func SendValidationError(c *gin.Context, err *internalErrors.ValidationError) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
}

// SendInternalError sends a 500 response and logs the underlying cause,
// which is never exposed to the client.
func SendInternalError(c *gin.Context, operation string, err error) {
	slog.Error("internal error", "operation", operation, "error", err)
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Failed to "+operation)
}
