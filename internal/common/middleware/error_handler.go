package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ruya-backend/internal/common/errors"
	"ruya-backend/internal/common/logger"
)

// RequestID attaches an ID to every request, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorHandler recovers from panics and answers with a typed internal error.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		sendErrorResponse(c, appErr)
	})
}

// ErrorResponder converts errors attached via c.Error into JSON responses.
// Handlers report failures with c.Error(err) and return; this middleware owns
// the response shape and the status mapping.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := errors.AsAppError(err); ok {
			sendErrorResponse(c, appErr)
			return
		}

		appErr := errors.Wrap(err, errors.ErrCodeInternal, "Handler error occurred").
			WithRequestID(getRequestID(c))
		sendErrorResponse(c, appErr)
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	requestID := getRequestID(c)

	appErr.WithRequestID(requestID).
		WithContext("path", c.Request.URL.Path).
		WithContext("method", c.Request.Method)

	statusCode := getHTTPStatusCode(appErr)

	response := ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	}

	logError(appErr, c)

	c.AbortWithStatusJSON(statusCode, response)
}

func getHTTPStatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDreamNotFound, errors.ErrCodeProfileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeQuotaExhausted:
		return http.StatusForbidden
	case errors.ErrCodeDatabaseUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeDatabaseError, errors.ErrCodeCacheError, errors.ErrCodeTextGeneration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func logError(appErr *errors.AppError, c *gin.Context) {
	event := logger.Error()
	switch {
	case appErr.IsValidation():
		event = logger.Info()
	case appErr.IsNotFound():
		event = logger.Info()
	case appErr.IsQuotaExhausted():
		event = logger.Warn()
	}

	event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)

	if appErr.UserID != "" {
		event.Str("user_id", appErr.UserID)
	}
	if appErr.Cause != nil {
		event.Err(appErr.Cause)
	}

	event.Msg("Request failed")
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
