package api

import (
	"github.com/gin-gonic/gin"

	"github.com/knowbaseai/knowbase/internal/httputil"
	"github.com/knowbaseai/knowbase/internal/metrics"
)

// Error codes used across the API surface.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
)

// respondError counts the error by code and writes the shared error
// envelope with the request ID from the gin context.
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}
