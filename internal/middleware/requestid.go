package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"

	// clientRequestIDKey holds a client-supplied X-Request-ID, kept only
	// for log correlation.
	clientRequestIDKey = "client_request_id"
)

// RequestID assigns every request a fresh server-generated UUID. Client
// X-Request-ID values are never trusted as the canonical ID; when present
// they are recorded under a separate context key so logs can correlate the
// two sides.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			c.Set(clientRequestIDKey, clientID)
			log.WithFields(logrus.Fields{
				RequestIDKey:       id,
				clientRequestIDKey: clientID,
			}).Debug("client request ID recorded")
		}

		c.Next()
	}
}
