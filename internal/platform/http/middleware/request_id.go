// Package middleware holds the gin middleware installed on every route.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/api"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID reuses an incoming X-Request-ID or generates a UUID, stores it
// under api.RequestIDKey and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(api.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
