package jwtmw

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/platform/apperr"
)

const (
	// ContextUserID holds the authenticated user's id (uint).
	ContextUserID = "userID"
	// ContextIdentity holds the full Identity.
	ContextIdentity = "identity"
)

const unauthorizedMessage = "Unauthorized"

// AuthRequired returns a Gin middleware that rejects requests without a valid
// bearer token. Missing, malformed and expired tokens get the same 401 body;
// only the log line tells them apart.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		tokenStr := extractToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			reject(c, "missing")
			return
		}

		// 2. Verify signature, algorithm and expiry
		id, err := v.Verify(tokenStr)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, ErrTokenExpired) {
				reason = "expired"
			}
			slog.Debug("token verification failed", "error", err)
			reject(c, reason)
			return
		}

		// 3. Attach the caller and continue
		c.Set(ContextUserID, id.UserID)
		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// extractToken accepts "Bearer <token>" as well as a bare token.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	return header
}

func reject(c *gin.Context, reason string) {
	slog.Warn("unauthenticated request",
		"reason", reason,
		"path", c.FullPath(),
		"remote_addr", c.ClientIP(),
		"request_id", c.GetString(api.RequestIDKey),
	)
	api.Fail(c, apperr.Unauthenticated(unauthorizedMessage))
}

// UserID returns the authenticated user's id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// IdentityFrom returns the Identity set by AuthRequired.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
