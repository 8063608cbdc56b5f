// Package api holds the JSON envelope shared by every HTTP handler.
//
// Successful bodies carry "success": true next to their payload; failures are
// always {"success": false, "message": "..."}.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/platform/apperr"
)

// RequestIDKey is the gin context key under which the request id is stored.
const RequestIDKey = "requestID"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK writes a 200 response with success=true merged into body.
func OK(c *gin.Context, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// Fail translates err into the error envelope and aborts the chain.
// Internal errors are logged with their cause and answered generically.
func Fail(c *gin.Context, err error) {
	e := apperr.From(err)
	status := e.Kind.HTTPStatus()
	if e.Kind == apperr.KindInternal {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(RequestIDKey),
			"error", err,
		)
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: e.Message})
}
