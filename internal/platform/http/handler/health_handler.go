// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は疎通確認できる依存先です。*sql.DB がそのまま満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// HealthHandler は /healthz を処理し、登録された依存先へ ping します。
type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler creates a HealthHandler. deps maps a name such as
// "identity" to the pool to ping.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// いずれかの依存先が応答しない場合は 503 を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status, checks := h.check(c.Request.Context())
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}

func (h *HealthHandler) check(ctx context.Context) (string, map[string]string) {
	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	checks := make(map[string]string, len(names))
	for _, name := range names {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := h.deps[name].PingContext(pctx)
		cancel()
		if err != nil {
			checks[name] = "unavailable"
			status = "unavailable"
			continue
		}
		checks[name] = "ok"
	}
	return status, checks
}
