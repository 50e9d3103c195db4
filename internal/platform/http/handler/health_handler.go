// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyTimeout は依存先チェック1件あたりの上限時間です。
const ReadyTimeout = 2 * time.Second

// Check は依存先（Redis、DBなど）への疎通を確認する関数です。
type Check func(ctx context.Context) error

// Health はプロセスの生存確認用 /healthz を処理します。依存先は確認しません。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Ready は /readyz を処理するハンドラーを返します。
// 依存先はいずれも任意なので、失敗しても503にはせず "degraded" として報告します。
func Ready(checks map[string]Check) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		status := "ok"
		deps := make(gin.H, len(names))
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), ReadyTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				deps[name] = err.Error()
				status = "degraded"
				continue
			}
			deps[name] = "ok"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "dependencies": deps})
	}
}
