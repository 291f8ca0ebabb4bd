// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// キャッシュの状態
const (
	CacheOK          = "ok"
	CacheUnavailable = "unavailable"
	CacheDisabled    = "disabled"
)

// pingTimeout はヘルスチェック時のキャッシュ疎通確認のタイムアウトです。
const pingTimeout = time.Second

// PingFunc はキャッシュの疎通を確認します。
type PingFunc func(ctx context.Context) error

// NewHealth はサービスヘルスチェック用の /healthz ハンドラーを返します。
// キャッシュは任意の依存のため、疎通できなくても200を返し、状態をレスポンスに含めます。
// pingがnilの場合はキャッシュ無効として扱います。
func NewHealth(ping PingFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheStatus(c.Request.Context(), ping)})
		}
	}
}

func cacheStatus(ctx context.Context, ping PingFunc) string {
	if ping == nil {
		return CacheDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := ping(ctx); err != nil {
		slog.Warn("cache ping failed", "error", err)
		return CacheUnavailable
	}
	return CacheOK
}
