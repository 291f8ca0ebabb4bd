// Package router はHTTPルーティングを組み立てます。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "crypto_backend/internal/feature/analysis/transport/handler"
	candleshandler "crypto_backend/internal/feature/candles/transport/handler"
	symbollisthandler "crypto_backend/internal/feature/symbollist/transport/handler"
)

// Handlers はルーターに登録するハンドラーの集合です。
type Handlers struct {
	Health   gin.HandlerFunc
	Symbols  *symbollisthandler.SymbolHandler
	Candles  *candleshandler.CandlesHandler
	Analysis *analysishandler.AnalysisHandler
}

// NewRouter はエンドポイントを登録したgin.Engineを返します。
// allowOriginsが空でなければ、そのオリジンからの読み取りリクエストを許可するCORSを有効にします。
func NewRouter(h Handlers, allowOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)

	// ダッシュボードはすべて読み取り専用
	r.GET("/symbols", h.Symbols.List)
	r.GET("/symbols/:symbol", h.Symbols.Get)
	r.GET("/candles/:symbol", h.Candles.GetCandlesHandler)
	r.GET("/analysis/:symbol", h.Analysis.GetAnalysisHandler)

	return r
}
