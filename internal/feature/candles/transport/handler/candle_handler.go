// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"crypto_backend/internal/feature/candles/domain"
	"crypto_backend/internal/feature/candles/domain/entity"
	"crypto_backend/internal/feature/candles/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// CandlesUsecase はローソク足データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	Fetch(ctx context.Context, symbol string, interval entity.Interval, limit int) (entity.Series, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄と時間足を受け取り、ローソク足データをJSONで返します。
//
// エンドポイント例:
// GET /candles/:symbol?interval=1d&limit=180
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	// 未指定の場合はデフォルト値を使用
	interval := entity.Interval(c.DefaultQuery("interval", string(entity.Interval1d)))
	// 数値に変換できない場合は0となり、usecase側でデフォルト件数に置き換えられる
	limit, _ := strconv.Atoi(c.Query("limit"))

	series, err := h.uc.Fetch(c.Request.Context(), symbol, interval, limit)
	if err != nil {
		c.JSON(StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToCandleResponses(series.Candles))
}

// ToCandleResponses はローソク足をレスポンスDTOに変換します。
func ToCandleResponses(candles []entity.Candle) []dto.CandleResponse {
	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			OpenTime:    x.OpenTime.UTC().Format(time.RFC3339),
			CloseTime:   x.CloseTime.UTC().Format(time.RFC3339),
			Open:        x.Open,
			High:        x.High,
			Low:         x.Low,
			Close:       x.Close,
			Volume:      x.Volume,
			QuoteVolume: x.QuoteVolume,
			Trades:      x.Trades,
		})
	}
	return out
}

// StatusFor はcandlesドメインのエラーをHTTPステータスに変換します。
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrUnknownRange):
		return http.StatusBadRequest
	// タイムアウトはErrUpstreamUnavailableにも包まれているため先に判定する
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstreamUnavailable),
		errors.Is(err, domain.ErrUpstreamFormat):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
