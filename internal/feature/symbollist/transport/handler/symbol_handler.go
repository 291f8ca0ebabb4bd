package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"crypto_backend/internal/feature/symbollist/domain"
	"crypto_backend/internal/feature/symbollist/domain/entity"
	"crypto_backend/internal/feature/symbollist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// SymbolUsecase は銘柄一覧に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListTradable(ctx context.Context, quote string) ([]entity.Instrument, error)
	Lookup(ctx context.Context, symbol string) (entity.Instrument, error)
}

// SymbolHandler は銘柄一覧に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は取引可能な銘柄の一覧を返すAPIです。
//
// エンドポイント例:
// GET /symbols?quote=USDT
//
// スナップショットが利用できない場合は503 Service Unavailableを返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListTradable(c.Request.Context(), c.Query("quote"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, toItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get は1銘柄のカタログ情報を返すAPIです。
//
// エンドポイント例:
// GET /symbols/BTCUSDT
func (h *SymbolHandler) Get(c *gin.Context) {
	in, err := h.uc.Lookup(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItem(in))
}

func toItem(s entity.Instrument) dto.SymbolItem {
	return dto.SymbolItem{
		Symbol:     s.Symbol,
		BaseAsset:  s.BaseAsset,
		QuoteAsset: s.QuoteAsset,
		Label:      fmt.Sprintf("%s (%s)", s.BaseAsset, s.Symbol),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInstrumentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
