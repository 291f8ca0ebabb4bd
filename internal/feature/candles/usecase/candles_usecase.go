// Package usecase はローソク足データ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"crypto_backend/internal/feature/candles/domain"
	"crypto_backend/internal/feature/candles/domain/entity"
)

const (
	// DefaultLimit はlimit未指定時に取得するローソク足の件数です。
	DefaultLimit = 500
	// MaxLimit は取引所が1リクエストで返す最大件数です。
	MaxLimit = 1000
)

// MarketRepository は取引所の公開APIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// Klines は指定銘柄・時間足のローソク足を取得します。
	Klines(ctx context.Context, symbol string, interval entity.Interval, limit int) ([]entity.Candle, error)
	// TickerPrice は指定銘柄の最新価格を取得します。
	TickerPrice(ctx context.Context, symbol string) (float64, error)
}

// CandlesUsecase はローソク足データ取得のユースケースです。
type CandlesUsecase struct {
	market MarketRepository
}

// NewCandlesUsecase はCandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(market MarketRepository) *CandlesUsecase {
	return &CandlesUsecase{market: market}
}

// Fetch は1回のリクエストでローソク足を取得し、時系列として整形して返します。
// limitが0以下の場合はDefaultLimit、MaxLimitを超える場合はMaxLimitに丸めます。
func (cu *CandlesUsecase) Fetch(ctx context.Context, symbol string, interval entity.Interval, limit int) (entity.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return entity.Series{}, domain.ErrInvalidSymbol
	}
	if !interval.Valid() {
		return entity.Series{}, fmt.Errorf("%w: %q", domain.ErrInvalidInterval, interval)
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	cs, err := cu.market.Klines(ctx, symbol, interval, limit)
	if err != nil {
		return entity.Series{}, err
	}

	return entity.Series{
		Symbol:   symbol,
		Interval: interval,
		Candles:  normalize(cs),
	}, nil
}

// CurrentPrice は最新価格を返します。
// 取得に失敗した場合はエラーではなくok=falseを返すため、呼び出し側は直近の終値で代替してください。
func (cu *CandlesUsecase) CurrentPrice(ctx context.Context, symbol string) (price float64, ok bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, false
	}
	p, err := cu.market.TickerPrice(ctx, symbol)
	if err != nil {
		slog.Warn("current price unavailable", "symbol", symbol, "error", err)
		return 0, false
	}
	if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		slog.Warn("current price out of range", "symbol", symbol, "price", p)
		return 0, false
	}
	return p, true
}

// normalize はOpenTimeの昇順に並べ替え、重複するOpenTimeを後勝ちで1件にまとめます。
func normalize(cs []entity.Candle) []entity.Candle {
	out := make([]entity.Candle, len(cs))
	copy(out, cs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpenTime.Before(out[j].OpenTime)
	})

	dedup := out[:0]
	for _, c := range out {
		if n := len(dedup); n > 0 && dedup[n-1].OpenTime.Equal(c.OpenTime) {
			dedup[n-1] = c
			continue
		}
		dedup = append(dedup, c)
	}
	return dedup
}
