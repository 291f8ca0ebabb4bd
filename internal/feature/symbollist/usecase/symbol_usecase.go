// Package usecase は銘柄カタログのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"crypto_backend/internal/feature/symbollist/domain"
	"crypto_backend/internal/feature/symbollist/domain/entity"
)

// SymbolUsecase はキャッシュされた銘柄カタログを提供するユースケースです。
type SymbolUsecase struct {
	cache *CatalogCache
	quote string
}

// NewSymbolUsecase はSymbolUsecaseの新しいインスタンスを生成します。
// defaultQuoteが空の場合はDefaultQuoteAssetを使用します。
func NewSymbolUsecase(cache *CatalogCache, defaultQuote string) *SymbolUsecase {
	if strings.TrimSpace(defaultQuote) == "" {
		defaultQuote = DefaultQuoteAsset
	}
	return &SymbolUsecase{cache: cache, quote: defaultQuote}
}

// ListTradable はquote建ての取引可能な銘柄を基軸通貨順で返します。
// quoteが空の場合は既定の決済通貨を使用します。
func (u *SymbolUsecase) ListTradable(ctx context.Context, quote string) ([]entity.Instrument, error) {
	if strings.TrimSpace(quote) == "" {
		quote = u.quote
	}
	all, err := u.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return FilterTradableQuote(all, quote), nil
}

// Lookup は指定シンボルのカタログ項目を返します。見つからない場合はErrInstrumentNotFoundを返します。
func (u *SymbolUsecase) Lookup(ctx context.Context, symbol string) (entity.Instrument, error) {
	all, err := u.cache.Get(ctx)
	if err != nil {
		return entity.Instrument{}, err
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, in := range all {
		if in.Symbol == symbol {
			return in, nil
		}
	}
	return entity.Instrument{}, fmt.Errorf("%w: %s", domain.ErrInstrumentNotFound, symbol)
}
