package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"crypto_backend/internal/feature/candles/domain"
	"crypto_backend/internal/feature/candles/domain/entity"
	"crypto_backend/internal/feature/candles/usecase"
	symbolentity "crypto_backend/internal/feature/symbollist/domain/entity"
	symbolusecase "crypto_backend/internal/feature/symbollist/usecase"
	"crypto_backend/internal/platform/externalapi/binance/dto"
	platformhttp "crypto_backend/internal/platform/http"
)

// Getter は外部APIへのGETを抽象化します。*platformhttp.RetryClient が実装します。
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// BinanceMarket はBinance公開APIからローソク足・価格・銘柄一覧を取得します。
type BinanceMarket struct {
	cfg    Config
	client Getter
}

// BinanceMarketがMarketRepositoryとExchangeListingを実装していることをコンパイル時に検証します。
var (
	_ usecase.MarketRepository      = (*BinanceMarket)(nil)
	_ symbolusecase.ExchangeListing = (*BinanceMarket)(nil)
)

// NewBinanceMarket は指定された設定とクライアントでBinanceMarketの新しいインスタンスを生成します。
func NewBinanceMarket(cfg Config, client Getter) *BinanceMarket {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &BinanceMarket{cfg: cfg, client: client}
}

// Klines は /api/v3/klines から1リクエストでローソク足を取得します。
// レスポンスは12要素のタプルの配列で、数値は文字列、時刻はミリ秒エポックです。
func (b *BinanceMarket) Klines(ctx context.Context, symbol string, interval entity.Interval, limit int) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval.String())
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := b.get(ctx, "/api/v3/klines", q)
	if err != nil {
		return nil, err
	}

	var rows []dto.KlineRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, formatError("klines", symbol, body, err)
	}

	candles := make([]entity.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("%w: klines %s row %d: %v", domain.ErrUpstreamFormat, symbol, i, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// TickerPrice は /api/v3/ticker/price から最新価格を取得します。
func (b *BinanceMarket) TickerPrice(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	body, err := b.get(ctx, "/api/v3/ticker/price", q)
	if err != nil {
		return 0, err
	}

	var res dto.TickerPriceResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return 0, formatError("ticker", symbol, body, err)
	}
	if res.Price == "" {
		return 0, formatError("ticker", symbol, body, fmt.Errorf("missing price field"))
	}
	p, err := strconv.ParseFloat(res.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: ticker %s: parse price %q: %v", domain.ErrUpstreamFormat, symbol, res.Price, err)
	}
	return p, nil
}

// ListInstruments は /api/v3/exchangeInfo から上場中の全銘柄を取得します。
// フィルタリングは呼び出し側で行います。
func (b *BinanceMarket) ListInstruments(ctx context.Context) ([]symbolentity.Instrument, error) {
	body, err := b.get(ctx, "/api/v3/exchangeInfo", nil)
	if err != nil {
		return nil, err
	}

	var res dto.ExchangeInfoResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, formatError("exchangeInfo", "", body, err)
	}
	if res.Symbols == nil {
		return nil, formatError("exchangeInfo", "", body, fmt.Errorf("missing symbols field"))
	}

	out := make([]symbolentity.Instrument, 0, len(res.Symbols))
	for _, s := range res.Symbols {
		out = append(out, symbolentity.Instrument{
			Symbol:     s.Symbol,
			BaseAsset:  s.BaseAsset,
			QuoteAsset: s.QuoteAsset,
			Status:     s.Status,
		})
	}
	return out, nil
}

// get はリクエストを実行し、転送エラー・429・5xxをErrUpstreamUnavailableに変換します。
// 4xxで取引所のエラーオブジェクト（{"code","msg"}）が返った場合はErrUpstreamFormatとして扱います。
func (b *BinanceMarket) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := b.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	body, err := b.client.Get(ctx, u)
	if err != nil {
		var se *platformhttp.StatusError
		if errors.As(err, &se) && !se.Retryable() {
			var apiErr dto.APIError
			if json.Unmarshal([]byte(se.Body), &apiErr) == nil && apiErr.Msg != "" {
				return nil, formatError(path, q.Get("symbol"), []byte(se.Body), err)
			}
		}
		return nil, fmt.Errorf("%w: GET %s: %w", domain.ErrUpstreamUnavailable, path, err)
	}
	return body, nil
}

func parseKline(row dto.KlineRow) (entity.Candle, error) {
	if len(row) != dto.KlineFieldCount {
		return entity.Candle{}, fmt.Errorf("expected %d fields, got %d", dto.KlineFieldCount, len(row))
	}
	openMs, err := row.Int(dto.KlineOpenTime)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("open time: %w", err)
	}
	closeMs, err := row.Int(dto.KlineCloseTime)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("close time: %w", err)
	}
	trades, err := row.Int(dto.KlineTrades)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("trades: %w", err)
	}

	var vals [5]float64
	for i, idx := range []int{dto.KlineOpen, dto.KlineHigh, dto.KlineLow, dto.KlineClose, dto.KlineVolume} {
		if vals[i], err = row.Float(idx); err != nil {
			return entity.Candle{}, err
		}
	}
	quoteVol, err := row.Float(dto.KlineQuoteVolume)
	if err != nil {
		return entity.Candle{}, err
	}

	return entity.Candle{
		OpenTime:    time.UnixMilli(openMs).UTC(),
		CloseTime:   time.UnixMilli(closeMs).UTC(),
		Open:        vals[0],
		High:        vals[1],
		Low:         vals[2],
		Close:       vals[3],
		Volume:      vals[4],
		QuoteVolume: quoteVol,
		Trades:      trades,
	}, nil
}

// formatError はErrUpstreamFormatで包み、本文が取引所のエラーオブジェクトであればそのメッセージを含めます。
func formatError(op, symbol string, body []byte, cause error) error {
	var apiErr dto.APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
		return fmt.Errorf("%w: %s %s: api error %d: %s", domain.ErrUpstreamFormat, op, symbol, apiErr.Code, apiErr.Msg)
	}
	return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamFormat, op, strings.TrimSpace(symbol), cause)
}
