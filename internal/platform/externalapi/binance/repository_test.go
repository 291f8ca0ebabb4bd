package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_backend/internal/feature/candles/domain"
	"crypto_backend/internal/feature/candles/domain/entity"
	platformhttp "crypto_backend/internal/platform/http"
)

const klinesBody = `[
	[1704067200000, "42283.58", "44184.10", "42180.77", "44179.55", "27174.29903", 1704153599999, "1169240640.41", 1013416, "14253.74405", "613361347.42", "0"],
	[1704153600000, "44179.55", "45879.63", "44148.34", "44946.91", "65146.40661", 1704239999999, "2944103618.81", 2039322, "32708.11035", "1478371390.93", "0"]
]`

func newTestMarket(t *testing.T, handler http.HandlerFunc) *BinanceMarket {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := platformhttp.NewRetryClient(server.Client(), nil, platformhttp.RetryOptions{
		MaxAttempts:     2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	})
	return NewBinanceMarket(Config{BaseURL: server.URL}, client)
}

func TestNewBinanceMarket_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	m := NewBinanceMarket(Config{}, nil)
	assert.Equal(t, DefaultBaseURL, m.cfg.BaseURL)
}

func TestBinanceMarket_Klines_Success(t *testing.T) {
	t.Parallel()

	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(klinesBody))
	})

	candles, err := m.Klines(context.Background(), "BTCUSDT", entity.Interval1d, 2)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	first := candles[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.OpenTime)
	assert.Equal(t, 42283.58, first.Open)
	assert.Equal(t, 44184.10, first.High)
	assert.Equal(t, 42180.77, first.Low)
	assert.Equal(t, 44179.55, first.Close)
	assert.Equal(t, 27174.29903, first.Volume)
	assert.Equal(t, 1169240640.41, first.QuoteVolume)
	assert.Equal(t, int64(1013416), first.Trades)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), candles[1].OpenTime)
}

func TestBinanceMarket_Klines_FormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "error object instead of list", body: `{"code":-1121,"msg":"Invalid symbol."}`, wantMsg: "Invalid symbol."},
		{name: "invalid json", body: `[[1704067200000,`},
		{name: "wrong arity", body: `[[1704067200000, "1", "2", "3", "4", "5"]]`, wantMsg: "expected 12 fields"},
		{name: "non numeric price", body: `[[1704067200000, "abc", "2", "3", "4", "5", 1704153599999, "6", 7, "8", "9", "0"]]`, wantMsg: "field 1"},
		{name: "price not a string", body: `[[1704067200000, 1.5, "2", "3", "4", "5", 1704153599999, "6", 7, "8", "9", "0"]]`, wantMsg: "field 1"},
		{name: "open time not an integer", body: `[["x", "1", "2", "3", "4", "5", 1704153599999, "6", 7, "8", "9", "0"]]`, wantMsg: "open time"},
		{name: "row is an object", body: `[{"open":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := m.Klines(context.Background(), "BTCUSDT", entity.Interval1d, 10)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpstreamFormat)
			assert.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestBinanceMarket_Klines_HTTPError(t *testing.T) {
	t.Parallel()

	const invalidSymbol = `{"code":-1121,"msg":"Invalid symbol."}`

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
		wantMsg    string
	}{
		{name: "bad request with error object", statusCode: http.StatusBadRequest, body: invalidSymbol, wantErr: domain.ErrUpstreamFormat, wantMsg: "Invalid symbol."},
		{name: "bad request without body", statusCode: http.StatusBadRequest, wantErr: domain.ErrUpstreamUnavailable},
		{name: "forbidden with html", statusCode: http.StatusForbidden, body: "<html>blocked</html>", wantErr: domain.ErrUpstreamUnavailable},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, body: `{"code":-1003,"msg":"Too many requests."}`, wantErr: domain.ErrUpstreamUnavailable},
		{name: "internal server error", statusCode: http.StatusInternalServerError, wantErr: domain.ErrUpstreamUnavailable},
		{name: "service unavailable", statusCode: http.StatusServiceUnavailable, wantErr: domain.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := m.Klines(context.Background(), "BTCUSDT", entity.Interval1d, 10)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == domain.ErrUpstreamFormat {
				assert.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestBinanceMarket_Klines_EmptyList(t *testing.T) {
	t.Parallel()

	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	candles, err := m.Klines(context.Background(), "BTCUSDT", entity.Interval1d, 10)
	require.NoError(t, err)
	assert.Empty(t, candles)
}

func TestBinanceMarket_Klines_ContextCancellation(t *testing.T) {
	t.Parallel()

	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Klines(ctx, "BTCUSDT", entity.Interval1d, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBinanceMarket_TickerPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantPrice float64
		wantErr   error
	}{
		{name: "success", status: http.StatusOK, body: `{"symbol":"BTCUSDT","price":"65123.45000000"}`, wantPrice: 65123.45},
		{name: "missing price", status: http.StatusOK, body: `{"symbol":"BTCUSDT"}`, wantErr: domain.ErrUpstreamFormat},
		{name: "bad price", status: http.StatusOK, body: `{"symbol":"BTCUSDT","price":"n/a"}`, wantErr: domain.ErrUpstreamFormat},
		{name: "list instead of object", status: http.StatusOK, body: `[]`, wantErr: domain.ErrUpstreamFormat},
		{name: "error object with 400", status: http.StatusBadRequest, body: `{"code":-1121,"msg":"Invalid symbol."}`, wantErr: domain.ErrUpstreamFormat},
		{name: "server error", status: http.StatusInternalServerError, wantErr: domain.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
				assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			price, err := m.TickerPrice(context.Background(), "BTCUSDT")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, price)
		})
	}
}

func TestBinanceMarket_ListInstruments(t *testing.T) {
	t.Parallel()

	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/exchangeInfo", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"timezone": "UTC",
			"serverTime": 1704067200000,
			"symbols": [
				{"symbol": "ETHBTC", "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "BTC"},
				{"symbol": "BTCUSDT", "status": "TRADING", "baseAsset": "BTC", "quoteAsset": "USDT"},
				{"symbol": "LUNAUSDT", "status": "BREAK", "baseAsset": "LUNA", "quoteAsset": "USDT"}
			]
		}`))
	})

	instruments, err := m.ListInstruments(context.Background())
	require.NoError(t, err)
	require.Len(t, instruments, 3)
	assert.Equal(t, "BTCUSDT", instruments[1].Symbol)
	assert.Equal(t, "BTC", instruments[1].BaseAsset)
	assert.Equal(t, "USDT", instruments[1].QuoteAsset)
	assert.Equal(t, "BREAK", instruments[2].Status)
}

func TestBinanceMarket_ListInstruments_MissingSymbols(t *testing.T) {
	t.Parallel()

	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":-1003,"msg":"Too much request weight used."}`))
	})

	_, err := m.ListInstruments(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFormat)
	assert.Contains(t, err.Error(), "Too much request weight used.")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BINANCE_BASE_URL", "https://example.test/")
	t.Setenv("BINANCE_TIMEOUT", "2s")
	t.Setenv("BINANCE_RPS", "0")

	cfg := LoadConfig()

	assert.Equal(t, "https://example.test", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.RequestsPerSecond)
	assert.Equal(t, 3, cfg.MaxAttempts)
}
