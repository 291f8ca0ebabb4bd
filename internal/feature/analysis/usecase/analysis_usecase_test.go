package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_backend/internal/feature/analysis/domain"
	"crypto_backend/internal/feature/analysis/domain/entity"
	"crypto_backend/internal/feature/analysis/stats"
	candledomain "crypto_backend/internal/feature/candles/domain"
	candleentity "crypto_backend/internal/feature/candles/domain/entity"
)

// mockCandleSource はCandleSourceインターフェースのモック実装です。
type mockCandleSource struct {
	FetchFunc        func(ctx context.Context, symbol string, interval candleentity.Interval, limit int) (candleentity.Series, error)
	CurrentPriceFunc func(ctx context.Context, symbol string) (float64, bool)

	FetchCalls        int
	CurrentPriceCalls int
}

func (m *mockCandleSource) Fetch(ctx context.Context, symbol string, interval candleentity.Interval, limit int) (candleentity.Series, error) {
	m.FetchCalls++
	return m.FetchFunc(ctx, symbol, interval, limit)
}

func (m *mockCandleSource) CurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	m.CurrentPriceCalls++
	if m.CurrentPriceFunc == nil {
		return 0, false
	}
	return m.CurrentPriceFunc(ctx, symbol)
}

func dailySeries(closes, volumes []float64) candleentity.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cs := make([]candleentity.Candle, len(closes))
	for i, c := range closes {
		cs[i] = candleentity.Candle{OpenTime: start.AddDate(0, 0, i), Close: c, Volume: volumes[i]}
	}
	return candleentity.Series{Symbol: "BTCUSDT", Interval: candleentity.Interval1d, Candles: cs}
}

func fixedSeries(s candleentity.Series) func(context.Context, string, candleentity.Interval, int) (candleentity.Series, error) {
	return func(context.Context, string, candleentity.Interval, int) (candleentity.Series, error) {
		return s, nil
	}
}

func wavySeries(n int) candleentity.Series {
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5)
		volumes[i] = float64(1 + i%7)
	}
	return dailySeries(closes, volumes)
}

func TestAnalysisUsecase_Analyze_Scenario(t *testing.T) {
	t.Parallel()

	src := &mockCandleSource{
		FetchFunc: fixedSeries(dailySeries(
			[]float64{100, 100, 110, 110, 121, 121},
			[]float64{1, 1, 1, 1, 1, 1},
		)),
		CurrentPriceFunc: func(ctx context.Context, symbol string) (float64, bool) {
			assert.Equal(t, "BTCUSDT", symbol)
			return 133.1, true
		},
	}
	uc := NewAnalysisUsecase(src)

	r, err := uc.Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 6)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0.1, 0, 0.1, 0}, r.Returns.Values(), 1e-12)
	assert.Equal(t, entity.PeriodDaily, r.Returns.Period)
	assert.InDelta(t, 0.04, r.Summary.Mean, 1e-12)
	std := math.Sqrt(0.003)
	assert.InDelta(t, std, r.Summary.StdDev, 1e-12)

	require.Len(t, r.Bands, 2)
	assert.Equal(t, 2, r.Bands[1].K)
	assert.InDelta(t, 0.04-2*std, r.Bands[1].Lower, 1e-12)
	assert.InDelta(t, 0.04+2*std, r.Bands[1].Upper, 1e-12)

	assert.Equal(t, 133.1, r.CurrentPrice)
	assert.Equal(t, entity.PriceSourceTicker, r.PriceSource)
	require.NotNil(t, r.ChangePct)
	assert.InDelta(t, 10.0, *r.ChangePct, 1e-9)

	require.Len(t, r.PriceRanges, 2)
	assert.InDelta(t, 133.1*(1-std), r.PriceRanges[0].Low, 1e-9)
	assert.InDelta(t, 133.1*(1+2*std), r.PriceRanges[1].High, 1e-9)

	require.NotNil(t, r.NormalCurve)
	assert.Len(t, r.NormalCurve.Xs, stats.DefaultCurvePoints)

	// six closes are too few for the density estimate, which does not fail the report
	assert.Nil(t, r.Density)
	assert.ErrorIs(t, r.DensityErr, domain.ErrInsufficientData)
}

func TestAnalysisUsecase_Analyze_FallsBackToLastClose(t *testing.T) {
	t.Parallel()

	src := &mockCandleSource{FetchFunc: fixedSeries(wavySeries(60))}

	r, err := NewAnalysisUsecase(src).Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 60)
	require.NoError(t, err)

	last, _ := r.Series.Last()
	assert.Equal(t, last.Close, r.CurrentPrice)
	assert.Equal(t, entity.PriceSourceLastClose, r.PriceSource)
	assert.Nil(t, r.ChangePct)
	assert.Equal(t, 1, src.CurrentPriceCalls)
}

func TestAnalysisUsecase_Analyze_Density(t *testing.T) {
	t.Parallel()

	src := &mockCandleSource{FetchFunc: fixedSeries(wavySeries(120))}

	r, err := NewAnalysisUsecase(src).Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 120)
	require.NoError(t, err)

	require.NoError(t, r.DensityErr)
	require.NotNil(t, r.Density)
	assert.True(t, r.Density.Weighted)
	assert.Equal(t, 120, r.Density.Samples)
	assert.Len(t, r.Density.Xs, 1000)
	assert.LessOrEqual(t, len(r.Density.Peaks), 5)
	assert.LessOrEqual(t, len(r.Density.Troughs), 3)
}

func TestAnalysisUsecase_Analyze_DensityOptions(t *testing.T) {
	t.Parallel()

	src := &mockCandleSource{FetchFunc: fixedSeries(wavySeries(30))}
	uc := NewAnalysisUsecase(src).WithDensityOptions(stats.DensityOptions{SampleCount: 101, MinPoints: 40})

	r, err := uc.Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 30)
	require.NoError(t, err)
	assert.ErrorIs(t, r.DensityErr, domain.ErrInsufficientData)

	r, err = NewAnalysisUsecase(src).WithDensityOptions(stats.DensityOptions{SampleCount: 101}).
		Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 30)
	require.NoError(t, err)
	require.NotNil(t, r.Density)
	assert.Len(t, r.Density.Xs, 101)
}

func TestAnalysisUsecase_Analyze_ZeroVolumeDensityError(t *testing.T) {
	t.Parallel()

	s := wavySeries(40)
	for i := range s.Candles {
		s.Candles[i].Volume = 0
	}
	src := &mockCandleSource{FetchFunc: fixedSeries(s)}

	r, err := NewAnalysisUsecase(src).Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 40)
	require.NoError(t, err)
	assert.Nil(t, r.Density)
	assert.ErrorIs(t, r.DensityErr, domain.ErrInvalidWeights)
}

func TestAnalysisUsecase_Analyze_ConstantPrices(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 20)
	volumes := make([]float64, 20)
	for i := range closes {
		closes[i], volumes[i] = 50, 3
	}
	src := &mockCandleSource{FetchFunc: fixedSeries(dailySeries(closes, volumes))}

	r, err := NewAnalysisUsecase(src).Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 20)
	require.NoError(t, err)
	assert.Zero(t, r.Summary.StdDev)
	assert.Nil(t, r.NormalCurve)
	assert.ErrorIs(t, r.DensityErr, domain.ErrInsufficientData)
	assert.Equal(t, 50.0, r.PriceRanges[1].Low)
	assert.Equal(t, 50.0, r.PriceRanges[1].High)
}

func TestAnalysisUsecase_Analyze_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fetch   func(context.Context, string, candleentity.Interval, int) (candleentity.Series, error)
		wantErr error
	}{
		{
			name: "upstream format error halts the pipeline",
			fetch: func(context.Context, string, candleentity.Interval, int) (candleentity.Series, error) {
				return candleentity.Series{}, fmt.Errorf("%w: klines: json: cannot unmarshal object", candledomain.ErrUpstreamFormat)
			},
			wantErr: candledomain.ErrUpstreamFormat,
		},
		{
			name: "upstream unavailable",
			fetch: func(context.Context, string, candleentity.Interval, int) (candleentity.Series, error) {
				return candleentity.Series{}, candledomain.ErrUpstreamUnavailable
			},
			wantErr: candledomain.ErrUpstreamUnavailable,
		},
		{
			name:    "single candle",
			fetch:   fixedSeries(dailySeries([]float64{100}, []float64{1})),
			wantErr: domain.ErrInsufficientData,
		},
		{
			name:    "empty series",
			fetch:   fixedSeries(candleentity.Series{Symbol: "BTCUSDT"}),
			wantErr: domain.ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &mockCandleSource{FetchFunc: tt.fetch}
			_, err := NewAnalysisUsecase(src).Analyze(context.Background(), "BTCUSDT", candleentity.Interval1d, 10)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, src.CurrentPriceCalls)
		})
	}
}

func TestAnalysisUsecase_AnalyzeRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key          string
		wantKey      string
		wantInterval candleentity.Interval
		wantLimit    int
	}{
		{key: "", wantKey: "180d", wantInterval: candleentity.Interval1d, wantLimit: 180},
		{key: "30d", wantKey: "30d", wantInterval: candleentity.Interval4h, wantLimit: 180},
		{key: "5y", wantKey: "5y", wantInterval: candleentity.Interval1d, wantLimit: 1825},
	}

	for _, tt := range tests {
		t.Run(tt.wantKey, func(t *testing.T) {
			t.Parallel()

			src := &mockCandleSource{
				FetchFunc: func(ctx context.Context, symbol string, interval candleentity.Interval, limit int) (candleentity.Series, error) {
					assert.Equal(t, tt.wantInterval, interval)
					assert.Equal(t, tt.wantLimit, limit)
					return wavySeries(60), nil
				},
			}

			r, err := NewAnalysisUsecase(src).AnalyzeRange(context.Background(), "BTCUSDT", tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, r.Range)
		})
	}
}

func TestAnalysisUsecase_AnalyzeRange_UnknownKey(t *testing.T) {
	t.Parallel()

	src := &mockCandleSource{}
	_, err := NewAnalysisUsecase(src).AnalyzeRange(context.Background(), "BTCUSDT", "10y")
	assert.ErrorIs(t, err, candledomain.ErrUnknownRange)
	assert.Zero(t, src.FetchCalls)
}
