// Package usecase は価格変動分析のパイプライン（取得→収益率→統計→密度推定）を実装します。
package usecase

import (
	"context"
	"log/slog"

	"crypto_backend/internal/feature/analysis/domain/entity"
	"crypto_backend/internal/feature/analysis/stats"
	candleentity "crypto_backend/internal/feature/candles/domain/entity"
)

// bandLevels は報告するシグマ幅です（68% / 95% 相当）。
var bandLevels = []int{1, 2}

// CandleSource はローソク足と最新価格の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleSource interface {
	Fetch(ctx context.Context, symbol string, interval candleentity.Interval, limit int) (candleentity.Series, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, bool)
}

// AnalysisUsecase は分析パイプラインを実行します。
type AnalysisUsecase struct {
	candles CandleSource
	density stats.DensityOptions
}

// NewAnalysisUsecase はAnalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(candles CandleSource) *AnalysisUsecase {
	return &AnalysisUsecase{candles: candles, density: stats.DefaultDensityOptions()}
}

// WithDensityOptions は密度推定のオプションを差し替えたコピーを返します。
func (u *AnalysisUsecase) WithDensityOptions(opts stats.DensityOptions) *AnalysisUsecase {
	cp := *u
	cp.density = opts
	return &cp
}

// AnalyzeRange はプリセット期間（"180d" など）を解決してからAnalyzeを実行します。
// 空文字の場合はデフォルト期間を使用します。
func (u *AnalysisUsecase) AnalyzeRange(ctx context.Context, symbol, rangeKey string) (entity.Report, error) {
	tr, err := candleentity.LookupTimeRange(rangeKey)
	if err != nil {
		return entity.Report{}, err
	}
	r, err := u.Analyze(ctx, symbol, tr.Interval, tr.Limit)
	if err != nil {
		return entity.Report{}, err
	}
	r.Range = tr.Key
	return r, nil
}

// Analyze はローソク足を取得し、収益率・ボラティリティ統計・出来高加重の価格密度を計算します。
//
// 取得・収益率・統計のいずれかが失敗した場合はその型付きエラーを返して中断します。
// 密度推定は独立した計算のため、失敗してもReport.DensityErrに格納して続行します。
func (u *AnalysisUsecase) Analyze(ctx context.Context, symbol string, interval candleentity.Interval, limit int) (entity.Report, error) {
	series, err := u.candles.Fetch(ctx, symbol, interval, limit)
	if err != nil {
		return entity.Report{}, err
	}

	returns, _, err := stats.BuildReturns(series, interval)
	if err != nil {
		return entity.Report{}, err
	}
	summary, err := stats.Summarize(returns.Values())
	if err != nil {
		return entity.Report{}, err
	}

	report := entity.Report{
		Series:  series,
		Returns: returns,
		Summary: summary,
	}
	for _, k := range bandLevels {
		report.Bands = append(report.Bands, stats.SigmaBands(summary, k))
	}
	if curve, err := stats.NormalCurve(returns.Values(), summary, stats.DefaultCurvePoints); err == nil {
		report.NormalCurve = &curve
	}

	u.resolvePrice(ctx, &report)
	for _, k := range bandLevels {
		report.PriceRanges = append(report.PriceRanges, stats.PriceInterval(report.CurrentPrice, summary.StdDev, k))
	}

	d, err := stats.EstimateDensity(series.Closes(), series.Volumes(), u.density)
	if err != nil {
		slog.Info("price density unavailable", "symbol", series.Symbol, "interval", interval, "error", err)
		report.DensityErr = err
	} else {
		report.Density = &d
	}
	return report, nil
}

// resolvePrice は最新価格を取得し、取得できない場合は直近の終値で代替します。
func (u *AnalysisUsecase) resolvePrice(ctx context.Context, r *entity.Report) {
	last, _ := r.Series.Last()
	price, ok := u.candles.CurrentPrice(ctx, r.Series.Symbol)
	if !ok {
		r.CurrentPrice = last.Close
		r.PriceSource = entity.PriceSourceLastClose
		return
	}
	r.CurrentPrice = price
	r.PriceSource = entity.PriceSourceTicker

	if n := r.Series.Len(); n >= 2 {
		prev := r.Series.Candles[n-2].Close
		if prev > 0 {
			pct := (price - prev) / prev * 100
			r.ChangePct = &pct
		}
	}
}

