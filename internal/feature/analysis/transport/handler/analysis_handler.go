// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"crypto_backend/internal/feature/analysis/domain"
	"crypto_backend/internal/feature/analysis/domain/entity"
	"crypto_backend/internal/feature/analysis/stats"
	"crypto_backend/internal/feature/analysis/transport/http/dto"
	candleentity "crypto_backend/internal/feature/candles/domain/entity"
	candlehandler "crypto_backend/internal/feature/candles/transport/handler"

	"github.com/gin-gonic/gin"
)

// AnalysisUsecase は分析パイプラインのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	Analyze(ctx context.Context, symbol string, interval candleentity.Interval, limit int) (entity.Report, error)
	AnalyzeRange(ctx context.Context, symbol, rangeKey string) (entity.Report, error)
}

// AnalysisHandler は分析結果のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler は指定されたusecaseでAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// GetAnalysisHandler は銘柄の価格変動分析をJSONで返します。
//
// エンドポイント例:
// GET /analysis/:symbol?range=180d
// GET /analysis/:symbol?interval=4h&limit=500
//
// intervalが指定された場合はrangeより優先します。
func (h *AnalysisHandler) GetAnalysisHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	var (
		report entity.Report
		err    error
	)
	if iv := c.Query("interval"); iv != "" {
		interval, perr := candleentity.ParseInterval(iv)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		report, err = h.uc.Analyze(c.Request.Context(), symbol, interval, limit)
	} else {
		report, err = h.uc.AnalyzeRange(c.Request.Context(), symbol, c.Query("range"))
	}
	if err != nil {
		c.JSON(StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToResponse(report))
}

// StatusFor はエラーをHTTPステータスに変換します。
// 統計的にデータが不足している場合は422、それ以外はcandlesの対応に従います。
func StatusFor(err error) int {
	if errors.Is(err, domain.ErrInsufficientData) || errors.Is(err, domain.ErrInvalidWeights) {
		return http.StatusUnprocessableEntity
	}
	return candlehandler.StatusFor(err)
}

// ToResponse はReportをレスポンスDTOに変換します。
func ToResponse(r entity.Report) dto.AnalysisResponse {
	out := dto.AnalysisResponse{
		Symbol:       r.Series.Symbol,
		Interval:     r.Series.Interval.String(),
		Range:        r.Range,
		Period:       string(r.Returns.Period),
		CurrentPrice: r.CurrentPrice,
		PriceSource:  string(r.PriceSource),
		ChangePct:    r.ChangePct,
		Volatility: dto.VolatilityResponse{
			Mean:             r.Summary.Mean,
			StdDev:           r.Summary.StdDev,
			Latest:           r.Summary.Latest,
			Count:            r.Summary.Count,
			ExtremeThreshold: 2 * r.Summary.StdDev,
		},
		Bands:        make([]dto.BandResponse, 0, len(r.Bands)),
		PriceRanges:  make([]dto.PriceRangeResponse, 0, len(r.PriceRanges)),
		Returns:      make([]dto.ReturnPoint, 0, r.Returns.Len()),
		Distribution: distribution(r),
		Candles:      candlehandler.ToCandleResponses(r.Series.Candles),
	}
	for _, b := range r.Bands {
		out.Bands = append(out.Bands, dto.BandResponse{K: b.K, Lower: b.Lower, Upper: b.Upper})
	}
	for _, p := range r.PriceRanges {
		out.PriceRanges = append(out.PriceRanges, dto.PriceRangeResponse{K: p.K, Low: p.Low, High: p.High})
	}
	for _, p := range r.Returns.Points {
		out.Returns = append(out.Returns, dto.ReturnPoint{Time: p.Time.UTC().Format(time.RFC3339), Value: p.Value})
	}
	if r.NormalCurve != nil {
		out.NormalCurve = &dto.CurveResponse{Xs: r.NormalCurve.Xs, Density: r.NormalCurve.Density}
	}
	return out
}

// distribution は出来高加重KDEを返し、失敗していれば終値のヒストグラムに縮退します。
func distribution(r entity.Report) dto.DistributionResponse {
	if d := r.Density; d != nil {
		return dto.DistributionResponse{
			Kind:      dto.DistributionKDE,
			Weighted:  d.Weighted,
			Bandwidth: d.Bandwidth,
			Curve:     &dto.CurveResponse{Xs: d.Xs, Density: d.Density},
			Peaks:     levels(d.PeakLevels()),
			Troughs:   levels(d.TroughLevels()),
		}
	}

	var notice string
	if r.DensityErr != nil {
		notice = r.DensityErr.Error()
	}
	h, err := stats.Histogram(r.Series.Closes(), stats.DefaultHistogramBins)
	if err != nil {
		return dto.DistributionResponse{Kind: dto.DistributionNone, Notice: notice}
	}
	return dto.DistributionResponse{
		Kind:      dto.DistributionHistogram,
		Histogram: &dto.HistogramResponse{Edges: h.Edges, Counts: h.Counts},
		Notice:    notice,
	}
}

func levels(ls []entity.Level) []dto.LevelResponse {
	out := make([]dto.LevelResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, dto.LevelResponse{Price: l.Price, Density: l.Density})
	}
	return out
}
