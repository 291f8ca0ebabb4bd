package dto

import candledto "crypto_backend/internal/feature/candles/transport/http/dto"

// Distribution kinds.
const (
	DistributionKDE       = "kde"
	DistributionHistogram = "histogram"
	DistributionNone      = "none"
)

// AnalysisResponse は分析結果のレスポンスDTOです。
type AnalysisResponse struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Range    string `json:"range,omitempty"`
	Period   string `json:"period"` // "daily" or "period"

	CurrentPrice float64  `json:"currentPrice"`
	PriceSource  string   `json:"priceSource"`
	ChangePct    *float64 `json:"changePct,omitempty"`

	Volatility  VolatilityResponse   `json:"volatility"`
	Bands       []BandResponse       `json:"bands"`
	PriceRanges []PriceRangeResponse `json:"priceRanges"`
	Returns     []ReturnPoint        `json:"returns"`
	NormalCurve *CurveResponse       `json:"normalCurve,omitempty"`

	Distribution DistributionResponse       `json:"distribution"`
	Candles      []candledto.CandleResponse `json:"candles"`
}

// VolatilityResponse はボラティリティ統計です。
type VolatilityResponse struct {
	Mean             float64 `json:"mean"`
	StdDev           float64 `json:"stdDev"`
	Latest           float64 `json:"latest"`
	Count            int     `json:"count"`
	ExtremeThreshold float64 `json:"extremeThreshold"` // 2σ
}

// BandResponse は mean ± kσ の区間です（正規分布を仮定した参考値）。
type BandResponse struct {
	K     int     `json:"k"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PriceRangeResponse は現在価格に対する ±kσ の価格帯です。
type PriceRangeResponse struct {
	K    int     `json:"k"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ReturnPoint は1期間の収益率です。
type ReturnPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// CurveResponse はサンプリングされた曲線です。
type CurveResponse struct {
	Xs      []float64 `json:"xs"`
	Density []float64 `json:"density"`
}

// LevelResponse は密度曲線上の価格水準です。
type LevelResponse struct {
	Price   float64 `json:"price"`
	Density float64 `json:"density"`
}

// HistogramResponse は終値のヒストグラムです。
type HistogramResponse struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// DistributionResponse は価格分布です。
// KDEが計算できない場合はヒストグラムに縮退し、Noticeにその理由を入れます。
type DistributionResponse struct {
	Kind      string             `json:"kind"`
	Weighted  bool               `json:"weighted,omitempty"`
	Bandwidth float64            `json:"bandwidth,omitempty"`
	Curve     *CurveResponse     `json:"curve,omitempty"`
	Peaks     []LevelResponse    `json:"peaks,omitempty"`   // 抵抗帯
	Troughs   []LevelResponse    `json:"troughs,omitempty"` // 支持帯
	Histogram *HistogramResponse `json:"histogram,omitempty"`
	Notice    string             `json:"notice,omitempty"`
}
