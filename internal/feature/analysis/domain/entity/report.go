package entity

import candleentity "crypto_backend/internal/feature/candles/domain/entity"

// PriceSource records where Report.CurrentPrice came from.
type PriceSource string

const (
	PriceSourceTicker    PriceSource = "ticker"
	PriceSourceLastClose PriceSource = "last_close"
)

// Report is the result of one analysis run over a candle series.
type Report struct {
	Range  string // preset key, empty when the interval was chosen directly
	Series candleentity.Series

	Returns     ReturnSeries
	Summary     VolatilitySummary
	Bands       []Band       // k = 1, 2
	PriceRanges []PriceRange // k = 1, 2 around CurrentPrice
	NormalCurve *NormalCurve // nil when the returns have zero deviation

	CurrentPrice float64
	PriceSource  PriceSource
	// ChangePct is the percent change of the ticker price against the previous close.
	// It is nil when the ticker was unavailable.
	ChangePct *float64

	// Density and DensityErr are mutually exclusive. The density is computed independently
	// of the volatility statistics, so its failure does not fail the report.
	Density    *DensityEstimate
	DensityErr error
}
