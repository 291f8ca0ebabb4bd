package entity

// VolatilitySummary holds the moments of a return series.
// StdDev is the sample standard deviation and is never negative.
type VolatilitySummary struct {
	Mean   float64
	StdDev float64
	Latest float64 // last return in time order
	Count  int
}

// Band is mean ± K standard deviations of the returns. It assumes approximate normality
// and is illustrative only.
type Band struct {
	K     int
	Lower float64
	Upper float64
}

// PriceRange projects a sigma band onto a price: price·(1 ∓ K·stddev).
type PriceRange struct {
	K    int
	Low  float64
	High float64
}

// NormalCurve is the normal pdf fitted to a return series, sampled over the observed range.
type NormalCurve struct {
	Xs      []float64
	Density []float64
}
