package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"crypto_backend/internal/feature/analysis/domain"
	"crypto_backend/internal/feature/analysis/domain/entity"
)

// DefaultCurvePoints is the resolution of NormalCurve when n is not positive.
const DefaultCurvePoints = 500

// Summarize returns the mean, sample standard deviation (n-1) and latest value of returns.
func Summarize(returns []float64) (entity.VolatilitySummary, error) {
	if len(returns) < minReturns {
		return entity.VolatilitySummary{}, fmt.Errorf("%w: %d return(s), need %d", domain.ErrInsufficientData, len(returns), minReturns)
	}
	mean, std := stat.MeanStdDev(returns, nil)
	if math.IsNaN(std) || math.IsInf(std, 0) {
		return entity.VolatilitySummary{}, fmt.Errorf("%w: non-finite deviation", domain.ErrInsufficientData)
	}
	return entity.VolatilitySummary{
		Mean:   mean,
		StdDev: std,
		Latest: returns[len(returns)-1],
		Count:  len(returns),
	}, nil
}

// SigmaBands returns mean ± k·stddev. The band is only meaningful under approximate normality.
func SigmaBands(s entity.VolatilitySummary, k int) entity.Band {
	d := float64(k) * s.StdDev
	return entity.Band{K: k, Lower: s.Mean - d, Upper: s.Mean + d}
}

// PriceInterval projects a k-sigma move onto price: price·(1 ∓ k·stddev).
func PriceInterval(price, stddev float64, k int) entity.PriceRange {
	d := float64(k) * stddev
	return entity.PriceRange{K: k, Low: price * (1 - d), High: price * (1 + d)}
}

// NormalCurve samples the normal pdf N(mean, stddev) at n evenly spaced points over the
// observed range of returns.
func NormalCurve(returns []float64, s entity.VolatilitySummary, n int) (entity.NormalCurve, error) {
	if len(returns) < minReturns || s.StdDev <= 0 {
		return entity.NormalCurve{}, fmt.Errorf("%w: normal curve needs a positive deviation", domain.ErrInsufficientData)
	}
	if n <= 1 {
		n = DefaultCurvePoints
	}
	xs := floats.Span(make([]float64, n), floats.Min(returns), floats.Max(returns))
	dist := distuv.Normal{Mu: s.Mean, Sigma: s.StdDev}
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = dist.Prob(x)
	}
	return entity.NormalCurve{Xs: xs, Density: ys}, nil
}
