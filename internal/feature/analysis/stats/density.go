package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"crypto_backend/internal/feature/analysis/domain"
	"crypto_backend/internal/feature/analysis/domain/entity"
)

// DensityOptions tunes EstimateDensity. Zero fields take the defaults.
type DensityOptions struct {
	SampleCount int // grid points over [min, max], default 1000
	MinPoints   int // minimum observations after filtering, default 10
	HalfWidth   int // extrema comparison window on each side, default 20
	MaxPeaks    int // default 5
	MaxTroughs  int // default 3
}

// DefaultDensityOptions returns the options used by the analysis pipeline.
func DefaultDensityOptions() DensityOptions {
	return DensityOptions{
		SampleCount: 1000,
		MinPoints:   10,
		HalfWidth:   20,
		MaxPeaks:    5,
		MaxTroughs:  3,
	}
}

func (o DensityOptions) withDefaults() DensityOptions {
	d := DefaultDensityOptions()
	if o.SampleCount < 2 {
		o.SampleCount = d.SampleCount
	}
	if o.MinPoints < 2 {
		o.MinPoints = d.MinPoints
	}
	if o.HalfWidth < 1 {
		o.HalfWidth = d.HalfWidth
	}
	if o.MaxPeaks < 1 {
		o.MaxPeaks = d.MaxPeaks
	}
	if o.MaxTroughs < 1 {
		o.MaxTroughs = d.MaxTroughs
	}
	return o
}

// EstimateDensity fits a weighted Gaussian KDE to prices and evaluates it on an evenly spaced
// grid over the sample range.
//
// weights may be nil (uniform). Otherwise it must have the same length as prices, contain
// only finite non-negative values and not sum to zero, or ErrInvalidWeights is returned.
// Observations with a non-finite price or a zero weight are dropped before fitting.
// The bandwidth follows Scott's rule on the effective sample size 1/Σw² and the weighted
// variance carries the 1/(1-Σw²) reliability correction.
func EstimateDensity(prices, weights []float64, opts DensityOptions) (entity.DensityEstimate, error) {
	opts = opts.withDefaults()

	if weights != nil {
		if err := validateWeights(prices, weights); err != nil {
			return entity.DensityEstimate{}, err
		}
	}

	xs, ws := filterSample(prices, weights)
	if len(xs) < opts.MinPoints {
		return entity.DensityEstimate{}, fmt.Errorf("%w: %d usable observation(s), need %d",
			domain.ErrInsufficientData, len(xs), opts.MinPoints)
	}

	floats.Scale(1/floats.Sum(ws), ws)
	sumSq := floats.Dot(ws, ws)
	if sumSq >= 1 {
		return entity.DensityEstimate{}, fmt.Errorf("%w: all weight on one observation", domain.ErrInsufficientData)
	}
	mean := floats.Dot(ws, xs)
	var ss float64
	for i, x := range xs {
		d := x - mean
		ss += ws[i] * d * d
	}
	variance := ss / (1 - sumSq)
	if !(variance > 0) || math.IsInf(variance, 0) {
		return entity.DensityEstimate{}, fmt.Errorf("%w: zero variance sample", domain.ErrInsufficientData)
	}

	neff := 1 / sumSq
	bw := math.Sqrt(variance) * math.Pow(neff, -1.0/5)

	grid := floats.Span(make([]float64, opts.SampleCount), floats.Min(xs), floats.Max(xs))
	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	density := make([]float64, len(grid))
	for g, x := range grid {
		var sum float64
		for i, xi := range xs {
			sum += ws[i] * kernel.Prob(x-xi)
		}
		density[g] = sum
	}

	peaks, troughs := LocalExtrema(density, opts.HalfWidth)
	return entity.DensityEstimate{
		Xs:        grid,
		Density:   density,
		Peaks:     strongest(peaks, density, opts.MaxPeaks, true),
		Troughs:   strongest(troughs, density, opts.MaxTroughs, false),
		Bandwidth: bw,
		Weighted:  weights != nil,
		Samples:   len(xs),
	}, nil
}

func validateWeights(prices, weights []float64) error {
	if len(weights) != len(prices) {
		return fmt.Errorf("%w: %d weight(s) for %d price(s)", domain.ErrInvalidWeights, len(weights), len(prices))
	}
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight %d is %v", domain.ErrInvalidWeights, i, w)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("%w: weights sum to zero", domain.ErrInvalidWeights)
	}
	return nil
}

// filterSample drops non-finite prices and zero weights. The returned weights are a copy.
func filterSample(prices, weights []float64) (xs, ws []float64) {
	xs = make([]float64, 0, len(prices))
	ws = make([]float64, 0, len(prices))
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		if w == 0 {
			continue
		}
		xs = append(xs, p)
		ws = append(ws, w)
	}
	return xs, ws
}
