package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"crypto_backend/internal/feature/analysis/domain"
	"crypto_backend/internal/feature/analysis/domain/entity"
)

// DefaultHistogramBins is used when bins is not positive.
const DefaultHistogramBins = 50

// Histogram counts the finite values into equal-width bins spanning [min, max].
// The last bin is closed on the right. A constant sample is centred in a unit-wide range.
func Histogram(values []float64, bins int) (entity.Histogram, error) {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return entity.Histogram{}, fmt.Errorf("%w: no finite values", domain.ErrInsufficientData)
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, x := range xs {
		b := int((x - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	return entity.Histogram{Edges: edges, Counts: counts}, nil
}
