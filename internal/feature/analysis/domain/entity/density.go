package entity

// DensityEstimate is a kernel density evaluated on an evenly spaced price grid.
type DensityEstimate struct {
	Xs        []float64 // ascending grid over [min, max] of the sample
	Density   []float64 // parallel to Xs, non-negative
	Peaks     []int     // indices into Xs of local maxima, ascending
	Troughs   []int     // indices into Xs of local minima, ascending
	Bandwidth float64   // kernel standard deviation in price units
	Weighted  bool
	Samples   int // observations used after filtering
}

// Step returns the grid spacing, or 0 for a grid with fewer than two points.
func (d DensityEstimate) Step() float64 {
	if len(d.Xs) < 2 {
		return 0
	}
	return d.Xs[1] - d.Xs[0]
}

// Level is a price level read off the density curve.
type Level struct {
	Index   int
	Price   float64
	Density float64
}

// PeakLevels returns the price levels of Peaks.
func (d DensityEstimate) PeakLevels() []Level { return d.levels(d.Peaks) }

// TroughLevels returns the price levels of Troughs.
func (d DensityEstimate) TroughLevels() []Level { return d.levels(d.Troughs) }

func (d DensityEstimate) levels(idx []int) []Level {
	out := make([]Level, 0, len(idx))
	for _, i := range idx {
		out = append(out, Level{Index: i, Price: d.Xs[i], Density: d.Density[i]})
	}
	return out
}

// Histogram is a fixed-bin count of a sample. len(Edges) == len(Counts)+1.
type Histogram struct {
	Edges  []float64
	Counts []int
}
