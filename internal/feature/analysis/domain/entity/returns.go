// Package entity defines the value objects produced by the analysis pipeline.
package entity

import "time"

// PeriodLabel names the cadence of a return series.
type PeriodLabel string

const (
	// PeriodDaily marks returns computed between consecutive calendar days.
	PeriodDaily PeriodLabel = "daily"
	// PeriodNative marks returns computed between consecutive candles of the source interval.
	PeriodNative PeriodLabel = "period"
)

// ReturnPoint is one period-over-period relative change, stamped with the later observation.
type ReturnPoint struct {
	Time  time.Time
	Value float64
}

// ReturnSeries is an ordered list of returns. The first source observation never produces a point.
type ReturnSeries struct {
	Points []ReturnPoint
	Period PeriodLabel
}

// Len returns the number of returns.
func (r ReturnSeries) Len() int { return len(r.Points) }

// Values returns the return values in time order.
func (r ReturnSeries) Values() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Value
	}
	return out
}
