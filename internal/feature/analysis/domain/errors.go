// Package domain defines domain-level errors for the analysis feature.
package domain

import "errors"

var (
	// ErrInsufficientData indicates the sample is too small (or degenerate) for the requested
	// statistic. Callers must not substitute a zero value.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidWeights indicates a weight vector of the wrong length, with negative entries,
	// or summing to zero.
	ErrInvalidWeights = errors.New("invalid weights")
)
