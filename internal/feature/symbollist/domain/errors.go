// Package domain defines domain-level errors for the symbollist feature.
package domain

import "errors"

var (
	// ErrCatalogUnavailable indicates the instrument snapshot is missing, unreadable,
	// malformed or empty.
	ErrCatalogUnavailable = errors.New("instrument catalog unavailable")

	// ErrInstrumentNotFound is returned when a symbol is not in the catalog.
	ErrInstrumentNotFound = errors.New("instrument not found")
)
