// Package domain defines domain-level errors for the candles feature.
package domain

import "errors"

var (
	// ErrUpstreamUnavailable indicates a transport failure talking to the exchange:
	// network error, timeout or a non-2xx status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamFormat indicates the exchange answered with a payload of an unexpected shape,
	// for example an error object where a list of kline tuples was expected.
	ErrUpstreamFormat = errors.New("unexpected upstream payload")

	// ErrInvalidInterval is returned for an interval outside the supported kline set.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidSymbol is returned for an empty symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrUnknownRange is returned for a time range key with no preset.
	ErrUnknownRange = errors.New("unknown time range")
)
