package entity

import (
	"fmt"
	"time"

	"crypto_backend/internal/feature/candles/domain"
)

// Interval is a kline bucket width accepted by the exchange.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval3m  Interval = "3m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval2h  Interval = "2h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval3d  Interval = "3d"
	Interval1w  Interval = "1w"
	Interval1M  Interval = "1M"
)

// intervalDurations lists every supported interval with its nominal width.
// 1M is approximated as 30 days.
var intervalDurations = map[Interval]time.Duration{
	Interval1m:  time.Minute,
	Interval3m:  3 * time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  time.Hour,
	Interval2h:  2 * time.Hour,
	Interval4h:  4 * time.Hour,
	Interval6h:  6 * time.Hour,
	Interval8h:  8 * time.Hour,
	Interval12h: 12 * time.Hour,
	Interval1d:  24 * time.Hour,
	Interval3d:  3 * 24 * time.Hour,
	Interval1w:  7 * 24 * time.Hour,
	Interval1M:  30 * 24 * time.Hour,
}

// ParseInterval validates s against the supported kline intervals.
// Matching is case-sensitive because "1m" and "1M" differ.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if _, ok := intervalDurations[iv]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidInterval, s)
	}
	return iv, nil
}

// Valid reports whether iv is a supported interval.
func (iv Interval) Valid() bool {
	_, ok := intervalDurations[iv]
	return ok
}

// Duration returns the nominal bucket width, or 0 for an unknown interval.
func (iv Interval) Duration() time.Duration {
	return intervalDurations[iv]
}

func (iv Interval) String() string { return string(iv) }
