package entity

import (
	"fmt"

	"crypto_backend/internal/feature/candles/domain"
)

// TimeRange is a named lookback window mapped to the candle granularity used to plot it.
type TimeRange struct {
	Key      string
	Interval Interval
	Limit    int
}

// DefaultTimeRange is the lookback used when the caller does not choose one.
const DefaultTimeRange = "180d"

// timeRanges keeps the presentation order of the presets.
var timeRanges = []TimeRange{
	{Key: "1d", Interval: Interval1m, Limit: 1440},
	{Key: "3d", Interval: Interval15m, Limit: 72},
	{Key: "7d", Interval: Interval1h, Limit: 168},
	{Key: "30d", Interval: Interval4h, Limit: 180},
	{Key: "90d", Interval: Interval4h, Limit: 720},
	{Key: "180d", Interval: Interval1d, Limit: 180},
	{Key: "1y", Interval: Interval1d, Limit: 365},
	{Key: "2y", Interval: Interval1d, Limit: 730},
	{Key: "3y", Interval: Interval1d, Limit: 1095},
	{Key: "5y", Interval: Interval1d, Limit: 1825},
}

// TimeRanges returns a copy of all presets in display order.
func TimeRanges() []TimeRange {
	out := make([]TimeRange, len(timeRanges))
	copy(out, timeRanges)
	return out
}

// LookupTimeRange resolves a preset key. An empty key resolves to DefaultTimeRange.
func LookupTimeRange(key string) (TimeRange, error) {
	if key == "" {
		key = DefaultTimeRange
	}
	for _, r := range timeRanges {
		if r.Key == key {
			return r, nil
		}
	}
	return TimeRange{}, fmt.Errorf("%w: %q", domain.ErrUnknownRange, key)
}
