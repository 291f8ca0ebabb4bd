package cache

import (
	"time"

	"crypto_backend/internal/feature/candles/domain/entity"
)

const (
	minTTL = 30 * time.Second
	maxTTL = time.Hour
)

// TTLForInterval returns how long a kline response stays fresh: one bucket of the interval,
// clamped to [30s, 1h].
func TTLForInterval(iv entity.Interval) time.Duration {
	d := iv.Duration()
	switch {
	case d < minTTL:
		return minTTL
	case d > maxTTL:
		return maxTTL
	default:
		return d
	}
}
