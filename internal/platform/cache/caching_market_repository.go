// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"crypto_backend/internal/feature/candles/domain/entity"
	"crypto_backend/internal/feature/candles/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching of kline responses.
// Ticker prices are always passed through.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	namespace string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// A nil client disables caching. If namespace is empty, it uses "klines".
func NewCachingMarketRepository(rdb *redis.Client, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if namespace == "" {
		namespace = "klines"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		namespace: namespace,
	}
}

// Klines retrieves candles, checking cache first then falling back to the exchange.
// Entries live for one interval bucket (see TTLForInterval).
func (c *CachingMarketRepository) Klines(ctx context.Context, symbol string, interval entity.Interval, limit int) ([]entity.Candle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Klines(ctx, symbol, interval, limit)
	}

	key := c.cacheKey(symbol, interval, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the exchange
	out, err := c.inner.Klines(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, TTLForInterval(interval)).Err()
	}

	return out, nil
}

// TickerPrice is never cached.
func (c *CachingMarketRepository) TickerPrice(ctx context.Context, symbol string) (float64, error) {
	return c.inner.TickerPrice(ctx, symbol)
}

// cacheKey generates a cache key for a specific query.
func (c *CachingMarketRepository) cacheKey(symbol string, interval entity.Interval, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(interval.String()),
		limit,
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
