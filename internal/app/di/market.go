// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"crypto_backend/internal/platform/cache"
	"crypto_backend/internal/platform/externalapi/binance"
	platformhttp "crypto_backend/internal/platform/http"
	"crypto_backend/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured BinanceMarket: timeout-bound HTTP client, client-side
// pacing and bounded retries.
func NewMarket(cfg binance.Config) *binance.BinanceMarket {
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RequestsPerSecond, time.Second)
	client := platformhttp.NewRetryClient(httpClient, limiter, platformhttp.RetryOptions{
		MaxAttempts: cfg.MaxAttempts,
	})
	return binance.NewBinanceMarket(cfg, client)
}

// NewCachedMarket wraps market with the Redis kline cache. A nil client bypasses the cache.
func NewCachedMarket(rdb *redis.Client, market *binance.BinanceMarket) *cache.CachingMarketRepository {
	return cache.NewCachingMarketRepository(rdb, market, "klines")
}
