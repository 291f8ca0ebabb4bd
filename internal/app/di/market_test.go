package di

import (
	"time"

	"crypto_backend/internal/platform/externalapi/binance"
)

func binanceTestConfig() binance.Config {
	return binance.Config{
		BaseURL:           "http://127.0.0.1:0",
		Timeout:           time.Second,
		RequestsPerSecond: 5,
		MaxAttempts:       1,
	}
}
