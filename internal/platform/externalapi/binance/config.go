// Package binance provides a client for the Binance spot market REST API.
package binance

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public spot API host.
const DefaultBaseURL = "https://api.binance.com"

// Config holds configuration for the Binance API client.
type Config struct {
	BaseURL           string        // Base URL for the API (e.g., "https://api.binance.com")
	Timeout           time.Duration // HTTP request timeout
	RequestsPerSecond int           // Client-side pacing, 0 disables it
	MaxAttempts       int           // Total attempts per request including retries
}

// LoadConfig loads Binance configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 10,
		MaxAttempts:       3,
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_BASE_URL")); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v, err := time.ParseDuration(os.Getenv("BINANCE_TIMEOUT")); err == nil && v > 0 {
		cfg.Timeout = v
	}
	if v, err := strconv.Atoi(os.Getenv("BINANCE_RPS")); err == nil && v >= 0 {
		cfg.RequestsPerSecond = v
	}
	return cfg
}
