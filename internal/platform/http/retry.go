package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"crypto_backend/internal/shared/ratelimiter"
)

// maxBodyBytes limits how much of a response body is read into memory.
const maxBodyBytes = 16 << 20

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// RetryOptions configures RetryClient.
type RetryOptions struct {
	MaxAttempts     int           // total attempts including the first, default 3
	InitialInterval time.Duration // first backoff delay, default 200ms
	MaxInterval     time.Duration // cap for a single delay, default 2s
}

// RetryClient performs GET requests with rate limiting and bounded exponential backoff.
// Transport errors, 429 and 5xx are retried; any other non-2xx status is final.
type RetryClient struct {
	httpClient *http.Client
	limiter    ratelimiter.RateLimiterInterface
	opts       RetryOptions
}

// NewRetryClient wraps client. A nil limiter disables pacing.
func NewRetryClient(client *http.Client, limiter ratelimiter.RateLimiterInterface, opts RetryOptions) *RetryClient {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 200 * time.Millisecond
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 2 * time.Second
	}
	return &RetryClient{httpClient: client, limiter: limiter, opts: opts}
}

// Get fetches url and returns the body of a 2xx response.
func (c *RetryClient) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer func() {
			if err := res.Body.Close(); err != nil {
				slog.Warn("failed to close response body", "error", err)
			}
		}()

		b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
		if err != nil {
			return err
		}
		if res.StatusCode < 200 || res.StatusCode > 299 {
			se := &StatusError{StatusCode: res.StatusCode, Body: truncate(string(b), 256)}
			if se.Retryable() {
				return se
			}
			return backoff.Permanent(se)
		}
		body = b
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.opts.InitialInterval
	eb.MaxInterval = c.opts.MaxInterval
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.opts.MaxAttempts-1)), ctx)

	notify := func(err error, d time.Duration) {
		slog.Warn("request failed, retrying", "attempt", attempt, "delay", d, "error", err)
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, fmt.Errorf("after %d attempt(s): %w", attempt, err)
	}
	return body, nil
}

// IsStatus reports whether err carries an HTTP status error with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
