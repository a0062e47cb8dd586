// Package http provides a configurable HTTP client with retry logic.
// It wraps the retryablehttp.Client from HashiCorp and exposes functional
// options for customizing timeouts and retry behavior. It also defines
// StatusError, the error adapters return when a server answers with a
// non-successful status.
package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxErrorBodySize caps how much of an error response body is kept.
const maxErrorBodySize = 64 << 10

// StatusError reports a response with a non-2xx status code along with the
// raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// CheckResponse returns nil for 2xx responses. Otherwise it drains up to
// maxErrorBodySize bytes of the body and returns a *StatusError.
func CheckResponse(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
	if err != nil {
		return fmt.Errorf("reading error response: %w", err)
	}

	return &StatusError{
		StatusCode: res.StatusCode,
		Body:       string(body),
	}
}

// config holds internal settings for the HTTP client.
type config struct {
	timeout          time.Duration // maximum duration for a single HTTP request
	retryWaitMin     time.Duration // minimum delay between retry attempts
	retryWaitMax     time.Duration // maximum delay between retry attempts
	retryMax         int           // maximum number of retry attempts
	passthroughError bool          // return the last response instead of a generic error once retries are exhausted
}

// Option defines a functional option for configuring the HTTP client.
type Option func(*config)

// NewClient creates and returns a retryablehttp.Client configured with
// the provided options. If no options are given, default values are used:
//
//   - timeout:      5 seconds
//   - retryWaitMin: 1 second
//   - retryWaitMax: 5 seconds
//   - retryMax:     2 retries
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:      5 * time.Second,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 5 * time.Second,
		retryMax:     2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.retryWaitMin
	client.RetryWaitMax = cfg.retryWaitMax
	client.RetryMax = cfg.retryMax
	if cfg.passthroughError {
		client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	}
	return client
}

// WithTimeout sets the maximum duration allowed for a single HTTP request.
// Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryWaitMin sets the minimum delay between retry attempts.
// Default: 1 second.
func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = d
	}
}

// WithRetryWaitMax sets the maximum delay between retry attempts.
// Default: 5 seconds.
func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMax = d
	}
}

// WithRetryMax sets the maximum number of retry attempts for failed requests.
// Default: 2 retries.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}

// WithPassthroughErrors makes the client hand back the last response once
// retries are exhausted, so callers can inspect its status and body.
func WithPassthroughErrors() Option {
	return func(c *config) {
		c.passthroughError = true
	}
}
