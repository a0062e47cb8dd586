// Package graph implements the txprogress.SyncChecker interface against
// subgraph GraphQL endpoints, one per chain. It polls the subgraph until the
// entity written by a transaction shows up.
package graph

import (
	"errors"
	"time"

	"github.com/gabapcia/txprogress/internal/pkg/resilience/retry"
	httptransport "github.com/gabapcia/txprogress/internal/pkg/transport/http"
	"github.com/gabapcia/txprogress/internal/txprogress"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	// ErrUnknownChain is returned when no subgraph endpoint is configured for a chain id.
	ErrUnknownChain = errors.New("no subgraph endpoint for chain")

	// ErrQueryFailed is returned when the subgraph answers with GraphQL errors.
	ErrQueryFailed = errors.New("subgraph query failed")

	// ErrNotSynced is returned by a lookup that found no entity yet.
	ErrNotSynced = errors.New("entity not indexed yet")
)

// defaultPollingInterval is the delay between two subgraph lookups.
const defaultPollingInterval = time.Second

// client implements the txprogress.SyncChecker interface over HTTP.
type client struct {
	endpoints  map[int64]string      // Subgraph URL per chain id
	httpClient *retryablehttp.Client // The HTTP client used to perform requests
	poller     retry.Retry           // Repeats lookups while they report ErrNotSynced
}

// Ensure client implements the txprogress.SyncChecker interface at compile time.
var _ txprogress.SyncChecker = (*client)(nil)

type config struct {
	pollingInterval time.Duration
	httpOptions     []httptransport.Option
}

// Option customizes the client.
type Option func(*config)

// WithPollingInterval sets the delay between two lookups. Default: 1 second.
func WithPollingInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollingInterval = d
	}
}

// WithTimeout sets the maximum duration of a single HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, httptransport.WithTimeout(d))
	}
}

// WithRetryMax sets how many times a failed HTTP request is retried.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, httptransport.WithRetryMax(n))
	}
}

// NewClient creates a subgraph client for the given chain id to endpoint map.
func NewClient(endpoints map[int64]string, opts ...Option) *client {
	cfg := config{
		pollingInterval: defaultPollingInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		endpoints:  endpoints,
		httpClient: httptransport.NewClient(append(cfg.httpOptions, httptransport.WithPassthroughErrors())...),
		poller: retry.New(
			retry.WithAttempts(0),
			retry.WithDelay(cfg.pollingInterval),
			retry.WithMaxDelay(cfg.pollingInterval),
			retry.WithRetryIf(func(err error) bool {
				return errors.Is(err, ErrNotSynced)
			}),
		),
	}
}
