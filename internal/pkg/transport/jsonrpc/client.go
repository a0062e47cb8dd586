// Package jsonrpc provides a generic JSON-RPC 2.0 client implementation over HTTP.
// It supports automatic retries, configurable timeouts, and is suitable for interacting with
// any JSON-RPC-compatible service, such as blockchain nodes and remote signers.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	httptransport "github.com/gabapcia/txprogress/internal/pkg/transport/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrProviderReturnedError indicates that the remote JSON-RPC server returned an error response.
var ErrProviderReturnedError = errors.New("provider error")

// ProviderError is the error object of a JSON-RPC 2.0 response. It satisfies
// go-ethereum's rpc.Error and rpc.DataError so it can be classified the same
// way as errors coming from an ethclient.
type ProviderError struct {
	Code    int             `json:"code"`    // Error code defined by the JSON-RPC spec or custom server logic
	Message string          `json:"message"` // Human-readable error message
	Data    json.RawMessage `json:"data"`    // Optional payload, e.g. revert data
}

var (
	_ rpc.Error     = (*ProviderError)(nil)
	_ rpc.DataError = (*ProviderError)(nil)
)

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: [%d] - %s", ErrProviderReturnedError, e.Code, e.Message)
}

// Is reports ErrProviderReturnedError as matching.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderReturnedError
}

// ErrorCode returns the JSON-RPC error code.
func (e *ProviderError) ErrorCode() int {
	return e.Code
}

// ErrorData returns the decoded error data, or nil when none was sent.
func (e *ProviderError) ErrorData() any {
	if len(e.Data) == 0 {
		return nil
	}

	var data any
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return string(e.Data)
	}
	return data
}

// response represents a standard JSON-RPC 2.0 response.
type response struct {
	JsonRPC string          `json:"jsonrpc"` // JSON-RPC protocol version (usually "2.0")
	Error   *ProviderError  `json:"error"`
	Result  json.RawMessage `json:"result"` // Raw result payload returned by the server
}

// Err returns the response error object, or nil when the call succeeded.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return r.Error
}

// Client defines the interface for a generic JSON-RPC client.
// It can be used to abstract the underlying implementation and facilitate mocking or testing.
type Client interface {
	// Fetch sends a JSON-RPC request with the given method name and parameters.
	// It returns the raw JSON result or an error if the request or response fails.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// client is a reusable JSON-RPC client over HTTP.
// It handles encoding requests, sending them, decoding responses, and retry logic.
type client struct {
	providerEndpoint string                // The URL of the remote JSON-RPC server
	httpClient       *retryablehttp.Client // The HTTP client used to perform requests
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// Fetch sends a JSON-RPC request to the remote server with the given method and parameters.
// It returns the raw result as a json.RawMessage or an error if the request or server fails.
// The `id` field in the request is generated as a UUID string.
//
// Non-2xx responses that do not carry a JSON-RPC body are reported as
// *httptransport.StatusError.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	failed := res.StatusCode < 200 || res.StatusCode >= 300

	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		if failed {
			return nil, &httptransport.StatusError{StatusCode: res.StatusCode, Body: string(raw)}
		}
		return nil, err
	}

	if err := data.Err(); err != nil {
		return nil, err
	}

	// A failed status without a JSON-RPC error member carries no result.
	if failed {
		return nil, &httptransport.StatusError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	return data.Result, nil
}

// config holds optional configuration parameters for the JSON-RPC client.
type config struct {
	httpOptions []httptransport.Option
}

// Option defines a functional option type used to customize the client configuration.
type Option func(*config)

// NewClient creates a new JSON-RPC client pointing to the specified server endpoint.
// Optional configuration parameters can be supplied using functional options such as WithTimeout.
// Defaults are the ones of the http transport: 5s timeout, 2 retries waiting 1s to 5s.
func NewClient(providerEndpoint string, opts ...Option) *client {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httptransport.NewClient(append(cfg.httpOptions, httptransport.WithPassthroughErrors())...),
	}
}

// WithTimeout configures the maximum duration for a single HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, httptransport.WithTimeout(d))
	}
}

// WithRetryWaitMin configures the minimum wait duration between retry attempts.
func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, httptransport.WithRetryWaitMin(d))
	}
}

// WithRetryWaitMax configures the maximum wait duration between retry attempts.
func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, httptransport.WithRetryWaitMax(d))
	}
}

// WithRetryMax configures the maximum number of retry attempts for failed requests.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, httptransport.WithRetryMax(n))
	}
}
