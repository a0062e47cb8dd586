// Package ethereum implements the txprogress.ReceiptWaiter interface for
// Ethereum-compatible nodes. It uses a JSON-RPC client to poll for the receipt
// of a transaction until it is included and confirmed.
package ethereum

import (
	"time"

	"github.com/gabapcia/txprogress/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/txprogress/internal/txprogress"
)

// defaultPollingInterval is how often the node is asked for a receipt.
const defaultPollingInterval = 4 * time.Second

// client implements the txprogress.ReceiptWaiter interface for Ethereum-based networks.
// It communicates with an Ethereum node via a JSON-RPC client.
type client struct {
	conn            jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node
	pollingInterval time.Duration  // Delay between two receipt lookups
}

// Ensure client implements the txprogress.ReceiptWaiter interface at compile time.
var _ txprogress.ReceiptWaiter = (*client)(nil)

// Option customizes the client.
type Option func(*client)

// WithPollingInterval sets the delay between two receipt lookups.
// Default: 4 seconds.
func WithPollingInterval(d time.Duration) Option {
	return func(c *client) {
		c.pollingInterval = d
	}
}

// NewClient creates a new Ethereum blockchain client using the provided JSON-RPC connection.
func NewClient(conn jsonrpc.Client, opts ...Option) *client {
	c := &client{
		conn:            conn,
		pollingInterval: defaultPollingInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
