// Package config loads the application settings from TXPROGRESS_* environment
// variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gabapcia/txprogress/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// prefix is prepended to every environment variable name.
const prefix = "TXPROGRESS"

// Endpoints maps a chain id to a URL. It is read from a list of
// "<chain id>=<url>" pairs separated by semicolons, e.g.
// "137=https://api.example.com/polygon;80002=https://api.example.com/amoy".
type Endpoints map[int64]string

var _ envconfig.Decoder = (*Endpoints)(nil)

// Decode implements envconfig.Decoder.
func (e *Endpoints) Decode(value string) error {
	endpoints := make(Endpoints)

	for pair := range strings.SplitSeq(value, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		chain, url, ok := strings.Cut(pair, "=")
		if !ok || url == "" {
			return fmt.Errorf("invalid endpoint %q: expected <chain id>=<url>", pair)
		}

		chainID, err := strconv.ParseInt(strings.TrimSpace(chain), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id %q: %w", chain, err)
		}

		endpoints[chainID] = strings.TrimSpace(url)
	}

	*e = endpoints
	return nil
}

// Redis holds the notification store connection. An empty Addr disables it.
type Redis struct {
	Addr     string `envconfig:"ADDR"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"gte=0"`
}

// Config is the application configuration.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"txprogress" validate:"required"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	OTELEnabled bool   `envconfig:"OTEL_ENABLED" default:"false"`

	RPCURL              string        `envconfig:"RPC_URL" validate:"required,url"`
	RPCTimeout          time.Duration `envconfig:"RPC_TIMEOUT" default:"5s" validate:"gt=0"`
	RPCRetryMax         int           `envconfig:"RPC_RETRY_MAX" default:"2" validate:"gte=0"`
	ReceiptPollInterval time.Duration `envconfig:"RECEIPT_POLL_INTERVAL" default:"4s" validate:"gt=0"`

	IndexerEndpoints    Endpoints     `envconfig:"INDEXER_ENDPOINTS" validate:"required,min=1,dive,keys,gt=0,endkeys,url"`
	IndexerPollInterval time.Duration `envconfig:"INDEXER_POLL_INTERVAL" default:"1s" validate:"gt=0"`

	Redis Redis `envconfig:"REDIS"`
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
