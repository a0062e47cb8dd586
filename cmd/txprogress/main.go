package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/txprogress/internal/config"
	"github.com/gabapcia/txprogress/internal/handlers/cli"
	"github.com/gabapcia/txprogress/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/txprogress/internal/infra/display/console"
	"github.com/gabapcia/txprogress/internal/infra/indexer/graph"
	"github.com/gabapcia/txprogress/internal/infra/storage/redis"
	"github.com/gabapcia/txprogress/internal/pkg/logger"
	"github.com/gabapcia/txprogress/internal/pkg/telemetry"
	"github.com/gabapcia/txprogress/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/txprogress/internal/txprogress"
)

// shutdownTimeout bounds how long pending telemetry is flushed on exit.
const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.OTELEnabled {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	display, closeDisplay, err := newDisplay(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeDisplay()

	conn := jsonrpc.NewClient(cfg.RPCURL,
		jsonrpc.WithTimeout(cfg.RPCTimeout),
		jsonrpc.WithRetryMax(cfg.RPCRetryMax),
	)

	svc := txprogress.New(
		ethereum.NewClient(conn, ethereum.WithPollingInterval(cfg.ReceiptPollInterval)),
		graph.NewClient(cfg.IndexerEndpoints, graph.WithPollingInterval(cfg.IndexerPollInterval)),
		display,
	)

	return cli.Run(ctx, svc)
}

// newDisplay connects to the notification store when one is configured and
// falls back to logging notifications otherwise.
func newDisplay(ctx context.Context, cfg config.Redis) (txprogress.Display, func(), error) {
	if cfg.Addr == "" {
		logger.Info(ctx, "no notification store configured, notifications are logged")
		return console.New(), func() {}, nil
	}

	store, err := redis.NewClient(ctx, cfg.Addr, cfg.Username, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "failed to close redis connection", "error", err)
		}
	}, nil
}
