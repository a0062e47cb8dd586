// Package txprogress tracks a submitted transaction through on-chain inclusion
// and off-chain indexing, mirroring every step in a notification and turning
// failures into readable messages.
package txprogress

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/txprogress/internal/txprogress"

const (
	flowTransaction = "transaction"
	flowIdentity    = "identity"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Service tracks transactions and reports their progress through a Display.
type Service interface {
	// TrackTransaction follows a transaction through inclusion and, when the
	// request carries a URI, through indexing of the entity and its
	// description. It returns the indexed entity id, if any.
	//
	// On failure the notification is finalized as an error, and the returned
	// error wraps a *chainerr.Error describing what went wrong.
	TrackTransaction(ctx context.Context, req TransactionRequest) (Result, error)

	// TrackIdentityCreation follows an identity creation transaction through
	// inclusion and indexing of the user, returning the user id.
	TrackIdentityCreation(ctx context.Context, req IdentityRequest) (Result, error)

	// ShowError displays a standalone error notification for err.
	ShowError(ctx context.Context, err error)
}

// Result is the outcome of a tracking flow.
type Result struct {
	// EntityID is the id reported by the indexer. Empty when the flow did not
	// wait for indexing or failed before it.
	EntityID string

	// Notification is the last state of the progress notification.
	Notification Notification
}

type service struct {
	receipts ReceiptWaiter
	indexer  SyncChecker
	display  Display

	tracer trace.Tracer
	flows  metric.Int64Counter
}

var _ Service = (*service)(nil)

type config struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option customizes the service.
type Option func(*config)

// New creates the service. Telemetry uses the global OpenTelemetry providers
// unless overridden.
func New(rw ReceiptWaiter, sc SyncChecker, d Display, opts ...Option) *service {
	cfg := config{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Creating a counter only fails on an invalid name.
	flows, _ := cfg.meterProvider.Meter(instrumentationName).Int64Counter(
		"txprogress.flows",
		metric.WithDescription("Number of finished transaction tracking flows"),
	)

	return &service{
		receipts: rw,
		indexer:  sc,
		display:  d,
		tracer:   cfg.tracerProvider.Tracer(instrumentationName),
		flows:    flows,
	}
}

// WithTracerProvider sets the tracer provider used for flow spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider used for flow metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

func (s *service) recordOutcome(ctx context.Context, flow string, kind string) {
	if s.flows == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String("flow", flow)}
	if kind == "" {
		attrs = append(attrs, attribute.String("outcome", outcomeSuccess))
	} else {
		attrs = append(attrs, attribute.String("outcome", outcomeError), attribute.String("error.kind", kind))
	}

	s.flows.Add(ctx, 1, metric.WithAttributes(attrs...))
}
