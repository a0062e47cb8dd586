package txprogress

import (
	"context"
	"fmt"

	"github.com/gabapcia/txprogress/internal/chainerr"
	"github.com/gabapcia/txprogress/internal/pkg/logger"
	"github.com/gabapcia/txprogress/internal/pkg/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Messages is the caller supplied text of a flow.
type Messages struct {
	Pending string // shown next to the step while the flow runs
	Success string `validate:"required"`
	Error   string // used when a failure carries no text of its own
}

// TransactionRequest describes a transaction to track.
type TransactionRequest struct {
	ChainID  int64 `validate:"gt=0"`
	Messages Messages
	TxHash   string `validate:"required,tx_hash"`

	// Entity names the indexed entity; the indexer is queried for Entity+"s"
	// and Entity+"Descriptions".
	Entity string `validate:"required,alphanum"`

	// URI of the off-chain data written by the transaction. When empty the
	// flow ends right after the transaction is included.
	URI string
}

// ReceiptRequest selects the transaction to wait for.
type ReceiptRequest struct {
	Hash string

	// Confirmations is the number of blocks, including the one holding the
	// transaction, to wait for. Zero leaves it to the provider default.
	Confirmations uint64
}

// Receipt is the inclusion record of a transaction.
type Receipt struct {
	TxHash      string
	BlockHash   string
	BlockNumber uint64
	Status      uint64
	GasUsed     uint64
}

// ReceiptWaiter blocks until a transaction is included on chain.
type ReceiptWaiter interface {
	WaitForTransactionReceipt(ctx context.Context, req ReceiptRequest) (Receipt, error)
}

// SyncChecker blocks until an off-chain indexer has ingested on-chain data.
type SyncChecker interface {
	// CheckSynced waits until resource holds an entry for uri and returns its id.
	CheckSynced(ctx context.Context, chainID int64, resource, uri string) (string, error)

	// CheckUserSynced waits until the user owning address is indexed and returns its id.
	CheckUserSynced(ctx context.Context, chainID int64, address string) (string, error)
}

func (s *service) TrackTransaction(ctx context.Context, req TransactionRequest) (Result, error) {
	if err := validator.Validate(req); err != nil {
		return Result{}, err
	}

	ctx, span := s.tracer.Start(ctx, "txprogress.TrackTransaction", trace.WithAttributes(
		attribute.Int64("chain.id", req.ChainID),
		attribute.String("tx.hash", req.TxHash),
		attribute.String("entity", req.Entity),
		attribute.Bool("offchain", req.URI != ""),
	))
	defer span.End()

	hasOffchainData := req.URI != ""
	totalSteps := 2
	if hasOffchainData {
		totalSteps = 3
	}

	p, err := startProgress(ctx, s.display, req.TxHash, totalSteps, hasOffchainData, req.Messages.Pending)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	entityID, err := s.runTransactionSteps(ctx, p, req)
	if err != nil {
		return s.finishWithError(ctx, span, p, flowTransaction, req.Messages, err)
	}

	return s.finishWithSuccess(ctx, span, p, flowTransaction, req.Messages, entityID)
}

// runTransactionSteps performs the waits of a transaction flow, advancing p
// after each one.
func (s *service) runTransactionSteps(ctx context.Context, p *progress, req TransactionRequest) (string, error) {
	if _, err := s.receipts.WaitForTransactionReceipt(ctx, ReceiptRequest{Hash: req.TxHash, Confirmations: 1}); err != nil {
		return "", err
	}

	if err := p.advance(ctx); err != nil {
		return "", err
	}

	if req.URI == "" {
		return "", nil
	}

	entityID, err := s.indexer.CheckSynced(ctx, req.ChainID, req.Entity+"s", req.URI)
	if err != nil {
		return "", err
	}

	if err := p.advance(ctx); err != nil {
		return "", err
	}

	if _, err := s.indexer.CheckSynced(ctx, req.ChainID, req.Entity+"Descriptions", req.URI); err != nil {
		return "", err
	}

	return entityID, nil
}

func (s *service) finishWithSuccess(ctx context.Context, span trace.Span, p *progress, flow string, msgs Messages, entityID string) (Result, error) {
	if err := p.succeed(ctx, msgs.Success); err != nil {
		return s.finishWithError(ctx, span, p, flow, msgs, err)
	}

	span.SetAttributes(attribute.String("entity.id", entityID))
	s.recordOutcome(ctx, flow, "")

	logger.Info(ctx, "transaction flow succeeded",
		"flow", flow,
		"tx.hash", p.notification.TxHash,
		"notification.id", p.notification.ID,
		"entity.id", entityID,
	)

	return Result{
		EntityID:     entityID,
		Notification: p.notification,
	}, nil
}

// finishWithError finalizes p as failed with the parsed message of err, logs
// the raw error and returns it wrapped around its *chainerr.Error form.
func (s *service) finishWithError(ctx context.Context, span trace.Span, p *progress, flow string, msgs Messages, err error) (Result, error) {
	parsed := chainerr.Parse(err)

	msg := parsed.Message()
	if parsed.Kind == chainerr.KindUnknown && parsed.Context == "" && msgs.Error != "" {
		msg = msgs.Error
	}

	if finalizeErr := p.fail(ctx, msg); finalizeErr != nil {
		logger.Warn(ctx, "notification was already finalized",
			"notification.id", p.notification.ID,
			"error", finalizeErr,
		)
	}

	logger.Error(ctx, "transaction flow failed",
		"flow", flow,
		"tx.hash", p.notification.TxHash,
		"notification.id", p.notification.ID,
		"notification.step", p.notification.Step,
		"error.kind", parsed.Kind.String(),
		"error.code", parsed.Code,
		"error", err,
	)

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.recordOutcome(ctx, flow, parsed.Kind.String())

	return Result{Notification: p.notification}, fmt.Errorf("tracking transaction %s: %w", p.notification.TxHash, parsed)
}
