package txprogress

import (
	"context"

	"github.com/gabapcia/txprogress/internal/pkg/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// identitySteps is the fixed length of an identity creation flow: inclusion,
// then indexing of the user.
const identitySteps = 2

// IdentityRequest describes an identity creation transaction to track.
type IdentityRequest struct {
	ChainID  int64 `validate:"gt=0"`
	Messages Messages
	TxHash   string `validate:"required,tx_hash"`
	Address  string `validate:"required,eth_addr"`
}

func (s *service) TrackIdentityCreation(ctx context.Context, req IdentityRequest) (Result, error) {
	if err := validator.Validate(req); err != nil {
		return Result{}, err
	}

	ctx, span := s.tracer.Start(ctx, "txprogress.TrackIdentityCreation", trace.WithAttributes(
		attribute.Int64("chain.id", req.ChainID),
		attribute.String("tx.hash", req.TxHash),
		attribute.String("user.address", req.Address),
	))
	defer span.End()

	p, err := startProgress(ctx, s.display, req.TxHash, identitySteps, false, req.Messages.Pending)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	userID, err := s.runIdentitySteps(ctx, p, req)
	if err != nil {
		return s.finishWithError(ctx, span, p, flowIdentity, req.Messages, err)
	}

	return s.finishWithSuccess(ctx, span, p, flowIdentity, req.Messages, userID)
}

func (s *service) runIdentitySteps(ctx context.Context, p *progress, req IdentityRequest) (string, error) {
	if _, err := s.receipts.WaitForTransactionReceipt(ctx, ReceiptRequest{Hash: req.TxHash}); err != nil {
		return "", err
	}

	if err := p.advance(ctx); err != nil {
		return "", err
	}

	return s.indexer.CheckUserSynced(ctx, req.ChainID, req.Address)
}
