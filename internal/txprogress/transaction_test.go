package txprogress

import (
	"context"
	"errors"
	"testing"

	"github.com/gabapcia/txprogress/internal/chainerr"
	"github.com/gabapcia/txprogress/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/txprogress/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTransactionRequest(uri string) TransactionRequest {
	return TransactionRequest{
		ChainID:  testChainID,
		Messages: testMessages,
		TxHash:   testTxHash,
		Entity:   "service",
		URI:      uri,
	}
}

func TestService_TrackTransaction(t *testing.T) {
	receipt := Receipt{TxHash: testTxHash, BlockNumber: 100, Status: 1}

	t.Run("without off-chain data goes through steps 1 and 2 then succeeds", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		mock.InOrder(
			display.EXPECT().Show(mock.Anything, stepContent(1, 2, false, testMessages.Pending), Options{Type: TypeDefault}).Return("toast-1", nil).Once(),
			receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, ReceiptRequest{Hash: testTxHash, Confirmations: 1}).Return(receipt, nil).Once(),
			display.EXPECT().Update(mock.Anything, "toast-1", stepPatch(2, 2, false, testMessages.Pending)).Return(nil).Once(),
			display.EXPECT().Update(mock.Anything, "toast-1", successPatch(testMessages.Success)).Return(nil).Once(),
		)

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(""))

		require.NoError(t, err)
		assert.Empty(t, result.EntityID)
		assert.Equal(t, StateSuccess, result.Notification.State)
		assert.Equal(t, 2, result.Notification.Step)
		assert.Equal(t, testMessages.Success, result.Notification.Message)
		indexer.AssertNotCalled(t, "CheckSynced", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("with off-chain data goes through steps 1 to 3 and returns the entity id", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		mock.InOrder(
			display.EXPECT().Show(mock.Anything, stepContent(1, 3, true, testMessages.Pending), Options{Type: TypeDefault}).Return("toast-1", nil).Once(),
			receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, ReceiptRequest{Hash: testTxHash, Confirmations: 1}).Return(receipt, nil).Once(),
			display.EXPECT().Update(mock.Anything, "toast-1", stepPatch(2, 3, true, testMessages.Pending)).Return(nil).Once(),
			indexer.EXPECT().CheckSynced(mock.Anything, testChainID, "services", testURI).Return("42", nil).Once(),
			display.EXPECT().Update(mock.Anything, "toast-1", stepPatch(3, 3, true, testMessages.Pending)).Return(nil).Once(),
			indexer.EXPECT().CheckSynced(mock.Anything, testChainID, "serviceDescriptions", testURI).Return("42-1", nil).Once(),
			display.EXPECT().Update(mock.Anything, "toast-1", successPatch(testMessages.Success)).Return(nil).Once(),
		)

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(testURI))

		require.NoError(t, err)
		assert.Equal(t, "42", result.EntityID)
		assert.Equal(t, StateSuccess, result.Notification.State)
		assert.Equal(t, 3, result.Notification.Step)
	})

	t.Run("receipt failure ends in error without any sync check", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		rejected := &jsonrpc.ProviderError{Code: 4001, Message: "User rejected the request."}

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(Receipt{}, rejected).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", errorPatch("REJECTED_TRANSACTION - user rejected transaction")).Return(nil).Once()

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(testURI))

		require.Error(t, err)
		assert.ErrorIs(t, err, rejected)

		var parsed *chainerr.Error
		require.ErrorAs(t, err, &parsed)
		assert.Equal(t, chainerr.KindRejected, parsed.Kind)

		assert.Empty(t, result.EntityID)
		assert.Equal(t, StateError, result.Notification.State)
		assert.Equal(t, 1, result.Notification.Step)
		assert.Equal(t, "REJECTED_TRANSACTION - user rejected transaction", result.Notification.Message)
		indexer.AssertNotCalled(t, "CheckSynced", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("first sync check failure stops after step 2", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(receipt, nil).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", stepPatch(2, 3, true, testMessages.Pending)).Return(nil).Once()
		indexer.EXPECT().CheckSynced(mock.Anything, testChainID, "services", testURI).Return("", context.DeadlineExceeded).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", errorPatch("UNKNOWN_ERROR - context deadline exceeded")).Return(nil).Once()

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(testURI))

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, StateError, result.Notification.State)
		assert.Equal(t, 2, result.Notification.Step)
		indexer.AssertNotCalled(t, "CheckSynced", mock.Anything, testChainID, "serviceDescriptions", testURI)
	})

	t.Run("second sync check failure stops at step 3", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(receipt, nil).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", stepPatch(2, 3, true, testMessages.Pending)).Return(nil).Once()
		indexer.EXPECT().CheckSynced(mock.Anything, testChainID, "services", testURI).Return("42", nil).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", stepPatch(3, 3, true, testMessages.Pending)).Return(nil).Once()
		indexer.EXPECT().CheckSynced(mock.Anything, testChainID, "serviceDescriptions", testURI).Return("", errors.New("subgraph unavailable")).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", errorPatch("UNKNOWN_ERROR - subgraph unavailable")).Return(nil).Once()

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(testURI))

		require.Error(t, err)
		assert.Empty(t, result.EntityID)
		assert.Equal(t, 3, result.Notification.Step)
		assert.Equal(t, StateError, result.Notification.State)
	})

	t.Run("parsed chain errors render as code and context", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(Receipt{}, errors.New("execution reverted: Not the owner")).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", errorPatch("CALL_REVERTED - Not the owner")).Return(nil).Once()

		_, err := svc.TrackTransaction(t.Context(), newTransactionRequest(""))

		var parsed *chainerr.Error
		require.ErrorAs(t, err, &parsed)
		assert.Equal(t, chainerr.CodeCallReverted, parsed.Code)
	})

	t.Run("errors without text fall back to the error message", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(Receipt{}, errors.New("")).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", errorPatch(testMessages.Error)).Return(nil).Once()

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(""))

		require.Error(t, err)
		assert.Equal(t, testMessages.Error, result.Notification.Message)
	})

	t.Run("cancelled flow still finalizes the notification as failed", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		liveContext := mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		})

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(Receipt{}, context.Canceled).Once()
		display.EXPECT().Update(liveContext, "toast-1", errorPatch("UNKNOWN_ERROR - context canceled")).Return(nil).Once()

		result, err := svc.TrackTransaction(ctx, newTransactionRequest(testURI))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateError, result.Notification.State)
		assert.Error(t, ctx.Err())
	})

	t.Run("display update failures do not stop the flow", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
		receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(receipt, nil).Once()
		display.EXPECT().Update(mock.Anything, "toast-1", mock.Anything).Return(errors.New("display offline")).Twice()

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(""))

		require.NoError(t, err)
		assert.Equal(t, StateSuccess, result.Notification.State)
	})

	t.Run("show failure aborts before waiting", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()

		result, err := svc.TrackTransaction(t.Context(), newTransactionRequest(testURI))

		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, Result{}, result)
		receipts.AssertNotCalled(t, "WaitForTransactionReceipt", mock.Anything, mock.Anything)
	})

	t.Run("invalid requests are rejected before showing anything", func(t *testing.T) {
		receipts := NewReceiptWaiterMock(t)
		indexer := NewSyncCheckerMock(t)
		display := NewDisplayMock(t)
		svc := New(receipts, indexer, display)

		req := newTransactionRequest(testURI)
		req.TxHash = "0x1234"
		req.Entity = "service\" } } mutation {"

		_, err := svc.TrackTransaction(t.Context(), req)

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		display.AssertNotCalled(t, "Show", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_TrackTransaction_Telemetry(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	}()

	receipts := NewReceiptWaiterMock(t)
	indexer := NewSyncCheckerMock(t)
	display := NewDisplayMock(t)
	svc := New(receipts, indexer, display, WithTracerProvider(tp), WithMeterProvider(mp))

	display.EXPECT().Show(mock.Anything, mock.Anything, mock.Anything).Return("toast-1", nil).Once()
	receipts.EXPECT().WaitForTransactionReceipt(mock.Anything, mock.Anything).Return(Receipt{}, errors.New("nonce too low")).Once()
	display.EXPECT().Update(mock.Anything, "toast-1", mock.Anything).Return(nil).Once()

	_, err := svc.TrackTransaction(t.Context(), newTransactionRequest(""))
	require.Error(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "txprogress.TrackTransaction", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "NONCE_TOO_LOW - nonce too low", ended[0].Status().Description)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	flows := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "txprogress.flows", flows.Name)

	sum, ok := flows.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	outcome, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("outcome"))
	assert.Equal(t, "error", outcome.AsString())
	kind, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("error.kind"))
	assert.Equal(t, "parsed", kind.AsString())
}
