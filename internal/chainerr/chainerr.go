// Package chainerr turns errors raised while sending or tracking a transaction
// into a tagged, human-readable form.
//
// Errors are inspected by shape: transport status errors, JSON-RPC errors
// (go-ethereum's rpc.Error and rpc.DataError, as returned by wallets, signers
// and nodes) and finally the well known error texts of go-ethereum's
// transaction pool and EVM. Anything else is reported as UNKNOWN_ERROR with
// the raw error text as context.
package chainerr

import (
	"errors"
	"fmt"
	"strings"

	httptransport "github.com/gabapcia/txprogress/internal/pkg/transport/http"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/txpool"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/rpc"
)

// Kind is the broad family an error belongs to.
type Kind int

const (
	// KindUnknown is an error whose shape is not recognised.
	KindUnknown Kind = iota
	// KindRejected is a transaction the user declined to sign or send.
	KindRejected
	// KindParsed is a chain or wallet error mapped to a known Code.
	KindParsed
	// KindHTTP is a non-successful HTTP response from a backing service.
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindParsed:
		return "parsed"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Code identifies a parsed error.
type Code string

const (
	CodeRejectedTransaction            Code = "REJECTED_TRANSACTION"
	CodeNonceTooLow                    Code = "NONCE_TOO_LOW"
	CodeNotEnoughFunds                 Code = "NOT_ENOUGH_FUNDS"
	CodeCallReverted                   Code = "CALL_REVERTED"
	CodeMaxPriorityFeeAboveMaxFee      Code = "MAX_PRIORITY_FEE_PER_GAS_HIGHER_THAN_MAX_FEE_PER_GAS"
	CodeMaxFeeBelowBaseFee             Code = "MAX_FEE_PER_GAS_LESS_THAN_BLOCK_BASE_FEE"
	CodeOutOfGas                       Code = "TRANSACTION_RAN_OUT_OF_GAS"
	CodeUnderpriced                    Code = "TRANSACTION_UNDERPRICED"
	CodeRejectedReplacementTransaction Code = "REJECTED_REPLACEMENT_TRANSACTION"
	CodeUnknown                        Code = "UNKNOWN_ERROR"
)

// userRejectedCode is the EIP-1193 provider error for a request the user declined.
const userRejectedCode = 4001

// rejectionPhrases are the texts wallets use when the user declines a request.
var rejectionPhrases = []string{
	"user rejected",
	"user denied",
	"rejected by user",
	"action_rejected",
}

// knownErrors maps go-ethereum error texts to codes. Order matters: more
// specific texts must come before the ones they contain.
var knownErrors = []struct {
	text string
	code Code
}{
	{txpool.ErrReplaceUnderpriced.Error(), CodeRejectedReplacementTransaction},
	{txpool.ErrUnderpriced.Error(), CodeUnderpriced},
	{core.ErrNonceTooLow.Error(), CodeNonceTooLow},
	{core.ErrInsufficientFunds.Error(), CodeNotEnoughFunds},
	{core.ErrInsufficientFundsForTransfer.Error(), CodeNotEnoughFunds},
	{"insufficient funds", CodeNotEnoughFunds},
	{core.ErrTipAboveFeeCap.Error(), CodeMaxPriorityFeeAboveMaxFee},
	{core.ErrFeeCapTooLow.Error(), CodeMaxFeeBelowBaseFee},
	{core.ErrIntrinsicGas.Error(), CodeOutOfGas},
	{vm.ErrOutOfGas.Error(), CodeOutOfGas},
	{vm.ErrExecutionReverted.Error(), CodeCallReverted},
}

// Error is the tagged form of a raw error.
type Error struct {
	Kind    Kind
	Code    Code
	Context string

	// StatusCode and Body are set for KindHTTP.
	StatusCode int
	Body       string

	// Err is the raw error.
	Err error
}

func (e *Error) Error() string {
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message renders the error for display. Rejections read
// "<code> - user rejected transaction", everything else "<code> - <context>".
func (e *Error) Message() string {
	if e.Kind == KindRejected {
		return fmt.Sprintf("%s - user rejected transaction", e.Code)
	}

	return fmt.Sprintf("%s - %s", e.Code, e.Context)
}

// Parse classifies err. It returns nil for a nil error and err itself when it
// already is an *Error.
func Parse(err error) *Error {
	if err == nil {
		return nil
	}

	var parsed *Error
	if errors.As(err, &parsed) {
		return parsed
	}

	msg := err.Error()

	var statusErr *httptransport.StatusError
	if errors.As(err, &statusErr) {
		return &Error{
			Kind:       KindHTTP,
			Code:       CodeUnknown,
			Context:    msg,
			StatusCode: statusErr.StatusCode,
			Body:       statusErr.Body,
			Err:        err,
		}
	}

	if isRejection(err, msg) {
		return &Error{
			Kind:    KindRejected,
			Code:    CodeRejectedTransaction,
			Context: msg,
			Err:     err,
		}
	}

	lower := strings.ToLower(msg)
	for _, known := range knownErrors {
		if !strings.Contains(lower, known.text) {
			continue
		}

		context := msg
		if known.code == CodeCallReverted {
			context = revertReason(err, msg)
		}

		return &Error{
			Kind:    KindParsed,
			Code:    known.code,
			Context: context,
			Err:     err,
		}
	}

	return &Error{
		Kind:    KindUnknown,
		Code:    CodeUnknown,
		Context: msg,
		Err:     err,
	}
}

// Message is shorthand for Parse(err).Message(). It returns "" for nil.
func Message(err error) string {
	parsed := Parse(err)
	if parsed == nil {
		return ""
	}

	return parsed.Message()
}

func isRejection(err error, msg string) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return true
	}

	// A contract may revert with text that reads like a wallet rejection.
	lower := strings.ToLower(msg)
	if strings.Contains(lower, vm.ErrExecutionReverted.Error()) {
		return false
	}

	for _, phrase := range rejectionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return false
}

// revertReason extracts the reason of a reverted call, preferring the ABI
// encoded Error(string) payload of the JSON-RPC error data and falling back to
// the text after "execution reverted: ".
func revertReason(err error, msg string) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason
				}
			}
		}
	}

	prefix := vm.ErrExecutionReverted.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}

	return msg
}
