package ethereum

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gabapcia/txprogress/internal/pkg/logger"
	"github.com/gabapcia/txprogress/internal/txprogress"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ReceiptResponse is the subset of a transaction receipt returned by
// eth_getTransactionReceipt that the waiter needs.
type ReceiptResponse struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockHash       common.Hash    `json:"blockHash"`
	BlockNumber     hexutil.Uint64 `json:"blockNumber"`
	Status          hexutil.Uint64 `json:"status"`
	GasUsed         hexutil.Uint64 `json:"gasUsed"`
}

func (r ReceiptResponse) toReceipt() txprogress.Receipt {
	return txprogress.Receipt{
		TxHash:      r.TransactionHash.Hex(),
		BlockHash:   r.BlockHash.Hex(),
		BlockNumber: uint64(r.BlockNumber),
		Status:      uint64(r.Status),
		GasUsed:     uint64(r.GasUsed),
	}
}

// getLatestBlockNumber fetches the latest block number from the Ethereum node.
func (c *client) getLatestBlockNumber(ctx context.Context) (uint64, error) {
	data, err := c.conn.Fetch(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var blockNumber hexutil.Uint64
	if err := json.Unmarshal(data, &blockNumber); err != nil {
		return 0, err
	}

	return uint64(blockNumber), nil
}

// getTransactionReceipt fetches the receipt of hash. It returns nil while the
// transaction is not included yet.
func (c *client) getTransactionReceipt(ctx context.Context, hash common.Hash) (*ReceiptResponse, error) {
	data, err := c.conn.Fetch(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	var receipt *ReceiptResponse
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

// isConfirmed reports whether receipt has reached the requested number of
// confirmations. Inclusion counts as the first one.
func (c *client) isConfirmed(ctx context.Context, receipt *ReceiptResponse, confirmations uint64) (bool, error) {
	if confirmations <= 1 {
		return true, nil
	}

	latest, err := c.getLatestBlockNumber(ctx)
	if err != nil {
		return false, err
	}

	if latest < uint64(receipt.BlockNumber) {
		return false, nil
	}

	return latest-uint64(receipt.BlockNumber)+1 >= confirmations, nil
}

// poll performs a single lookup. It returns a nil receipt when the
// transaction is not included or not confirmed yet.
func (c *client) poll(ctx context.Context, hash common.Hash, confirmations uint64) (*ReceiptResponse, error) {
	receipt, err := c.getTransactionReceipt(ctx, hash)
	if err != nil || receipt == nil {
		return nil, err
	}

	confirmed, err := c.isConfirmed(ctx, receipt, confirmations)
	if err != nil || !confirmed {
		return nil, err
	}

	return receipt, nil
}

// WaitForTransactionReceipt implements the txprogress.ReceiptWaiter interface.
// It asks the node for the receipt right away and then every polling
// interval, until the transaction has the requested confirmations, the node
// returns an error or ctx is done.
//
// A reverted transaction (status 0) still has a receipt and is returned as is.
func (c *client) WaitForTransactionReceipt(ctx context.Context, req txprogress.ReceiptRequest) (txprogress.Receipt, error) {
	hash := common.HexToHash(req.Hash)

	for {
		receipt, err := c.poll(ctx, hash, req.Confirmations)
		if err != nil {
			return txprogress.Receipt{}, err
		}

		if receipt != nil {
			if receipt.Status == 0 {
				logger.Warn(ctx, "transaction reverted",
					"tx.hash", hash.Hex(),
					"block.number", uint64(receipt.BlockNumber),
				)
			}

			return receipt.toReceipt(), nil
		}

		select {
		case <-ctx.Done():
			return txprogress.Receipt{}, ctx.Err()
		case <-time.After(c.pollingInterval):
		}
	}
}
