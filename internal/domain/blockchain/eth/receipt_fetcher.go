package eth

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/pkg/xcontext"
)

const (
	// MaxReceiptRetry bounds consecutive rpc errors; a receipt that is simply not mined yet does
	// not count.
	MaxReceiptRetry = 5
)

type ReceiptFetcher struct {
	client    EthClient
	retryTime time.Duration
	timeout   time.Duration
}

func NewReceiptFetcher(client EthClient, retryTime, timeout time.Duration) *ReceiptFetcher {
	return &ReceiptFetcher{client: client, retryTime: retryTime, timeout: timeout}
}

// Wait blocks until the transaction is mined, the timeout elapses or ctx is done.
func (rf *ReceiptFetcher) Wait(ctx context.Context, hash common.Hash) (types.TrackUpdate, error) {
	update := types.TrackUpdate{ChainID: rf.client.ChainID(), Hash: hash, Result: types.TrackResultTimeout}

	deadline := time.NewTimer(rf.timeout)
	defer deadline.Stop()

	retry := 0
	for {
		rpcCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		receipt, err := rf.client.TransactionReceipt(rpcCtx, hash)
		cancel()

		switch {
		case err == nil && receipt != nil:
			update.BlockHeight = receipt.BlockNumber.Int64()
			update.GasUsed = receipt.GasUsed
			if receipt.Status == ethtypes.ReceiptStatusSuccessful {
				update.Result = types.TrackResultConfirmed
			} else {
				update.Result = types.TrackResultReverted
			}
			return update, nil

		case err != nil && !errors.Is(err, ethereum.NotFound):
			if ctx.Err() != nil {
				return update, ctx.Err()
			}

			xcontext.Logger(ctx).Warnf("Cannot get receipt for tx hash %s: %v", hash.String(), err)
			retry++
			if retry > MaxReceiptRetry {
				xcontext.Logger(ctx).Errorf("Cannot get receipt for tx with hash %s on chain %d",
					hash.String(), update.ChainID)
				return update, err
			}

		default:
			retry = 0
		}

		select {
		case <-ctx.Done():
			return update, ctx.Err()
		case <-deadline.C:
			return update, nil
		case <-time.After(rf.retryTime):
		}
	}
}
