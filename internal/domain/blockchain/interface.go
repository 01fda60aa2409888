package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/internal/model"
)

// This is an interface for all dispatcher that sends transactions to different blockchain.
type Dispatcher interface {
	Dispatch(ctx context.Context, request *types.DispatchedTxRequest) *types.DispatchedTxResult
}

type ReceiptWaiter interface {
	Wait(ctx context.Context, hash common.Hash) (types.TrackUpdate, error)
}

// ChainClient is everything a pitch session needs from the wallet and the chains it is on.
type ChainClient interface {
	Connected() bool
	Address() common.Address

	StablecoinBalance(ctx context.Context, chainID int64) (*big.Int, error)
	StablecoinAllowance(ctx context.Context, chainID int64) (*big.Int, error)

	// Whitelist reads the entitlement of the wallet on the home chain.
	Whitelist(ctx context.Context) (*big.Int, error)

	// ApproveStablecoin and PayGame return once the transaction is mined.
	ApproveStablecoin(ctx context.Context, chainID int64, amount *big.Int) (types.TrackUpdate, error)
	PayGame(ctx context.Context, chainID int64, quote model.PriceQuote) (types.TrackUpdate, error)

	TokenInfo(ctx context.Context, chainID int64, token common.Address) (types.TokenInfo, error)
}
