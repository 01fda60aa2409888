package types

import (
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

type DispatchError int

const (
	ErrNil DispatchError = iota // no error
	ErrGeneric
	ErrNotEnoughBalance
	ErrSubmitTx
)

func (e DispatchError) String() string {
	switch e {
	case ErrNil:
		return "no error"
	case ErrNotEnoughBalance:
		return "not enough native balance for gas"
	case ErrSubmitTx:
		return "cannot submit transaction"
	default:
		return "unknown error"
	}
}

type DispatchedTxRequest struct {
	ChainID int64
	From    common.Address
	Tx      *ethtypes.Transaction
}

type DispatchedTxResult struct {
	Success bool
	Err     DispatchError
	ChainID int64
	TxHash  common.Hash

	// Cause is the raw RPC error, surfaced to the user as is.
	Cause error
}

func NewDispatchTxError(request *DispatchedTxRequest, err DispatchError, cause error) *DispatchedTxResult {
	return &DispatchedTxResult{
		ChainID: request.ChainID,
		TxHash:  request.Tx.Hash(),
		Success: false,
		Err:     err,
		Cause:   cause,
	}
}

func NewDispatchTxSuccess(request *DispatchedTxRequest) *DispatchedTxResult {
	return &DispatchedTxResult{
		ChainID: request.ChainID,
		TxHash:  request.Tx.Hash(),
		Success: true,
		Err:     ErrNil,
	}
}
