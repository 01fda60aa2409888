package eth

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/pkg/xcontext"
)

type EthDispatcher struct {
	client EthClient
}

func NewEthDispatcher(client EthClient) *EthDispatcher {
	return &EthDispatcher{client: client}
}

func (d *EthDispatcher) Dispatch(ctx context.Context, request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	tx := request.Tx

	// Check the balance to see if we have enough native token.
	balance, err := d.client.BalanceAt(ctx, request.From, nil)
	if err != nil || balance == nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance for account %s: %v", request.From, err)
		return types.NewDispatchTxError(request, types.ErrGeneric, err)
	}

	minimum := new(big.Int).Mul(tx.GasFeeCap(), new(big.Int).SetUint64(tx.Gas()))
	minimum = minimum.Add(minimum, tx.Value())
	if minimum.Cmp(balance) > 0 {
		err := fmt.Errorf("balance smaller than minimum required for this transaction, from = %s, balance = %s, minimum = %s, chain = %d",
			request.From.String(), balance.String(), minimum.String(), request.ChainID)
		xcontext.Logger(ctx).Errorf("%v", err)
		return types.NewDispatchTxError(request, types.ErrNotEnoughBalance, err)
	}

	err = d.client.SendTransaction(ctx, tx)
	if err == nil {
		xcontext.Logger(ctx).Infof("Tx is dispatched successfully for chain %d from %s txHash = %s",
			request.ChainID, request.From, tx.Hash())
		return types.NewDispatchTxSuccess(request)
	} else if strings.Contains(err.Error(), "already known") {
		// This is a tx submission duplication: one of the rpcs tried before already accepted it.
		// Ethereum does not return error code in its JSON RPC, so we have to rely on string matching.
		return types.NewDispatchTxSuccess(request)
	}

	xcontext.Logger(ctx).Errorf("Failed to dispatch tx: %v", err)
	return types.NewDispatchTxError(request, types.ErrSubmitTx, err)
}
