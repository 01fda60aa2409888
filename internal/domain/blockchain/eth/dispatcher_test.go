package eth

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/mocks"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTx() *ethtypes.Transaction {
	return ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(10),
		Gas:      21000,
		To:       &common.Address{},
		Value:    big.NewInt(0),
	})
}

func TestEthDispatcher_Dispatch(t *testing.T) {
	from := common.HexToAddress("0x970E8128AB834E8EAC17Ab8E3812F010678CF791")

	testCases := []struct {
		name      string
		balance   *big.Int
		sendErr   error
		noSend    bool
		wantOK    bool
		wantError types.DispatchError
	}{
		{
			name:    "success",
			balance: big.NewInt(1_000_000),
			wantOK:  true,
		},
		{
			name:    "already known counts as success",
			balance: big.NewInt(1_000_000),
			sendErr: errors.New("already known"),
			wantOK:  true,
		},
		{
			name:      "rejected by node",
			balance:   big.NewInt(1_000_000),
			sendErr:   errors.New("nonce too low"),
			wantError: types.ErrSubmitTx,
		},
		{
			name:      "not enough gas money",
			balance:   big.NewInt(1),
			noSend:    true,
			wantError: types.ErrNotEnoughBalance,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			tx := newTestTx()

			client := &mocks.EthClient{}
			client.On("BalanceAt", mock.Anything, from, (*big.Int)(nil)).Return(tt.balance, nil)
			if !tt.noSend {
				client.On("SendTransaction", mock.Anything, tx).Return(tt.sendErr)
			}

			result := NewEthDispatcher(client).Dispatch(ctx, &types.DispatchedTxRequest{
				ChainID: testutil.HomeChainID,
				From:    from,
				Tx:      tx,
			})

			require.Equal(t, tt.wantOK, result.Success)
			require.Equal(t, tt.wantError, result.Err)
			require.Equal(t, tx.Hash(), result.TxHash)
			if tt.noSend {
				client.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
			}
		})
	}
}
