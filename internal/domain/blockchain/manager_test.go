package blockchain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/eth"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/mocks"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"

func newTestManager(t *testing.T, client *mocks.EthClient, withKey bool) *BlockchainManager {
	cfg := testutil.MockConfigs()

	var m *BlockchainManager
	if withKey {
		key, err := ethutil.LoadPrivateKey(testPrivateKey)
		require.NoError(t, err)
		m = NewBlockchainManager(cfg, key)
	} else {
		m = NewBlockchainManager(cfg, nil)
	}

	m.newClient = func(config.ChainConfig) eth.EthClient { return client }
	return m
}

func signedTestTx() *ethtypes.Transaction {
	return ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    3,
		GasPrice: big.NewInt(1),
		Gas:      100000,
		To:       &common.Address{},
		Value:    big.NewInt(0),
	})
}

func TestBlockchainManager_ReadOnly(t *testing.T) {
	client := &mocks.EthClient{}
	m := newTestManager(t, client, false)

	require.False(t, m.Connected())
	require.Equal(t, common.Address{}, m.Address())

	_, err := m.ApproveStablecoin(testutil.MockContext(), testutil.HomeChainID, big.NewInt(1))
	require.Error(t, err)
	client.AssertNotCalled(t, "GetSignedApproveTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBlockchainManager_UnsupportedChain(t *testing.T) {
	m := newTestManager(t, &mocks.EthClient{}, true)

	_, err := m.StablecoinBalance(testutil.MockContext(), 56)
	require.ErrorContains(t, err, "unsupported chain 56")
}

func TestBlockchainManager_StablecoinReads(t *testing.T) {
	client := &mocks.EthClient{}
	m := newTestManager(t, client, true)
	owner := m.Address()

	client.On("ERC20BalanceOf", mock.Anything, common.HexToAddress(testutil.OtherUSDCAddress), owner).
		Return(big.NewInt(5_000_000), nil)
	client.On("ERC20Allowance", mock.Anything, common.HexToAddress(testutil.OtherUSDCAddress), owner,
		common.HexToAddress(testutil.OtherAICAddress)).Return(big.NewInt(0), nil)
	client.On("Whitelist", mock.Anything, common.HexToAddress(testutil.HomeAICAddress), owner).
		Return(big.NewInt(1), nil)

	ctx := testutil.MockContext()
	balance, err := m.StablecoinBalance(ctx, testutil.OtherChainID)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(5_000_000), balance)

	allowance, err := m.StablecoinAllowance(ctx, testutil.OtherChainID)
	require.NoError(t, err)
	require.Zero(t, allowance.Sign())

	entitlement, err := m.Whitelist(ctx)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), entitlement)
}

func TestBlockchainManager_PayGame(t *testing.T) {
	quote := model.PriceQuote{
		GamePrice: big.NewInt(1_000_000),
		Nonce:     big.NewInt(9),
		Signature: []byte{0xaa},
	}

	testCases := []struct {
		name    string
		status  uint64
		wantErr bool
	}{
		{name: "confirmed", status: ethtypes.ReceiptStatusSuccessful},
		{name: "reverted", status: ethtypes.ReceiptStatusFailed, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			client := &mocks.EthClient{}
			m := newTestManager(t, client, true)
			tx := signedTestTx()

			client.On("ChainID").Return(testutil.HomeChainID)
			client.On("GetSignedPayGameTx", mock.Anything, mock.Anything,
				common.HexToAddress(testutil.HomeAICAddress), quote.GamePrice, quote.Nonce, quote.Signature).
				Return(tx, nil)
			client.On("BalanceAt", mock.Anything, m.Address(), (*big.Int)(nil)).Return(big.NewInt(1e18), nil)
			client.On("SendTransaction", mock.Anything, tx).Return(nil)
			client.On("TransactionReceipt", mock.Anything, tx.Hash()).Return(&ethtypes.Receipt{
				Status:      tt.status,
				BlockNumber: big.NewInt(12),
			}, nil)

			update, err := m.PayGame(testutil.MockContext(), testutil.HomeChainID, quote)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, types.TrackResultReverted, update.Result)
				return
			}

			require.NoError(t, err)
			require.Equal(t, types.TrackResultConfirmed, update.Result)
			require.Equal(t, tx.Hash(), update.Hash)
		})
	}
}

func TestBlockchainManager_ApproveNotEnoughGas(t *testing.T) {
	client := &mocks.EthClient{}
	m := newTestManager(t, client, true)
	tx := signedTestTx()

	client.On("ChainID").Return(testutil.HomeChainID)
	client.On("GetSignedApproveTx", mock.Anything, mock.Anything,
		common.HexToAddress(testutil.HomeUSDCAddress), common.HexToAddress(testutil.HomeAICAddress),
		big.NewInt(100_000_000)).Return(tx, nil)
	client.On("BalanceAt", mock.Anything, m.Address(), (*big.Int)(nil)).Return(big.NewInt(0), nil)

	_, err := m.ApproveStablecoin(testutil.MockContext(), testutil.HomeChainID, big.NewInt(100_000_000))
	require.ErrorContains(t, err, types.ErrNotEnoughBalance.String())
	client.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
}
