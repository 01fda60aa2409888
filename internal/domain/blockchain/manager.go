package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/eth"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

// BlockchainManager holds one eth client per configured chain, created on first use, and the
// wallet key used to sign transactions. A manager without a key can only read.
type BlockchainManager struct {
	cfg        config.Configs
	privateKey *ecdsa.PrivateKey

	ethClients *xsync.MapOf[string, eth.EthClient]
	newClient  func(config.ChainConfig) eth.EthClient
}

func NewBlockchainManager(cfg config.Configs, privateKey *ecdsa.PrivateKey) *BlockchainManager {
	return &BlockchainManager{
		cfg:        cfg,
		privateKey: privateKey,
		ethClients: xsync.NewMapOf[eth.EthClient](),
		newClient: func(chain config.ChainConfig) eth.EthClient {
			return eth.NewEthClient(chain)
		},
	}
}

func (m *BlockchainManager) Connected() bool {
	return m.privateKey != nil
}

func (m *BlockchainManager) Address() ethcommon.Address {
	if m.privateKey == nil {
		return ethcommon.Address{}
	}

	return ethutil.Address(m.privateKey)
}

func (m *BlockchainManager) StablecoinBalance(ctx context.Context, chainID int64) (*big.Int, error) {
	chain, client, err := m.client(chainID)
	if err != nil {
		return nil, err
	}

	return client.ERC20BalanceOf(ctx, ethcommon.HexToAddress(chain.USDCAddress), m.Address())
}

func (m *BlockchainManager) StablecoinAllowance(ctx context.Context, chainID int64) (*big.Int, error) {
	chain, client, err := m.client(chainID)
	if err != nil {
		return nil, err
	}

	if chain.AICAddress == "" {
		return nil, fmt.Errorf("no game contract on chain %s", chain.Name)
	}

	return client.ERC20Allowance(ctx,
		ethcommon.HexToAddress(chain.USDCAddress), m.Address(), ethcommon.HexToAddress(chain.AICAddress))
}

func (m *BlockchainManager) Whitelist(ctx context.Context) (*big.Int, error) {
	chain, client, err := m.client(m.cfg.Game.HomeChainID)
	if err != nil {
		return nil, err
	}

	return client.Whitelist(ctx, ethcommon.HexToAddress(chain.AICAddress), m.Address())
}

func (m *BlockchainManager) TokenInfo(
	ctx context.Context, chainID int64, token ethcommon.Address,
) (types.TokenInfo, error) {
	_, client, err := m.client(chainID)
	if err != nil {
		return types.TokenInfo{}, err
	}

	return client.GetTokenInfo(ctx, token)
}

func (m *BlockchainManager) ApproveStablecoin(
	ctx context.Context, chainID int64, amount *big.Int,
) (types.TrackUpdate, error) {
	chain, client, err := m.signingClient(chainID)
	if err != nil {
		return types.TrackUpdate{}, err
	}

	tx, err := client.GetSignedApproveTx(ctx, m.privateKey,
		ethcommon.HexToAddress(chain.USDCAddress), ethcommon.HexToAddress(chain.AICAddress), amount)
	if err != nil {
		common.PromCounters[common.BlockchainTransactionFailure].WithLabelValues("approve").Inc()
		return types.TrackUpdate{}, err
	}

	return m.dispatchAndWait(ctx, "approve", client, tx)
}

func (m *BlockchainManager) PayGame(
	ctx context.Context, chainID int64, quote model.PriceQuote,
) (types.TrackUpdate, error) {
	chain, client, err := m.signingClient(chainID)
	if err != nil {
		return types.TrackUpdate{}, err
	}

	tx, err := client.GetSignedPayGameTx(ctx, m.privateKey,
		ethcommon.HexToAddress(chain.AICAddress), quote.GamePrice, quote.Nonce, quote.Signature)
	if err != nil {
		common.PromCounters[common.BlockchainTransactionFailure].WithLabelValues("payGame").Inc()
		return types.TrackUpdate{}, err
	}

	return m.dispatchAndWait(ctx, "payGame", client, tx)
}

// Close releases every rpc connection opened so far.
func (m *BlockchainManager) Close() {
	m.ethClients.Range(func(_ string, client eth.EthClient) bool {
		client.Close()
		return true
	})
}

func (m *BlockchainManager) dispatchAndWait(
	ctx context.Context, method string, client eth.EthClient, tx *ethtypes.Transaction,
) (types.TrackUpdate, error) {
	counter := common.PromCounters[common.BlockchainTransactionFailure]

	var dispatcher Dispatcher = eth.NewEthDispatcher(client)
	result := dispatcher.Dispatch(ctx, &types.DispatchedTxRequest{
		ChainID: client.ChainID(),
		From:    m.Address(),
		Tx:      tx,
	})
	if result.Err != types.ErrNil {
		counter.WithLabelValues(method).Inc()
		if result.Cause != nil {
			return types.TrackUpdate{}, fmt.Errorf("%s: %w", result.Err, result.Cause)
		}
		return types.TrackUpdate{}, fmt.Errorf("%s", result.Err)
	}

	xcontext.Logger(ctx).Infof("Waiting for %s transaction %s", method, result.TxHash.Hex())

	var waiter ReceiptWaiter = eth.NewReceiptFetcher(client,
		m.cfg.Game.ReceiptPollInterval.Duration, m.cfg.Game.ReceiptTimeout.Duration)
	update, err := waiter.Wait(ctx, result.TxHash)
	if err != nil {
		counter.WithLabelValues(method).Inc()
		return update, err
	}

	switch update.Result {
	case types.TrackResultConfirmed:
		return update, nil
	case types.TrackResultReverted:
		counter.WithLabelValues(method).Inc()
		return update, fmt.Errorf("transaction %s reverted in block %d", update.Hash.Hex(), update.BlockHeight)
	default:
		counter.WithLabelValues(method).Inc()
		return update, fmt.Errorf("transaction %s was not mined in time", update.Hash.Hex())
	}
}

func (m *BlockchainManager) signingClient(chainID int64) (config.ChainConfig, eth.EthClient, error) {
	if m.privateKey == nil {
		return config.ChainConfig{}, nil, fmt.Errorf("no wallet configured")
	}

	chain, client, err := m.client(chainID)
	if err != nil {
		return chain, nil, err
	}

	if chain.AICAddress == "" {
		return chain, nil, fmt.Errorf("no game contract on chain %s", chain.Name)
	}

	return chain, client, nil
}

func (m *BlockchainManager) client(chainID int64) (config.ChainConfig, eth.EthClient, error) {
	chain, ok := m.cfg.Chain(chainID)
	if !ok {
		return config.ChainConfig{}, nil, fmt.Errorf("unsupported chain %d", chainID)
	}

	key := strconv.FormatInt(chainID, 10)
	if client, ok := m.ethClients.Load(key); ok {
		return chain, client, nil
	}

	// Clients do not dial until their first call, so losing the race costs nothing.
	client, _ := m.ethClients.LoadOrStore(key, m.newClient(chain))
	return chain, client, nil
}
