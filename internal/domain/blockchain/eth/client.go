package eth

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/contract/aic"
	"github.com/pitchlucy/lucy/contract/erc20"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"golang.org/x/exp/slices"
)

const (
	RpcTimeOut      = time.Second * 5
	MaxShuffleTimes = 20

	// Nodes whose height is further than this from the median are considered lagging.
	MaxHeightDistance = 5
)

// A wrapper around eth.client so that we can mock in tests.
type EthClient interface {
	ChainID() int64

	BlockNumber(ctx context.Context) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error

	GetTokenInfo(ctx context.Context, token common.Address) (types.TokenInfo, error)
	ERC20BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
	ERC20Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	Whitelist(ctx context.Context, game, account common.Address) (*big.Int, error)

	GetSignedApproveTx(
		ctx context.Context, key *ecdsa.PrivateKey, token, spender common.Address, amount *big.Int,
	) (*ethtypes.Transaction, error)
	GetSignedPayGameTx(
		ctx context.Context, key *ecdsa.PrivateKey, game common.Address, price, nonce *big.Int, signature []byte,
	) (*ethtypes.Transaction, error)

	Close()
}

// Default implementation of ETH client. Since eth RPC often unstable, this client maintains a list
// of different RPC to connect to and uses the ones that is stable.
type defaultEthClient struct {
	chain           string
	chainID         *big.Int
	configuredRpcs  []string
	useExternalRpcs bool

	clients   []*ethclient.Client
	healthies []bool
	rpcs      []string

	mutex sync.RWMutex
}

func NewEthClient(chain config.ChainConfig) *defaultEthClient {
	return &defaultEthClient{
		chain:           chain.Name,
		chainID:         big.NewInt(chain.ChainID),
		configuredRpcs:  chain.Rpcs,
		useExternalRpcs: chain.UseExternalRPC,
	}
}

func (c *defaultEthClient) ChainID() int64 {
	return c.chainID.Int64()
}

func (c *defaultEthClient) updateRpcs(ctx context.Context) {
	rpcs := slices.Clone(c.configuredRpcs)

	if c.useExternalRpcs {
		externals, err := ethutil.ExternalRPCs(ctx, xcontext.HTTPClient(ctx), c.chainID.Int64())
		if err != nil {
			xcontext.Logger(ctx).Warnf("Failed to get external rpc info of chain %s: %v", c.chain, err)
		} else {
			rpcs = append(rpcs, externals...)
		}
	}

	c.mutex.RLock()
	oldClients := c.clients
	c.mutex.RUnlock()

	rpcs, clients, healthies := c.getRpcsHealthiness(ctx, rpcs)

	// Close all the old clients
	c.mutex.Lock()
	for _, client := range oldClients {
		client.Close()
	}

	c.rpcs, c.clients, c.healthies = rpcs, clients, healthies
	c.mutex.Unlock()
}

func (c *defaultEthClient) getRpcsHealthiness(
	ctx context.Context, allRpcs []string,
) ([]string, []*ethclient.Client, []bool) {
	clients := make([]*ethclient.Client, 0)
	rpcs := make([]string, 0)
	healthies := make([]bool, 0)

	type healthyNode struct {
		client *ethclient.Client
		rpc    string
		height int64
	}

	nodes := make([]*healthyNode, 0)
	for _, rpc := range allRpcs {
		client, err := ethclient.DialContext(ctx, rpc)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot dial %s: %v", rpc, err)
			continue
		}

		headerCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		header, err := client.HeaderByNumber(headerCtx, nil)
		cancel()

		if err != nil || header.Number == nil {
			xcontext.Logger(ctx).Debugf("Rpc %s of chain %s is not healthy: %v", rpc, c.chain, err)
			client.Close()
			continue
		}

		nodes = append(nodes, &healthyNode{client: client, rpc: rpc, height: header.Number.Int64()})
	}

	if len(nodes) == 0 {
		return rpcs, clients, healthies
	}

	// Sorts all nodes by height
	slices.SortStableFunc(nodes, func(a, b *healthyNode) bool {
		return a.height > b.height
	})

	// Only select some nodes within a certain height from the median
	height := nodes[len(nodes)/2].height
	for _, node := range nodes {
		distance := node.height - height
		if distance < 0 {
			distance = -distance
		}

		if distance < MaxHeightDistance {
			rpcs = append(rpcs, node.rpc)
			clients = append(clients, node.client)
			healthies = append(healthies, true)
		} else {
			node.client.Close()
		}
	}

	xcontext.Logger(ctx).Infof("Healthy rpcs for chain %s: %s", c.chain, rpcs)

	return rpcs, clients, healthies
}

func (c *defaultEthClient) shuffle() ([]*ethclient.Client, []bool, []string) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	n := len(c.clients)
	if n == 0 {
		return nil, nil, nil
	}

	clients := make([]*ethclient.Client, n)
	healthy := make([]bool, n)
	rpcs := make([]string, n)

	copy(clients, c.clients)
	copy(healthy, c.healthies)
	copy(rpcs, c.rpcs)

	for i := 0; i < MaxShuffleTimes; i++ {
		x := rand.Intn(n)
		y := rand.Intn(n)

		clients[x], clients[y] = clients[y], clients[x]
		healthy[x], healthy[y] = healthy[y], healthy[x]
		rpcs[x], rpcs[y] = rpcs[y], rpcs[x]
	}

	return clients, healthy, rpcs
}

func (c *defaultEthClient) healthyClients(ctx context.Context) ([]*ethclient.Client, []string) {
	c.mutex.RLock()
	loaded := len(c.clients) > 0
	c.mutex.RUnlock()

	if !loaded {
		c.updateRpcs(ctx)
	}

	// Shuffle rpcs so that we will use different healthy rpc
	clients, healthies, rpcs := c.shuffle()
	healthyClients := make([]*ethclient.Client, 0, len(clients))
	healthyRpcs := make([]string, 0, len(clients))
	for i, healthy := range healthies {
		if healthy {
			healthyClients = append(healthyClients, clients[i])
			healthyRpcs = append(healthyRpcs, rpcs[i])
		}
	}

	return healthyClients, healthyRpcs
}

// execute runs f against the healthy rpcs in random order until one of them succeeds.
func (c *defaultEthClient) execute(
	ctx context.Context, f func(client *ethclient.Client, rpc string) (any, error),
) (any, error) {
	clients, rpcs := c.healthyClients(ctx)
	if len(clients) == 0 {
		return nil, fmt.Errorf("no healthy RPC for chain %s", c.chain)
	}

	var lastErr error
	for i, client := range clients {
		ret, err := f(client, rpcs[i])
		if err == nil {
			return ret, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		xcontext.Logger(ctx).Debugf("Rpc %s failed: %v", rpcs[i], err)
		lastErr = err
	}

	return nil, lastErr
}

func (c *defaultEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	num, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.BlockNumber(ctx)
	})

	if err != nil {
		return 0, err
	}

	return num.(uint64), nil
}

func (c *defaultEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	receipt, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.TransactionReceipt(ctx, txHash)
	})

	if err != nil {
		return nil, err
	}

	return receipt.(*ethtypes.Receipt), nil
}

func (c *defaultEthClient) BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error) {
	balance, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return client.BalanceAt(ctx, account, block)
	})

	if err != nil {
		return nil, err
	}

	return balance.(*big.Int), nil
}

func (c *defaultEthClient) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	_, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		return nil, client.SendTransaction(ctx, tx)
	})

	return err
}

func (c *defaultEthClient) GetTokenInfo(ctx context.Context, token common.Address) (types.TokenInfo, error) {
	info, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20Caller(token, client)
		if err != nil {
			return nil, err
		}

		opts := &bind.CallOpts{Context: ctx}
		symbol, err := tokenInstance.Symbol(opts)
		if err != nil {
			return nil, err
		}

		decimals, err := tokenInstance.Decimals(opts)
		if err != nil {
			return nil, err
		}

		name, err := tokenInstance.Name(opts)
		if err != nil {
			return nil, err
		}

		return types.TokenInfo{Name: name, Symbol: symbol, Decimals: int(decimals)}, nil
	})

	if err != nil {
		return types.TokenInfo{}, err
	}

	return info.(types.TokenInfo), nil
}

func (c *defaultEthClient) ERC20BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	balance, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20Caller(token, client)
		if err != nil {
			return nil, err
		}

		return tokenInstance.BalanceOf(&bind.CallOpts{Context: ctx}, account)
	})

	if err != nil {
		return nil, err
	}

	return balance.(*big.Int), nil
}

func (c *defaultEthClient) ERC20Allowance(
	ctx context.Context, token, owner, spender common.Address,
) (*big.Int, error) {
	allowance, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20Caller(token, client)
		if err != nil {
			return nil, err
		}

		return tokenInstance.Allowance(&bind.CallOpts{Context: ctx}, owner, spender)
	})

	if err != nil {
		return nil, err
	}

	return allowance.(*big.Int), nil
}

func (c *defaultEthClient) Whitelist(ctx context.Context, game, account common.Address) (*big.Int, error) {
	value, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		gameInstance, err := aic.NewAicCaller(game, client)
		if err != nil {
			return nil, err
		}

		return gameInstance.Whitelist(&bind.CallOpts{Context: ctx}, account)
	})

	if err != nil {
		return nil, err
	}

	return value.(*big.Int), nil
}

func (c *defaultEthClient) GetSignedApproveTx(
	ctx context.Context, key *ecdsa.PrivateKey, token, spender common.Address, amount *big.Int,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		tokenInstance, err := erc20.NewErc20(token, client)
		if err != nil {
			return nil, err
		}

		return tokenInstance.Approve(c.TransactionOpts(ctx, key, common.Big0), spender, amount)
	})

	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

func (c *defaultEthClient) GetSignedPayGameTx(
	ctx context.Context, key *ecdsa.PrivateKey, game common.Address, price, nonce *big.Int, signature []byte,
) (*ethtypes.Transaction, error) {
	signedTx, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		gameInstance, err := aic.NewAic(game, client)
		if err != nil {
			return nil, err
		}

		return gameInstance.PayGame(c.TransactionOpts(ctx, key, common.Big0), price, nonce, signature)
	})

	if err != nil {
		return nil, err
	}

	return signedTx.(*ethtypes.Transaction), nil
}

// TransactionOpts signs without sending; the dispatcher submits the transaction. The London
// signer is needed because bind builds dynamic fee transactions on chains with a base fee.
func (c *defaultEthClient) TransactionOpts(
	ctx context.Context, fromPrivateKey *ecdsa.PrivateKey, value *big.Int,
) *bind.TransactOpts {
	signer := ethtypes.LatestSignerForChainID(c.chainID)
	from := crypto.PubkeyToAddress(fromPrivateKey.PublicKey)
	return &bind.TransactOpts{
		From: from,
		Signer: func(a common.Address, t *ethtypes.Transaction) (*ethtypes.Transaction, error) {
			if a != from {
				return nil, errors.New("not authorized to sign this account")
			}

			return ethtypes.SignTx(t, signer, fromPrivateKey)
		},
		Value:   value,
		Context: ctx,
		NoSend:  true,
	}
}

func (c *defaultEthClient) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, client := range c.clients {
		client.Close()
	}
	c.clients, c.healthies, c.rpcs = nil, nil, nil
}
