package mocks

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/stretchr/testify/mock"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

type EthClient struct {
	mock.Mock
}

func (c *EthClient) ChainID() int64 {
	args := c.Called()
	return args.Get(0).(int64)
}

func (c *EthClient) BlockNumber(arg1 context.Context) (uint64, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return 0, args.Error(1)
	}
	return args.Get(0).(uint64), args.Error(1)
}

func (c *EthClient) TransactionReceipt(arg1 context.Context, arg2 common.Hash) (*ethtypes.Receipt, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Receipt), args.Error(1)
}

func (c *EthClient) BalanceAt(arg1 context.Context, arg2 common.Address, arg3 *big.Int) (*big.Int, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) SendTransaction(arg1 context.Context, arg2 *ethtypes.Transaction) error {
	args := c.Called(arg1, arg2)

	return args.Error(0)
}

func (c *EthClient) GetTokenInfo(arg1 context.Context, arg2 common.Address) (types.TokenInfo, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return types.TokenInfo{}, args.Error(1)
	}
	return args.Get(0).(types.TokenInfo), args.Error(1)
}

func (c *EthClient) ERC20BalanceOf(arg1 context.Context, arg2, arg3 common.Address) (*big.Int, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) ERC20Allowance(arg1 context.Context, arg2, arg3, arg4 common.Address) (*big.Int, error) {
	args := c.Called(arg1, arg2, arg3, arg4)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) Whitelist(arg1 context.Context, arg2, arg3 common.Address) (*big.Int, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) GetSignedApproveTx(
	arg1 context.Context, arg2 *ecdsa.PrivateKey, arg3, arg4 common.Address, arg5 *big.Int,
) (*ethtypes.Transaction, error) {
	args := c.Called(arg1, arg2, arg3, arg4, arg5)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Transaction), args.Error(1)
}

func (c *EthClient) GetSignedPayGameTx(
	arg1 context.Context, arg2 *ecdsa.PrivateKey, arg3 common.Address, arg4, arg5 *big.Int, arg6 []byte,
) (*ethtypes.Transaction, error) {
	args := c.Called(arg1, arg2, arg3, arg4, arg5, arg6)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Transaction), args.Error(1)
}

func (c *EthClient) Close() {
	c.Called()
}
