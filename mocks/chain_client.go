package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pitchlucy/lucy/internal/domain/blockchain/types"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/stretchr/testify/mock"
)

type ChainClient struct {
	mock.Mock
}

func (c *ChainClient) Connected() bool {
	args := c.Called()
	return args.Bool(0)
}

func (c *ChainClient) Address() common.Address {
	args := c.Called()
	return args.Get(0).(common.Address)
}

func (c *ChainClient) StablecoinBalance(arg1 context.Context, arg2 int64) (*big.Int, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *ChainClient) StablecoinAllowance(arg1 context.Context, arg2 int64) (*big.Int, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *ChainClient) Whitelist(arg1 context.Context) (*big.Int, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *ChainClient) ApproveStablecoin(arg1 context.Context, arg2 int64, arg3 *big.Int) (types.TrackUpdate, error) {
	args := c.Called(arg1, arg2, arg3)
	return args.Get(0).(types.TrackUpdate), args.Error(1)
}

func (c *ChainClient) PayGame(arg1 context.Context, arg2 int64, arg3 model.PriceQuote) (types.TrackUpdate, error) {
	args := c.Called(arg1, arg2, arg3)
	return args.Get(0).(types.TrackUpdate), args.Error(1)
}

func (c *ChainClient) TokenInfo(arg1 context.Context, arg2 int64, arg3 common.Address) (types.TokenInfo, error) {
	args := c.Called(arg1, arg2, arg3)
	return args.Get(0).(types.TokenInfo), args.Error(1)
}
