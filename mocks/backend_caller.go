package mocks

import (
	"context"

	"github.com/pitchlucy/lucy/internal/model"
	"github.com/stretchr/testify/mock"
)

type BackendCaller struct {
	mock.Mock
}

func (c *BackendCaller) GetPrice(arg1 context.Context) (*model.PriceQuote, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceQuote), args.Error(1)
}

func (c *BackendCaller) Chat(arg1 context.Context, arg2 model.ChatRequest) (*model.ChatResponse, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatResponse), args.Error(1)
}

func (c *BackendCaller) GetWallet(arg1 context.Context) (*model.GetWalletResponse, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GetWalletResponse), args.Error(1)
}

func (c *BackendCaller) GetLeaderboard(arg1 context.Context) ([]model.LeaderboardEntry, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func (c *BackendCaller) GetStats(arg1 context.Context) (*model.Stats, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (c *BackendCaller) GetScore(arg1 context.Context, arg2 string) (*model.GetScoreResponse, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GetScoreResponse), args.Error(1)
}

func (c *BackendCaller) GetTreasury(arg1 context.Context) (*model.GetTreasuryResponse, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GetTreasuryResponse), args.Error(1)
}

func (c *BackendCaller) GetChatPage(arg1 context.Context, arg2 model.GetChatPageRequest) (*model.ChatPage, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatPage), args.Error(1)
}

func (c *BackendCaller) GetWinningPrompts(
	arg1 context.Context, arg2 model.GetChatPageRequest,
) (*model.ChatPage, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatPage), args.Error(1)
}

func (c *BackendCaller) GetPortfolio(arg1 context.Context, arg2 int) ([]model.PortfolioSnapshot, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioSnapshot), args.Error(1)
}

func (c *BackendCaller) GetTokenName(arg1 context.Context, arg2 string, arg3 int64) (string, error) {
	args := c.Called(arg1, arg2, arg3)
	return args.String(0), args.Error(1)
}
