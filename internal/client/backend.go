package client

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/structs"
	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/api"
	"github.com/pitchlucy/lucy/pkg/errorx"
	"github.com/pitchlucy/lucy/pkg/xcontext"
)

const (
	pathGetPrice       = "/api/get-price"
	pathChat           = "/api/chat"
	pathWallet         = "/api/wallet"
	pathLeaderboard    = "/api/leaderboard"
	pathStats          = "/api/stats"
	pathScore          = "/api/score"
	pathTreasury       = "/api/treasury"
	pathPaginatedChat  = "/api/paginated-chat"
	pathWinningPrompts = "/api/paginated-winning-prompts"
	pathPortfolio      = "/api/paginated-portfolio"
	pathGetTokenName   = "/api/get-token-name"
)

// BackendCaller wraps every /api endpoint of the game backend.
type BackendCaller interface {
	GetPrice(ctx context.Context) (*model.PriceQuote, error)
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
	GetWallet(ctx context.Context) (*model.GetWalletResponse, error)
	GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	GetStats(ctx context.Context) (*model.Stats, error)
	GetScore(ctx context.Context, userAddress string) (*model.GetScoreResponse, error)
	GetTreasury(ctx context.Context) (*model.GetTreasuryResponse, error)
	GetChatPage(ctx context.Context, req model.GetChatPageRequest) (*model.ChatPage, error)
	GetWinningPrompts(ctx context.Context, req model.GetChatPageRequest) (*model.ChatPage, error)
	GetPortfolio(ctx context.Context, limit int) ([]model.PortfolioSnapshot, error)
	GetTokenName(ctx context.Context, address string, chainID int64) (string, error)
}

type backendCaller struct {
	apiGenerator api.Generator
}

func NewBackendCaller(apiGenerator api.Generator) *backendCaller {
	return &backendCaller{apiGenerator: apiGenerator}
}

func (c *backendCaller) GetPrice(ctx context.Context) (*model.PriceQuote, error) {
	resp := model.GetPriceResponse{}
	if err := c.do(ctx, pathGetPrice, func(ctx context.Context, client api.Client) (*api.Response, error) {
		return client.GET(ctx, api.NoCache())
	}, &resp); err != nil {
		return nil, err
	}

	price, ok := new(big.Int).SetString(resp.Price, 0)
	if !ok {
		return nil, errorx.New(errorx.BadResponse, "Invalid price %q", resp.Price)
	}

	nonce, ok := new(big.Int).SetString(resp.Nonce, 0)
	if !ok {
		return nil, errorx.New(errorx.BadResponse, "Invalid nonce %q", resp.Nonce)
	}

	signature, err := hexutil.Decode(resp.Signature)
	if err != nil {
		return nil, errorx.Wrap(errorx.BadResponse, err, "Invalid quote signature")
	}

	return &model.PriceQuote{GamePrice: price, Nonce: nonce, Signature: signature}, nil
}

func (c *backendCaller) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	resp := model.ChatResponse{}
	if err := c.do(ctx, pathChat, func(ctx context.Context, client api.Client) (*api.Response, error) {
		return client.Body(api.JSON(structs.Map(req))).POST(ctx)
	}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *backendCaller) GetWallet(ctx context.Context) (*model.GetWalletResponse, error) {
	resp := model.GetWalletResponse{}
	if err := c.get(ctx, pathWallet, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *backendCaller) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	resp := model.GetLeaderboardResponse{}
	if err := c.get(ctx, pathLeaderboard, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Data, nil
}

func (c *backendCaller) GetStats(ctx context.Context) (*model.Stats, error) {
	resp := model.Stats{}
	if err := c.get(ctx, pathStats, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *backendCaller) GetScore(ctx context.Context, userAddress string) (*model.GetScoreResponse, error) {
	resp := model.GetScoreResponse{}
	body := api.JSON(structs.Map(model.GetScoreRequest{UserAddress: userAddress}))
	if err := c.do(ctx, pathScore, func(ctx context.Context, client api.Client) (*api.Response, error) {
		return client.Body(body).POST(ctx)
	}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *backendCaller) GetTreasury(ctx context.Context) (*model.GetTreasuryResponse, error) {
	resp := model.GetTreasuryResponse{}
	if err := c.get(ctx, pathTreasury, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *backendCaller) GetChatPage(
	ctx context.Context, req model.GetChatPageRequest,
) (*model.ChatPage, error) {
	return c.getChatPage(ctx, pathPaginatedChat, req)
}

func (c *backendCaller) GetWinningPrompts(
	ctx context.Context, req model.GetChatPageRequest,
) (*model.ChatPage, error) {
	return c.getChatPage(ctx, pathWinningPrompts, req)
}

func (c *backendCaller) getChatPage(
	ctx context.Context, path string, req model.GetChatPageRequest,
) (*model.ChatPage, error) {
	query := api.Parameter{"limit": strconv.Itoa(req.Limit)}
	if req.Cursor != "" {
		query["cursor"] = req.Cursor
	}
	if req.UserAddress != "" {
		query["userAddress"] = req.UserAddress
	}

	resp := model.ChatPage{}
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *backendCaller) GetPortfolio(ctx context.Context, limit int) ([]model.PortfolioSnapshot, error) {
	resp := []model.PortfolioSnapshot{}
	if err := c.get(ctx, pathPortfolio, api.Parameter{"limit": strconv.Itoa(limit)}, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *backendCaller) GetTokenName(ctx context.Context, address string, chainID int64) (string, error) {
	resp := model.GetTokenNameResponse{}
	body := api.JSON(structs.Map(model.GetTokenNameRequest{Address: address, ChainID: chainID}))
	if err := c.do(ctx, pathGetTokenName, func(ctx context.Context, client api.Client) (*api.Response, error) {
		return client.Body(body).POST(ctx)
	}, &resp); err != nil {
		return "", err
	}

	return resp.Name, nil
}

func (c *backendCaller) get(ctx context.Context, path string, query api.Parameter, v any) error {
	return c.do(ctx, path, func(ctx context.Context, client api.Client) (*api.Response, error) {
		if query != nil {
			client = client.Query(query)
		}
		return client.GET(ctx)
	}, v)
}

// do runs one request under the configured timeout, rejects non-2xx answers and decodes the
// body into v.
func (c *backendCaller) do(
	ctx context.Context,
	path string,
	send func(context.Context, api.Client) (*api.Response, error),
	v any,
) error {
	if timeout := xcontext.Configs(ctx).Backend.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := send(ctx, c.apiGenerator.New(path))
	common.PromHistograms[common.BackendRequestDurationSeconds].
		WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		common.PromCounters[common.BackendRequestTotal].WithLabelValues(path, "error").Inc()
		xcontext.Logger(ctx).Errorf("Cannot call %s: %v", path, err)
		return errorx.Wrap(errorx.Unavailable, err, "Cannot reach the game server")
	}

	common.PromCounters[common.BackendRequestTotal].WithLabelValues(path, strconv.Itoa(resp.Code)).Inc()
	if !resp.OK() {
		xcontext.Logger(ctx).Errorf("Got status %d from %s: %s", resp.Code, path, string(resp.RawBody))
		return errorx.New(errorx.Backend, "Game server answered with status %d", resp.Code)
	}

	if err := resp.Decode(v); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode response of %s: %v", path, err)
		return errorx.Wrap(errorx.BadResponse, err, "Invalid response from the game server")
	}

	return nil
}
