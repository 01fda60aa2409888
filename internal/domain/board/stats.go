package board

import (
	"context"
	"strings"

	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/shopspring/decimal"
)

const winnersCount = 3

// NewBountyWidget shows the prize pool with two decimals.
func NewBountyWidget(backend client.BackendCaller) *Widget[string] {
	return NewWidget("bounty", func(ctx context.Context) (string, error) {
		resp, err := backend.GetWallet(ctx)
		if err != nil {
			return "", err
		}

		return FormatBounty(resp.Bounty), nil
	})
}

func FormatBounty(bounty string) string {
	value, err := decimal.NewFromString(strings.TrimSpace(bounty))
	if err != nil {
		return decimal.Zero.StringFixed(2)
	}

	return value.StringFixed(2)
}

// NewLeaderboardWidget keeps the server order.
func NewLeaderboardWidget(backend client.BackendCaller) *Widget[[]model.LeaderboardEntry] {
	return NewWidget("leaderboard", backend.GetLeaderboard)
}

// Winners is the podium of a leaderboard.
func Winners(entries []model.LeaderboardEntry) []model.LeaderboardEntry {
	if len(entries) > winnersCount {
		return entries[:winnersCount]
	}

	return entries
}

func NewMetricsWidget(backend client.BackendCaller) *Widget[model.Stats] {
	return NewWidget("metrics", func(ctx context.Context) (model.Stats, error) {
		stats, err := backend.GetStats(ctx)
		if err != nil {
			return model.Stats{}, err
		}

		return *stats, nil
	})
}

// NewScoreWidget reads the score of userAddress. Without a wallet it never calls the backend
// and stays at zero.
func NewScoreWidget(backend client.BackendCaller, userAddress string) *Widget[float64] {
	w := NewWidget("score", func(ctx context.Context) (float64, error) {
		if userAddress == "" {
			return 0, nil
		}

		resp, err := backend.GetScore(ctx, userAddress)
		if err != nil {
			return 0, err
		}

		return resp.Score, nil
	})

	return w.withCacheKey(func() string { return common.RedisKeyWidget("score", strings.ToLower(userAddress)) })
}

// ShortAddress renders 0x1234...abcdef style addresses.
func ShortAddress(address string, head, tail int) string {
	if len(address) <= head+tail {
		return address
	}

	return address[:head] + "..." + address[len(address)-tail:]
}
