package board

import (
	"context"
	"math"

	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/internal/model"
	"golang.org/x/exp/slices"
)

type TreasuryShare struct {
	Symbol           string
	ValueUSD         float64
	BalanceFormatted float64

	// Percent of the total value, rounded to a whole number.
	Percent float64
}

type Treasury struct {
	TotalUSD float64
	Tokens   []TreasuryShare
}

func NewTreasuryWidget(backend client.BackendCaller) *Widget[Treasury] {
	return NewWidget("treasury", func(ctx context.Context) (Treasury, error) {
		resp, err := backend.GetTreasury(ctx)
		if err != nil {
			return Treasury{}, err
		}

		return SummarizeTreasury(resp.Tokens), nil
	})
}

// SummarizeTreasury merges the tokens of every chain by symbol. The total counts every token, but
// only tokens with a positive value are listed, the most valuable first.
func SummarizeTreasury(chains map[string]model.ChainTokens) Treasury {
	// Chains are visited in key order so that merging is deterministic.
	chainIDs := make([]string, 0, len(chains))
	for id := range chains {
		chainIDs = append(chainIDs, id)
	}
	slices.Sort(chainIDs)

	var grouped []TreasuryShare
	for _, id := range chainIDs {
		for _, token := range chains[id].Tokens {
			i := slices.IndexFunc(grouped, func(s TreasuryShare) bool { return s.Symbol == token.Symbol })
			if i < 0 {
				grouped = append(grouped, TreasuryShare{
					Symbol:           token.Symbol,
					ValueUSD:         token.ValueUSD,
					BalanceFormatted: token.BalanceFormatted,
				})
				continue
			}

			grouped[i].ValueUSD += token.ValueUSD
			grouped[i].BalanceFormatted += token.BalanceFormatted
		}
	}

	treasury := Treasury{}
	for _, share := range grouped {
		treasury.TotalUSD += share.ValueUSD
	}

	for _, share := range grouped {
		if share.ValueUSD <= 0 {
			continue
		}

		if treasury.TotalUSD > 0 {
			share.Percent = math.Round(share.ValueUSD / treasury.TotalUSD * 100)
		}
		treasury.Tokens = append(treasury.Tokens, share)
	}

	slices.SortStableFunc(treasury.Tokens, func(a, b TreasuryShare) bool {
		return a.ValueUSD > b.ValueUSD
	})

	return treasury
}
