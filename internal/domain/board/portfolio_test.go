package board

import (
	"testing"

	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/mocks"
	"github.com/pitchlucy/lucy/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_Timeframe_Limit(t *testing.T) {
	require.Equal(t, 24, Timeframe1D.Limit())
	require.Equal(t, 168, Timeframe7D.Limit())
	require.Equal(t, 720, Timeframe30D.Limit())
	require.Equal(t, 999, TimeframeAll.Limit())
}

func Test_BuildPortfolioHistory(t *testing.T) {
	snapshots := []model.PortfolioSnapshot{
		{
			ID:   1,
			Date: "1700000000",
			Tokens: map[string]model.ChainTokens{
				"7000": {Tokens: []model.TreasuryToken{
					{Symbol: "USDC", ValueUSD: 10},
					{Symbol: "WZETA", ValueUSD: 0.01},
				}},
			},
		},
		{
			ID:   2,
			Date: "1700003600",
			Tokens: map[string]model.ChainTokens{
				"137": {Tokens: []model.TreasuryToken{{Symbol: "WETH", ValueUSD: 4}}},
				"7000": {Tokens: []model.TreasuryToken{
					{Symbol: "USDC", ValueUSD: 12},
					{Symbol: "WZETA", ValueUSD: 3},
				}},
			},
		},
		{ID: 3, Date: "not a date"},
	}

	history := BuildPortfolioHistory(snapshots)
	require.Equal(t, []string{"11/14 22:13", "11/14 23:13", "not a date"}, history.Labels)
	require.Len(t, history.Series, 3)

	values := func(s PortfolioSeries) []any {
		out := make([]any, len(s.Values))
		for i, v := range s.Values {
			if v != nil {
				out[i] = *v
			}
		}
		return out
	}

	require.Equal(t, "USDC", history.Series[0].Symbol)
	require.Equal(t, []any{10.0, 12.0, nil}, values(history.Series[0]))

	// Chains are read in key order, so WETH on 137 comes before WZETA on 7000.
	require.Equal(t, "WETH", history.Series[1].Symbol)
	require.Equal(t, []any{nil, 4.0, nil}, values(history.Series[1]))

	require.Equal(t, "WZETA", history.Series[2].Symbol)
	require.Equal(t, []any{nil, 3.0, nil}, values(history.Series[2]))
}

func Test_PortfolioWidget_SetTimeframe(t *testing.T) {
	ctx := testutil.MockContext()
	backend := &mocks.BackendCaller{}
	backend.On("GetPortfolio", mock.Anything, 24).Return([]model.PortfolioSnapshot{}, nil).Once()
	backend.On("GetPortfolio", mock.Anything, 168).Return([]model.PortfolioSnapshot{
		{Date: "1700000000", Tokens: map[string]model.ChainTokens{
			"7000": {Tokens: []model.TreasuryToken{{Symbol: "USDC", ValueUSD: 1}}},
		}},
	}, nil).Once()

	w := NewPortfolioWidget(backend)
	require.Equal(t, Timeframe1D, w.Timeframe())
	w.Sync(ctx, false)
	require.Empty(t, w.Value().Labels)

	require.NoError(t, w.SetTimeframe(ctx, Timeframe7D))
	require.Equal(t, Timeframe7D, w.Timeframe())
	require.Equal(t, []string{"11/14 22:13"}, w.Value().Labels)

	// Same timeframe, no request.
	require.NoError(t, w.SetTimeframe(ctx, Timeframe7D))
	backend.AssertExpectations(t)
}
