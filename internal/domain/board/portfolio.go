package board

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/internal/common"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/enum"
	"golang.org/x/exp/slices"
)

// Tokens worth this much or less are dust and left out of the history.
const dustValueUSD = 0.01

type Timeframe string

var (
	Timeframe1D  = enum.New(Timeframe("1d"), "1d")
	Timeframe7D  = enum.New(Timeframe("7d"), "7d")
	Timeframe30D = enum.New(Timeframe("30d"), "30d")
	TimeframeAll = enum.New(Timeframe("all"), "all")
)

// Limit is the number of hourly snapshots covering the timeframe.
func (t Timeframe) Limit() int {
	switch t {
	case Timeframe7D:
		return 168
	case Timeframe30D:
		return 720
	case TimeframeAll:
		return 999
	default:
		return 24
	}
}

type PortfolioSeries struct {
	Symbol string

	// Values has one entry per label; nil marks a snapshot without this token.
	Values []*float64
}

type PortfolioHistory struct {
	Labels []string
	Series []PortfolioSeries
}

type PortfolioWidget struct {
	*Widget[PortfolioHistory]

	mutex     sync.Mutex
	timeframe Timeframe
}

func NewPortfolioWidget(backend client.BackendCaller) *PortfolioWidget {
	w := &PortfolioWidget{timeframe: Timeframe1D}
	w.Widget = NewWidget("portfolio", func(ctx context.Context) (PortfolioHistory, error) {
		snapshots, err := backend.GetPortfolio(ctx, w.Timeframe().Limit())
		if err != nil {
			return PortfolioHistory{}, err
		}

		return BuildPortfolioHistory(snapshots), nil
	}).withCacheKey(func() string {
		return common.RedisKeyWidget("portfolio", string(w.Timeframe()))
	})

	return w
}

func (w *PortfolioWidget) Timeframe() Timeframe {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.timeframe
}

// SetTimeframe refetches when the timeframe changes.
func (w *PortfolioWidget) SetTimeframe(ctx context.Context, timeframe Timeframe) error {
	w.mutex.Lock()
	if w.timeframe == timeframe {
		w.mutex.Unlock()
		return nil
	}
	w.timeframe = timeframe
	w.mutex.Unlock()

	return w.Refresh(ctx)
}

// BuildPortfolioHistory turns snapshots, oldest first, into one series per token symbol.
func BuildPortfolioHistory(snapshots []model.PortfolioSnapshot) PortfolioHistory {
	history := PortfolioHistory{}
	perSnapshot := make([][]model.TreasuryToken, len(snapshots))

	for i, snapshot := range snapshots {
		history.Labels = append(history.Labels, snapshotLabel(snapshot.Date))

		for _, token := range flattenTokens(snapshot.Tokens) {
			if token.ValueUSD <= dustValueUSD {
				continue
			}

			perSnapshot[i] = append(perSnapshot[i], token)
			if slices.IndexFunc(history.Series, func(s PortfolioSeries) bool { return s.Symbol == token.Symbol }) < 0 {
				history.Series = append(history.Series, PortfolioSeries{Symbol: token.Symbol})
			}
		}
	}

	for i := range history.Series {
		series := &history.Series[i]
		series.Values = make([]*float64, len(snapshots))
		for j, tokens := range perSnapshot {
			k := slices.IndexFunc(tokens, func(t model.TreasuryToken) bool { return t.Symbol == series.Symbol })
			if k >= 0 {
				value := tokens[k].ValueUSD
				series.Values[j] = &value
			}
		}
	}

	return history
}

func flattenTokens(chains map[string]model.ChainTokens) []model.TreasuryToken {
	chainIDs := make([]string, 0, len(chains))
	for id := range chains {
		chainIDs = append(chainIDs, id)
	}
	slices.Sort(chainIDs)

	var tokens []model.TreasuryToken
	for _, id := range chainIDs {
		tokens = append(tokens, chains[id].Tokens...)
	}

	return tokens
}

// snapshotLabel renders a unix seconds date as MM/DD HH:mm in UTC.
func snapshotLabel(date string) string {
	seconds, err := strconv.ParseInt(date, 10, 64)
	if err != nil {
		return date
	}

	return time.Unix(seconds, 0).UTC().Format("01/02 15:04")
}
