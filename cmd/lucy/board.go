package main

import (
	"fmt"
	"strings"

	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/pkg/enum"
	"github.com/pitchlucy/lucy/pkg/errorx"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startBounty(*cli.Context) error {
	bounty, err := fetch(s, cached(s, board.NewBountyWidget(s.backend)))
	if err != nil {
		return err
	}

	renderBounty(s.out, bounty)
	return nil
}

func (s *srv) startLeaderboard(*cli.Context) error {
	entries, err := fetch(s, cached(s, board.NewLeaderboardWidget(s.backend)))
	if err != nil {
		return err
	}

	renderLeaderboard(s.out, entries)
	return nil
}

func (s *srv) startWinners(*cli.Context) error {
	entries, err := fetch(s, cached(s, board.NewLeaderboardWidget(s.backend)))
	if err != nil {
		return err
	}

	renderWinners(s.out, board.Winners(entries))
	return nil
}

func (s *srv) startStats(*cli.Context) error {
	stats, err := fetch(s, cached(s, board.NewMetricsWidget(s.backend)))
	if err != nil {
		return err
	}

	renderStats(s.out, stats)
	return nil
}

func (s *srv) startScore(c *cli.Context) error {
	address := c.String("address")
	if address == "" {
		var err error
		if address, err = s.walletAddress(); err != nil {
			return err
		}
	}

	if address == "" {
		return errorx.New(errorx.WalletNotReady, "Please connect your wallet first.")
	}

	if !ethutil.IsAddress(address) {
		return errorx.New(errorx.BadRequest, "Invalid address %s", address)
	}

	score, err := fetch(s, cached(s, board.NewScoreWidget(s.backend, address)))
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Score of %s: %g\n", board.ShortAddress(address, 6, 4), score)
	return nil
}

func (s *srv) startTreasury(*cli.Context) error {
	treasury, err := fetch(s, cached(s, board.NewTreasuryWidget(s.backend)))
	if err != nil {
		return err
	}

	renderTreasury(s.out, treasury)
	return nil
}

func (s *srv) startPortfolio(c *cli.Context) error {
	timeframe, err := enum.ToEnum[board.Timeframe](c.String("timeframe"))
	if err != nil {
		return errorx.New(errorx.BadRequest, "Timeframe must be one of %s",
			strings.Join(enum.Names[board.Timeframe](), ", "))
	}

	w := board.NewPortfolioWidget(s.backend)
	cached(s, w.Widget)
	if err := w.SetTimeframe(s.ctx, timeframe); err != nil {
		return err
	}

	if w.Loading() {
		if _, err := fetch(s, w.Widget); err != nil {
			return err
		}
	}

	renderPortfolio(s.out, w.Value())
	return nil
}

func (s *srv) startChat(c *cli.Context) error {
	view, err := enum.ToEnum[board.ChatView](c.String("view"))
	if err != nil {
		return errorx.New(errorx.BadRequest, "View must be one of %s",
			strings.Join(enum.Names[board.ChatView](), ", "))
	}

	var address string
	if view == board.ChatViewMine {
		if address, err = s.walletAddress(); err != nil {
			return err
		}
	}

	feed := board.NewChatFeed(s.backend, address)
	cached(s, feed.Widget)
	if err := feed.SetLimit(s.ctx, c.Int("limit")); err != nil {
		return err
	}
	if err := feed.SetView(s.ctx, view); err != nil {
		return err
	}

	if feed.Loading() {
		if _, err := fetch(s, feed.Widget); err != nil {
			return err
		}
	}

	for feed.Page() < c.Int("page") {
		ok, err := feed.Next(s.ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}

	renderChat(s.out, feed.View(), feed.Page(), feed.Value(), feed.HasNext())
	return nil
}

func (s *srv) startLastPitches(*cli.Context) error {
	pitches, err := fetch(s, cached(s, board.NewLastPitchesWidget(s.backend)))
	if err != nil {
		return err
	}

	renderLastPitches(s.out, pitches)
	return nil
}

func (s *srv) startTokens(c *cli.Context) error {
	selector := board.NewTokenSelector(xcontext.Configs(s.ctx), s.backend)

	for _, chain := range selector.Chains() {
		if id := c.Int64("chain"); id != 0 && id != chain.ChainID {
			continue
		}

		fmt.Fprintf(s.out, "%s (%d)\n", chain.Name, chain.ChainID)
		tw := newTable(s.out)
		for _, token := range chain.Tokens {
			fmt.Fprintf(tw, "  %s\t%s\n", token.Symbol, token.Address)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", board.CustomTokenSymbol, "any ERC-20 address")
		tw.Flush()
	}

	return nil
}

func (s *srv) startTokenName(c *cli.Context) error {
	address := strings.TrimSpace(c.Args().First())
	if !ethutil.IsAddress(address) {
		return errorx.New(errorx.BadRequest, "Invalid token address %q", address)
	}

	chainID := c.Int64("chain")
	if chainID == 0 {
		chainID = xcontext.Configs(s.ctx).Game.DefaultChainID
	}

	selection, err := board.NewTokenSelector(xcontext.Configs(s.ctx), s.backend).
		Select(s.ctx, chainID, board.CustomTokenSymbol, address)
	if err != nil {
		return err
	}

	if selection.TokenName == "" {
		fmt.Fprintln(s.out, "Unknown token")
		return nil
	}

	fmt.Fprintln(s.out, selection.TokenName)
	return nil
}

func (s *srv) startFAQ(c *cli.Context) error {
	section, err := enum.ToEnum[board.FAQSection](c.String("section"))
	if err != nil {
		return errorx.New(errorx.BadRequest, "Section must be one of %s",
			strings.Join(enum.Names[board.FAQSection](), ", "))
	}

	accordion := board.NewAccordion()
	accordion.SetSection(section)
	if c.Bool("all") {
		for i := range board.FAQs(section) {
			accordion.Toggle(i)
		}
	} else {
		for _, n := range c.IntSlice("open") {
			accordion.Toggle(n - 1)
		}
	}

	renderFAQ(s.out, accordion)
	return nil
}
