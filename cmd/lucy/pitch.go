package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/internal/domain/pitch"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/errorx"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

// statusPrinter writes a line per state the session enters.
type statusPrinter struct {
	out io.Writer
}

func (p statusPrinter) Transitioned(_, to pitch.State) {
	if line := to.Describe(); line != "" && !to.Terminal() {
		fmt.Fprintln(p.out, line)
	}
}

func (p statusPrinter) Failed(error) {}

func (p statusPrinter) Answered(model.AIResponse) {}

func (s *srv) startPitch(c *cli.Context) error {
	cfg := xcontext.Configs(s.ctx)

	accepted, err := termsAccepted(cfg)
	if err != nil {
		return err
	}
	if !accepted {
		return errorx.New(errorx.PermissionDenied, "Please accept the terms first with `lucy accept-terms`.")
	}

	if walletChain := c.Int64("wallet-chain"); walletChain != 0 {
		cfg.Wallet.ChainID = walletChain
		s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	}

	if err := s.loadWallet(); err != nil {
		return err
	}

	form, err := s.pitchForm(c)
	if err != nil {
		return err
	}

	session := pitch.NewSession(s.ctx, cfg, s.chain, s.backend, pitch.WithListener(statusPrinter{out: s.out}))
	defer session.Close()

	if err := session.Load(s.ctx); err != nil {
		return err
	}

	if quote := session.Quote(); quote.Available() {
		fmt.Fprintf(s.out, "Game fee: %s %s\n",
			ethutil.FormatUnits(quote.GamePrice, cfg.Game.StablecoinDecimals, 2), cfg.Game.StablecoinSymbol)
	}

	outcome, err := session.Submit(s.ctx, form)
	if outcome != nil {
		printTransactions(s.out, outcome)
	}
	if err != nil {
		return err
	}

	printVerdict(s.out, outcome.Response)
	return nil
}

func (s *srv) pitchForm(c *cli.Context) (model.PitchForm, error) {
	cfg := xcontext.Configs(s.ctx)

	chainID := c.Int64("chain")
	if chainID == 0 {
		chainID = cfg.Game.DefaultChainID
	}

	form := model.NewPitchForm(chainID)
	form.TradeType = model.TradeType(strings.ToLower(strings.TrimSpace(c.String("trade-type"))))
	form.Allocation = c.String("allocation")
	form.Pitch = strings.Join(c.Args().Slice(), " ")

	selection, err := board.NewTokenSelector(cfg, s.backend).
		Select(s.ctx, chainID, c.String("token"), c.String("custom-address"))
	if err != nil {
		return model.PitchForm{}, err
	}

	form.Token = selection.Address
	form.TokenName = selection.TokenName
	return form, nil
}

func printTransactions(w io.Writer, outcome *pitch.Outcome) {
	if outcome.ApproveTx != (common.Hash{}) {
		fmt.Fprintf(w, "Approve transaction: %s\n", outcome.ApproveTx.Hex())
	}

	if outcome.PayTx != (common.Hash{}) {
		fmt.Fprintf(w, "Payment transaction: %s\n", outcome.PayTx.Hex())
	}
}

func printVerdict(w io.Writer, resp *model.AIResponse) {
	if resp == nil {
		return
	}

	fmt.Fprintf(w, "\nLucy: %s\n\n", resp.AIResponseText)
	if resp.Success {
		fmt.Fprintln(w, "Lucy is convinced, you won this round!")
	} else {
		fmt.Fprintln(w, "Lucy is not convinced this time.")
	}
}
