package main

import (
	"strings"

	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/pkg/enum"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "lucy"
	app.Usage = "Pitch a token to Lucy, the AI fund manager"
	app.Before = s.load
	app.After = s.unload
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path of the TOML config file",
			EnvVars: []string{"LUCY_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Serve prometheus metrics on this address, e.g. :9090",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log at debug level",
		},
	}

	chainFlag := func() cli.Flag {
		return &cli.Int64Flag{
			Name:  "chain",
			Usage: "Chain id, the configured default chain when omitted",
		}
	}

	app.Commands = []*cli.Command{
		{
			Action:    s.startPitch,
			Name:      "pitch",
			Usage:     "Pay the fee and submit a pitch",
			ArgsUsage: "<pitch>",
			Category:  "Game",
			Flags: []cli.Flag{
				chainFlag(),
				&cli.Int64Flag{
					Name:  "wallet-chain",
					Usage: "Chain the wallet pays on, the home chain when omitted",
				},
				&cli.StringFlag{
					Name:  "token",
					Usage: "Symbol of a listed token, or " + board.CustomTokenSymbol,
				},
				&cli.StringFlag{
					Name:  "custom-address",
					Usage: "Token address when --token is " + board.CustomTokenSymbol,
				},
				&cli.StringFlag{
					Name:  "trade-type",
					Value: "buy",
					Usage: "buy or sell",
				},
				&cli.StringFlag{
					Name:  "allocation",
					Value: "1",
					Usage: "Share of the treasury, two decimals at most",
				},
			},
			Description: `Runs the whole flow: checks the form and balance, approves USDC when the
allowance is too low, pays the game fee and prints Lucy's verdict. Off the home chain the
verdict comes once the payment has been relayed to the home chain.`,
		},
		{
			Action:      s.startAcceptTerms,
			Name:        "accept-terms",
			Usage:       "Read and accept the terms of the game",
			Category:    "Game",
			Flags:       []cli.Flag{&cli.BoolFlag{Name: "yes", Usage: "Accept without asking"}},
			Description: `Pitching is refused until the terms are accepted once on this machine.`,
		},
		{
			Action:   s.startBounty,
			Name:     "bounty",
			Usage:    "Show the prize pool",
			Category: "Board",
		},
		{
			Action:   s.startLeaderboard,
			Name:     "leaderboard",
			Usage:    "Show the leaderboard",
			Category: "Board",
		},
		{
			Action:   s.startWinners,
			Name:     "winners",
			Usage:    "Show the podium",
			Category: "Board",
		},
		{
			Action:   s.startStats,
			Name:     "stats",
			Usage:    "Show game metrics",
			Category: "Board",
		},
		{
			Action:   s.startScore,
			Name:     "score",
			Usage:    "Show the score of a wallet",
			Category: "Board",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address", Usage: "Wallet address, the configured wallet when omitted"},
			},
		},
		{
			Action:   s.startTreasury,
			Name:     "treasury",
			Usage:    "Show the treasury split by token",
			Category: "Board",
		},
		{
			Action:   s.startPortfolio,
			Name:     "portfolio",
			Usage:    "Show the value history of the treasury",
			Category: "Board",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "timeframe",
					Value: string(board.Timeframe1D),
					Usage: strings.Join(enum.Names[board.Timeframe](), ", "),
				},
			},
		},
		{
			Action:   s.startChat,
			Name:     "chat",
			Usage:    "Browse pitches and Lucy's answers",
			Category: "Board",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "view",
					Value: string(board.ChatViewAll),
					Usage: strings.Join(enum.Names[board.ChatView](), ", "),
				},
				&cli.IntFlag{Name: "limit", Value: board.ChatLimits[0], Usage: "Pitches per page: 5, 10 or 15"},
				&cli.IntFlag{Name: "page", Value: 1, Usage: "Page to show"},
			},
		},
		{
			Action:   s.startLastPitches,
			Name:     "last-pitches",
			Usage:    "Show who pitched last",
			Category: "Board",
		},
		{
			Action:   s.startTokens,
			Name:     "tokens",
			Usage:    "List the chains and tokens that can be pitched",
			Category: "Tokens",
			Flags:    []cli.Flag{chainFlag()},
		},
		{
			Action:    s.startTokenName,
			Name:      "token-name",
			Usage:     "Look up the name of a token",
			ArgsUsage: "<address>",
			Category:  "Tokens",
			Flags:     []cli.Flag{chainFlag()},
		},
		{
			Action:   s.startFAQ,
			Name:     "faq",
			Usage:    "Answers about gameplay, pitching rules and rewards",
			Category: "Help",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "section",
					Value: string(board.FAQSectionGameplay),
					Usage: strings.Join(enum.Names[board.FAQSection](), ", "),
				},
				&cli.IntSliceFlag{Name: "open", Usage: "Expand the answers with these numbers"},
				&cli.BoolFlag{Name: "all", Usage: "Expand every answer"},
			},
		},
		{
			Action:   s.startWatch,
			Name:     "watch",
			Usage:    "Keep a live dashboard of the game",
			Category: "Board",
			Flags: []cli.Flag{
				&cli.DurationFlag{Name: "interval", Value: defaultWatchInterval, Usage: "Refresh period"},
			},
			Description: `Refreshes bounty, winners, metrics and last pitches until interrupted.`,
		},
	}

	s.app = app
}
