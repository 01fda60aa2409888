package testutil

import (
	"context"
	"time"

	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/pkg/logger"
	"github.com/pitchlucy/lucy/pkg/xcontext"
)

const (
	HomeChainID  int64 = config.ZetaChainID
	OtherChainID int64 = config.PolygonID

	HomeAICAddress   = "0x1Be925E587d8153FaE5ace6f10c97a0073B50787"
	HomeUSDCAddress  = "0x96152E6180E085FA57c7708e18AF8F05e37B479D"
	OtherAICAddress  = "0x000000000000000000000000000000000000A1C0"
	OtherUSDCAddress = "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"

	TokenAddress = "0x5F0b1a82749cb4E2278EC87F8BF6B618dC71a8bf"
)

// MockConfigs returns the default configs with both chains fully addressed and a fast poll.
func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Backend.Endpoints = []string{"http://backend.test"}
	cfg.Game.WhitelistPollInterval = config.Duration{Duration: 10 * time.Millisecond}
	cfg.Game.ReceiptTimeout = config.Duration{Duration: time.Second}
	cfg.Game.ReceiptPollInterval = config.Duration{Duration: time.Millisecond}

	for i := range cfg.Chains {
		if cfg.Chains[i].ChainID == OtherChainID {
			cfg.Chains[i].AICAddress = OtherAICAddress
		}
	}

	return cfg
}

func MockContext() context.Context {
	return MockContextWithConfigs(MockConfigs())
}

func MockContextWithConfigs(cfg config.Configs) context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	return ctx
}
