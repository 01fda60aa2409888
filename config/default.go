package config

import "time"

const (
	ZetaChainID int64 = 7000
	PolygonID   int64 = 137
)

// Default returns the production chain table with ZetaChain as home chain. The Polygon game
// contract has no default address and must come from a config file.
func Default() Configs {
	return Configs{
		Env:      "development",
		LogLevel: "INFO",
		Backend: BackendConfigs{
			Endpoints: []string{"https://pitchlucy.ai"},
			Timeout:   Duration{30 * time.Second},
		},
		Game: GameConfigs{
			HomeChainID:           ZetaChainID,
			DefaultChainID:        ZetaChainID,
			WhitelistPollInterval: Duration{7 * time.Second},
			ReceiptTimeout:        Duration{3 * time.Minute},
			ReceiptPollInterval:   Duration{3 * time.Second},
			ApproveAmount:         "100",
			StablecoinDecimals:    6,
			StablecoinSymbol:      "USDC",
			MaxPitchLength:        1000,
			AllocationMin:         "1",
			AllocationMax:         "100",
		},
		Redis: RedisConfigs{
			CacheTTL: Duration{15 * time.Second},
		},
		Chains: []ChainConfig{
			{
				ChainID: ZetaChainID,
				Name:    "ZetaChain",
				Rpcs: []string{
					"https://zetachain-evm.blockpi.network/v1/rpc/public",
					"https://zetachain-mainnet.public.blastapi.io",
				},
				AICAddress:  "0x1Be925E587d8153FaE5ace6f10c97a0073B50787",
				USDCAddress: "0x96152E6180E085FA57c7708e18AF8F05e37B479D",
				Tokens: []TokenConfig{
					{Address: "0x96152E6180E085FA57c7708e18AF8F05e37B479D", Symbol: "USDC.BASE", Decimals: 6},
					{Address: "0x5F0b1a82749cb4E2278EC87F8BF6B618dC71a8bf", Symbol: "WZETA", Decimals: 18},
				},
			},
			{
				ChainID:     PolygonID,
				Name:        "Polygon",
				Rpcs:        []string{"https://polygon-rpc.com"},
				USDCAddress: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
				Tokens: []TokenConfig{
					{Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", Symbol: "USDC", Decimals: 6},
					{Address: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", Symbol: "WMATIC", Decimals: 18},
					{Address: "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", Symbol: "WETH", Decimals: 18},
				},
			},
		},
	}
}
