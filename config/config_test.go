package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	home := cfg.HomeChain()
	require.Equal(t, ZetaChainID, home.ChainID)
	require.NotEmpty(t, home.AICAddress)
	require.Equal(t, ZetaChainID, cfg.WalletChainID())

	polygon, ok := cfg.Chain(PolygonID)
	require.True(t, ok)
	require.Empty(t, polygon.AICAddress)

	_, ok = cfg.Chain(1)
	require.False(t, ok)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lucy.toml")
	content := `
log_level = "DEBUG"

[backend]
endpoints = ["http://localhost:3000"]

[game]
whitelist_poll_interval = "2s"

[[chains]]
chain_id = 7000
name = "ZetaChain"
rpcs = ["http://localhost:8545"]
aic_address = "0x1Be925E587d8153FaE5ace6f10c97a0073B50787"
usdc_address = "0x96152E6180E085FA57c7708e18AF8F05e37B479D"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LUCY_WALLET_PRIVATE_KEY", "0xabc")
	t.Setenv("LUCY_GAME_MAX_PITCH_LENGTH", "500")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Backend.Endpoints)
	require.Equal(t, 2*time.Second, cfg.Game.WhitelistPollInterval.Duration)
	require.Equal(t, 500, cfg.Game.MaxPitchLength)
	require.Equal(t, "0xabc", cfg.Wallet.PrivateKey)
	require.Len(t, cfg.Chains, 1)
	require.Equal(t, []string{"http://localhost:8545"}, cfg.Chains[0].Rpcs)

	// Untouched keys keep their defaults.
	require.Equal(t, "100", cfg.Game.ApproveAmount)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(cfg *Configs)
	}{
		{
			name:   "missing home chain",
			modify: func(cfg *Configs) { cfg.Game.HomeChainID = 1 },
		},
		{
			name:   "duplicated chain",
			modify: func(cfg *Configs) { cfg.Chains = append(cfg.Chains, cfg.Chains[0]) },
		},
		{
			name:   "invalid address",
			modify: func(cfg *Configs) { cfg.Chains[0].AICAddress = "0x123" },
		},
		{
			name:   "no endpoints",
			modify: func(cfg *Configs) { cfg.Backend.Endpoints = nil },
		},
		{
			name:   "zero poll interval",
			modify: func(cfg *Configs) { cfg.Game.WhitelistPollInterval = Duration{} },
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestStatePath(t *testing.T) {
	cfg := Default()
	cfg.StateDir = "/tmp/lucy"

	path, err := cfg.StatePath("terms")
	require.NoError(t, err)
	require.Equal(t, "/tmp/lucy/terms", path)
}
