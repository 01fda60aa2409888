package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/exp/slices"
)

// EnvPrefix is the prefix of every environment override, e.g. LUCY_WALLET_PRIVATE_KEY.
const EnvPrefix = "LUCY"

type Configs struct {
	Env      string `toml:"env" envconfig:"ENV"`
	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"`
	StateDir string `toml:"state_dir" envconfig:"STATE_DIR"`

	Backend          BackendConfigs `toml:"backend" envconfig:"BACKEND"`
	Game             GameConfigs    `toml:"game" envconfig:"GAME"`
	Wallet           WalletConfigs  `toml:"wallet" envconfig:"WALLET"`
	Redis            RedisConfigs   `toml:"redis" envconfig:"REDIS"`
	PrometheusServer ServerConfigs  `toml:"prometheus_server" envconfig:"PROMETHEUS"`

	Chains []ChainConfig `toml:"chains" ignored:"true"`
}

type BackendConfigs struct {
	Endpoints []string `toml:"endpoints" envconfig:"ENDPOINTS"`
	Timeout   Duration `toml:"timeout" envconfig:"TIMEOUT"`
}

type GameConfigs struct {
	// HomeChainID is the chain on which the AI call follows payment immediately. Whitelist
	// entitlements are always read there.
	HomeChainID    int64 `toml:"home_chain_id" envconfig:"HOME_CHAIN_ID"`
	DefaultChainID int64 `toml:"default_chain_id" envconfig:"DEFAULT_CHAIN_ID"`

	WhitelistPollInterval Duration `toml:"whitelist_poll_interval" envconfig:"WHITELIST_POLL_INTERVAL"`
	ReceiptTimeout        Duration `toml:"receipt_timeout" envconfig:"RECEIPT_TIMEOUT"`
	ReceiptPollInterval   Duration `toml:"receipt_poll_interval" envconfig:"RECEIPT_POLL_INTERVAL"`

	// ApproveAmount is in stablecoin units, not base units.
	ApproveAmount      string `toml:"approve_amount" envconfig:"APPROVE_AMOUNT"`
	StablecoinDecimals int32  `toml:"stablecoin_decimals" envconfig:"STABLECOIN_DECIMALS"`
	StablecoinSymbol   string `toml:"stablecoin_symbol" envconfig:"STABLECOIN_SYMBOL"`

	MaxPitchLength int    `toml:"max_pitch_length" envconfig:"MAX_PITCH_LENGTH"`
	AllocationMin  string `toml:"allocation_min" envconfig:"ALLOCATION_MIN"`
	AllocationMax  string `toml:"allocation_max" envconfig:"ALLOCATION_MAX"`
}

type WalletConfigs struct {
	PrivateKey       string `toml:"private_key" envconfig:"PRIVATE_KEY"`
	KeystorePath     string `toml:"keystore_path" envconfig:"KEYSTORE_PATH"`
	KeystorePassword string `toml:"-" envconfig:"KEYSTORE_PASSWORD"`
	ChainID          int64  `toml:"chain_id" envconfig:"CHAIN_ID"`
}

type RedisConfigs struct {
	Addr     string   `toml:"addr" envconfig:"ADDR"`
	CacheTTL Duration `toml:"cache_ttl" envconfig:"CACHE_TTL"`
}

type ServerConfigs struct {
	Host string `toml:"host" envconfig:"HOST"`
	Port string `toml:"port" envconfig:"PORT"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c ServerConfigs) Enabled() bool {
	return c.Port != ""
}

type ChainConfig struct {
	ChainID int64    `toml:"chain_id" json:"chain_id"`
	Name    string   `toml:"name" json:"name"`
	Rpcs    []string `toml:"rpcs" json:"rpcs"`

	// UseExternalRPC adds the public RPCs listed on chainlist.org to Rpcs.
	UseExternalRPC bool `toml:"use_external_rpc" json:"use_external_rpc"`

	AICAddress  string        `toml:"aic_address" json:"aic_address"`
	USDCAddress string        `toml:"usdc_address" json:"usdc_address"`
	Tokens      []TokenConfig `toml:"tokens" json:"tokens"`
}

type TokenConfig struct {
	Address  string `toml:"address" json:"address"`
	Symbol   string `toml:"symbol" json:"symbol"`
	Decimals int    `toml:"decimals" json:"decimals"`
}

// Duration lets TOML files and environment variables use strings such as "7s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Chain returns the configuration of the chain with the given id.
func (c Configs) Chain(chainID int64) (ChainConfig, bool) {
	i := slices.IndexFunc(c.Chains, func(ch ChainConfig) bool { return ch.ChainID == chainID })
	if i < 0 {
		return ChainConfig{}, false
	}

	return c.Chains[i], true
}

func (c Configs) HomeChain() ChainConfig {
	ch, _ := c.Chain(c.Game.HomeChainID)
	return ch
}

// WalletChainID is the chain the signer pays on; it defaults to the home chain.
func (c Configs) WalletChainID() int64 {
	if c.Wallet.ChainID != 0 {
		return c.Wallet.ChainID
	}

	return c.Game.HomeChainID
}

func (c Configs) IsProduction() bool {
	return c.Env == "production"
}

// StatePath returns the path of a file kept under the state directory.
func (c Configs) StatePath(name string) (string, error) {
	dir := c.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "pitchlucy")
	}

	return filepath.Join(dir, name), nil
}

// Load reads the defaults, then the optional TOML file at path, then a .env file if present,
// then the LUCY_* environment variables.
func Load(path string) (Configs, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Configs{}, fmt.Errorf("cannot load .env: %w", err)
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Configs{}, fmt.Errorf("cannot read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func (c Configs) Validate() error {
	if len(c.Backend.Endpoints) == 0 {
		return errors.New("backend.endpoints must not be empty")
	}

	if c.Game.WhitelistPollInterval.Duration <= 0 {
		return errors.New("game.whitelist_poll_interval must be positive")
	}

	if c.Game.MaxPitchLength <= 0 {
		return errors.New("game.max_pitch_length must be positive")
	}

	if _, ok := c.Chain(c.Game.HomeChainID); !ok {
		return fmt.Errorf("home chain %d is not configured", c.Game.HomeChainID)
	}

	seen := map[int64]bool{}
	for _, ch := range c.Chains {
		if seen[ch.ChainID] {
			return fmt.Errorf("chain %d is configured twice", ch.ChainID)
		}
		seen[ch.ChainID] = true

		for _, addr := range []string{ch.AICAddress, ch.USDCAddress} {
			if addr != "" && !common.IsHexAddress(addr) {
				return fmt.Errorf("chain %d has an invalid address %q", ch.ChainID, addr)
			}
		}

		for _, token := range ch.Tokens {
			if !common.IsHexAddress(token.Address) {
				return fmt.Errorf("token %s on chain %d has an invalid address", token.Symbol, ch.ChainID)
			}
		}
	}

	return nil
}
