package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"net/http"
	"syscall"

	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/internal/domain/blockchain"
	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/pkg/api"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/logger"
	"github.com/pitchlucy/lucy/pkg/prometheus"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/pitchlucy/lucy/pkg/xredis"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

type srv struct {
	app *cli.App
	ctx context.Context
	out io.Writer

	logger  logger.Logger
	backend client.BackendCaller
	cache   xredis.Client
	chain   *blockchain.BlockchainManager
}

// load runs before every command.
func (s *srv) load(c *cli.Context) error {
	s.ctx = c.Context
	s.out = c.App.Writer

	if err := s.loadConfig(c.String("config")); err != nil {
		return err
	}

	s.loadLogger(c.Bool("verbose"))
	s.loadHTTPClient()
	s.loadBackend()
	s.loadRedisClient()
	s.startPrometheus(c.String("metrics-addr"))
	return nil
}

func (s *srv) unload(*cli.Context) error {
	if s.chain != nil {
		s.chain.Close()
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close redis client: %v", err)
		}
	}

	return nil
}

func (s *srv) loadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger(verbose bool) {
	cfg := xcontext.Configs(s.ctx)
	level := cfg.LogLevel
	if verbose {
		level = "DEBUG"
	}

	s.logger = logger.NewZapLogger(level, cfg.IsProduction())
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadHTTPClient() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.Backend.Timeout.Duration})
}

func (s *srv) loadBackend() {
	cfg := xcontext.Configs(s.ctx)
	s.backend = client.NewBackendCaller(api.NewGenerator(cfg.Backend.Endpoints...))
}

// loadRedisClient enables the widget cache. Without redis every command reads the backend.
func (s *srv) loadRedisClient() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		return
	}

	cache, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, continue without cache: %v", err)
		return
	}

	s.cache = cache
}

func (s *srv) startPrometheus(addr string) {
	cfg := xcontext.Configs(s.ctx)
	if addr == "" && cfg.PrometheusServer.Enabled() {
		addr = cfg.PrometheusServer.Address()
	}

	if addr == "" {
		return
	}

	go prometheus.Serve(s.ctx, addr)
}

// loadWallet builds the chain manager. Without a private key or keystore the manager can only
// read, and pitching fails with a wallet error.
func (s *srv) loadWallet() error {
	if s.chain != nil {
		return nil
	}

	cfg := xcontext.Configs(s.ctx)
	key, err := s.loadPrivateKey(cfg.Wallet)
	if err != nil {
		return err
	}

	s.chain = blockchain.NewBlockchainManager(cfg, key)
	return nil
}

func (s *srv) loadPrivateKey(cfg config.WalletConfigs) (*ecdsa.PrivateKey, error) {
	if cfg.PrivateKey != "" {
		return ethutil.LoadPrivateKey(cfg.PrivateKey)
	}

	if cfg.KeystorePath == "" {
		return nil, nil
	}

	password := cfg.KeystorePassword
	if password == "" {
		fmt.Fprintf(s.out, "Password of keystore %s: ", cfg.KeystorePath)
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(s.out)
		if err != nil {
			return nil, fmt.Errorf("cannot read password: %w", err)
		}
		password = string(bytePassword)
	}

	return ethutil.LoadKeystore(cfg.KeystorePath, password)
}

// walletAddress is the hex address of the configured wallet, or empty.
func (s *srv) walletAddress() (string, error) {
	if err := s.loadWallet(); err != nil {
		return "", err
	}

	if !s.chain.Connected() {
		return "", nil
	}

	return s.chain.Address().Hex(), nil
}

func cached[T any](s *srv, w *board.Widget[T]) *board.Widget[T] {
	if s.cache == nil {
		return w
	}

	return w.WithCache(s.cache, xcontext.Configs(s.ctx).Redis.CacheTTL.Duration)
}

// fetch syncs a widget once and reports its fetch error.
func fetch[T any](s *srv, w *board.Widget[T]) (T, error) {
	if _, err := w.Sync(s.ctx, false); err != nil {
		return w.Value(), err
	}

	return w.Value(), w.Err()
}
