package board

import (
	"context"
	"strings"

	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/internal/client"
	"github.com/pitchlucy/lucy/pkg/errorx"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/pitchlucy/lucy/pkg/xcontext"
)

const CustomTokenSymbol = "CUSTOM"

// Selection is the token a pitch is about. Address is empty until a valid token is chosen.
type Selection struct {
	ChainID   int64
	Symbol    string
	Address   string
	TokenName string
}

func (s Selection) Complete() bool {
	return s.ChainID != 0 && s.Address != ""
}

// TokenSelector picks a token among the configured chains, or any ERC-20 through the custom entry.
type TokenSelector struct {
	cfg     config.Configs
	backend client.BackendCaller
}

func NewTokenSelector(cfg config.Configs, backend client.BackendCaller) *TokenSelector {
	return &TokenSelector{cfg: cfg, backend: backend}
}

func (s *TokenSelector) Chains() []config.ChainConfig {
	return s.cfg.Chains
}

// Symbols lists the choices offered on a chain, the custom entry last.
func (s *TokenSelector) Symbols(chainID int64) []string {
	chain, ok := s.cfg.Chain(chainID)
	if !ok {
		return nil
	}

	symbols := make([]string, 0, len(chain.Tokens)+1)
	for _, token := range chain.Tokens {
		symbols = append(symbols, token.Symbol)
	}

	return append(symbols, CustomTokenSymbol)
}

// Select resolves a symbol on a chain. customAddress is only read for the custom entry; an
// invalid one leaves the selection without address. The token name of a custom token is looked up
// on the backend and left empty when that fails.
func (s *TokenSelector) Select(
	ctx context.Context, chainID int64, symbol, customAddress string,
) (Selection, error) {
	chain, ok := s.cfg.Chain(chainID)
	if !ok {
		return Selection{}, errorx.New(errorx.UnsupportedChain, "Chain %d is not supported", chainID)
	}

	selection := Selection{ChainID: chain.ChainID, Symbol: symbol}
	if symbol == "" {
		return selection, nil
	}

	if strings.EqualFold(symbol, CustomTokenSymbol) {
		selection.Symbol = CustomTokenSymbol

		customAddress = strings.TrimSpace(customAddress)
		if !ethutil.IsAddress(customAddress) {
			return selection, nil
		}

		selection.Address = customAddress
		selection.TokenName = s.TokenName(ctx, customAddress, chain.ChainID)
		return selection, nil
	}

	for _, token := range chain.Tokens {
		if token.Symbol == symbol {
			selection.Address = token.Address
			selection.TokenName = token.Symbol
			return selection, nil
		}
	}

	return Selection{}, errorx.New(errorx.NotFound, "Token %s is not listed on %s", symbol, chain.Name)
}

func (s *TokenSelector) TokenName(ctx context.Context, address string, chainID int64) string {
	name, err := s.backend.GetTokenName(ctx, address, chainID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get name of token %s: %v", address, err)
		return ""
	}

	return name
}
