package ethutil

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

var addressRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsAddress is stricter than common.IsHexAddress: the 0x prefix is required.
func IsAddress(s string) bool {
	return addressRegex.MatchString(s)
}

func LoadPrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return key, nil
}

func LoadKeystore(path, password string) (*ecdsa.PrivateKey, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key, err := keystore.DecryptKey(content, password)
	if err != nil {
		return nil, fmt.Errorf("cannot decrypt keystore %s: %w", path, err)
	}

	return key.PrivateKey, nil
}

func Address(key *ecdsa.PrivateKey) common.Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}

// ToBaseUnits converts a token amount such as "1.5" into its on-chain integer value.
func ToBaseUnits(amount decimal.Decimal, decimals int32) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	scaled := amount.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}

	return scaled.BigInt(), nil
}

func FromBaseUnits(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(amount, -decimals)
}

// FormatUnits renders a base-unit amount with a fixed number of decimal places.
func FormatUnits(amount *big.Int, decimals int32, places int32) string {
	return FromBaseUnits(amount, decimals).StringFixed(places)
}
