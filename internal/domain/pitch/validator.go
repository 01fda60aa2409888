package pitch

import (
	"math/big"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/internal/model"
	"github.com/pitchlucy/lucy/pkg/enum"
	"github.com/pitchlucy/lucy/pkg/errorx"
	"github.com/pitchlucy/lucy/pkg/ethutil"
	"github.com/shopspring/decimal"
)

// Letters, digits, whitespace and common punctuation, the em dash included. Whitespace is the
// full browser set, so pasted text with non-breaking or ideographic spaces passes.
const (
	pitchWhitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`
	pitchCharset    = `A-Za-z0-9` + pitchWhitespace + `.,$+=_@%&*!?;:'"()\x{2014}-`
)

var (
	validPitch       = regexp.MustCompile(`^[` + pitchCharset + `]*$`)
	invalidPitchChar = regexp.MustCompile(`[^` + pitchCharset + `]`)
)

// ValidateForm runs the checks that need nothing but the form, in the order the user sees them.
func ValidateForm(cfg config.GameConfigs, form model.PitchForm) error {
	if strings.TrimSpace(form.Token) == "" {
		return errorx.New(errorx.Validation, "Please select a token before submitting your pitch.")
	}

	if err := ValidatePitch(cfg.MaxPitchLength, form.Pitch); err != nil {
		return err
	}

	if _, err := enum.ToEnum[model.TradeType](string(form.TradeType)); err != nil {
		return errorx.New(errorx.Validation, "Trade type must be buy or sell.")
	}

	return ValidateAllocation(cfg, form.Allocation)
}

// ValidatePitch checks the length in UTF-16 code units, the unit the browser counts in.
func ValidatePitch(maxLength int, pitch string) error {
	if len(utf16.Encode([]rune(pitch))) > maxLength {
		return errorx.New(errorx.Validation,
			"Please ensure your pitch is less than %d characters.", maxLength)
	}

	if !validPitch.MatchString(pitch) {
		return errorx.New(errorx.Validation,
			"Pitch contains invalid characters: %s. Only letters, numbers, and common punctuation are allowed.",
			InvalidCharacters(pitch))
	}

	return nil
}

// InvalidCharacters returns every rejected character of pitch once, in order of first appearance.
func InvalidCharacters(pitch string) string {
	seen := map[string]bool{}
	var b strings.Builder
	for _, c := range invalidPitchChar.FindAllString(pitch, -1) {
		if !seen[c] {
			seen[c] = true
			b.WriteString(c)
		}
	}

	return b.String()
}

func ValidateAllocation(cfg config.GameConfigs, allocation string) error {
	value, err := decimal.NewFromString(strings.TrimSpace(allocation))
	if err != nil {
		return errorx.New(errorx.Validation, "Allocation must be a number.")
	}

	if !value.IsPositive() {
		return errorx.New(errorx.Validation, "Allocation must be greater than 0.")
	}

	if !value.Equal(value.Truncate(2)) {
		return errorx.New(errorx.Validation, "Allocation can have at most 2 decimal places.")
	}

	lower, err := decimal.NewFromString(cfg.AllocationMin)
	if err != nil {
		lower = decimal.Zero
	}

	upper, err := decimal.NewFromString(cfg.AllocationMax)
	if err != nil {
		return errorx.Wrap(errorx.Internal, err, "Invalid allocation range")
	}

	if value.LessThan(lower) || value.GreaterThan(upper) {
		return errorx.New(errorx.Validation, "Allocation must be between %s and %s.", lower, upper)
	}

	return nil
}

// checkFunds compares base-unit amounts and reports both to two decimal places.
func checkFunds(cfg config.GameConfigs, price, balance *big.Int) error {
	if balance != nil && balance.Cmp(price) >= 0 {
		return nil
	}

	return errorx.New(errorx.InsufficientFunds,
		"You do not have enough %s. You need at least %s but only have %s.",
		cfg.StablecoinSymbol,
		ethutil.FormatUnits(price, cfg.StablecoinDecimals, 2),
		ethutil.FormatUnits(balance, cfg.StablecoinDecimals, 2),
	)
}
