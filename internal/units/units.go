package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUnits renders an integer amount of base units as a decimal string,
// e.g. FormatUnits(1500000000000000000, 18) == "1.5"
func FormatUnits(amount *big.Int, decimals int32) string {
	if amount == nil {
		return ""
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// FormatAmount renders a base unit amount followed by its symbol
func FormatAmount(amount *big.Int, decimals int32, symbol string) string {
	s := FormatUnits(amount, decimals)
	if s == "" || symbol == "" {
		return s
	}
	return s + " " + symbol
}

// ParseUnits converts a human decimal string into base units,
// e.g. ParseUnits("0.001", 18) == 1000000000000000
func ParseUnits(value string, decimals int32) (*big.Int, error) {
	value = strings.TrimSpace(value)
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("invalid amount %q: negative", value)
	}

	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimal places", value, decimals)
	}

	return scaled.BigInt(), nil
}

// ParseBaseUnits reads an integer amount that may arrive as a JSON string or number
func ParseBaseUnits(v interface{}) (*big.Int, bool) {
	var d decimal.Decimal
	var err error

	switch n := v.(type) {
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(n))
	case float64:
		d = decimal.NewFromFloat(n)
	case int64:
		d = decimal.NewFromInt(n)
	case *big.Int:
		if n == nil {
			return nil, false
		}
		d = decimal.NewFromBigInt(n, 0)
	default:
		return nil, false
	}
	if err != nil || d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return nil, false
	}

	return d.BigInt(), true
}
