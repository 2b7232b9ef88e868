package units_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/units"
)

func wei(s string) *big.Int {
	v, _ := new(big.Int).SetString(s, 10)
	return v
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   *big.Int
		decimals int32
		expected string
	}{
		{wei("1500000000000000000"), 18, "1.5"},
		{wei("1000000000000000"), 18, "0.001"},
		{wei("0"), 18, "0"},
		{wei("42"), 0, "42"},
		{wei("123456789"), 6, "123.456789"},
		{nil, 18, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, units.FormatUnits(tt.amount, tt.decimals))
	}

	assert.Equal(t, "1.5 ETH", units.FormatAmount(wei("1500000000000000000"), 18, "ETH"))
	assert.Equal(t, "2", units.FormatAmount(wei("2"), 0, ""))
}

func TestParseUnits(t *testing.T) {
	v, err := units.ParseUnits("0.001", 18)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", v.String())

	v, err = units.ParseUnits(" 2 ", 0)
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())

	for _, bad := range []string{"", "abc", "-1", "0.0000001"} {
		_, err := units.ParseUnits(bad, 6)
		assert.Error(t, err, "value %q", bad)
	}
}

func TestParseBaseUnits(t *testing.T) {
	v, ok := units.ParseBaseUnits("1500000000000000000")
	require.True(t, ok)
	assert.Equal(t, "1500000000000000000", v.String())

	v, ok = units.ParseBaseUnits(float64(1000))
	require.True(t, ok)
	assert.Equal(t, "1000", v.String())

	for _, bad := range []interface{}{"1.5", "-3", "x", true, nil} {
		_, ok := units.ParseBaseUnits(bad)
		assert.False(t, ok, "value %v", bad)
	}
}
