package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"98.99":   "$98.99",
		"9":       "$9.00",
		"1234.5":  "$1,234.50",
		"41.996":  "$42.00",
		"1000000": "$1,000,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(decimal.RequireFromString(in)), in)
	}
}

func TestFormatWithCurrency(t *testing.T) {
	assert.Equal(t, "$98.99 AUD", FormatWithCurrency(decimal.RequireFromString("98.99"), "AUD"))
	assert.Equal(t, "$98.99", FormatWithCurrency(decimal.RequireFromString("98.99"), ""))
}
