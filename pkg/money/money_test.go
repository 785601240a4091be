package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "42.50", "42.50", false},
		{"dollar sign", "$42.50", "42.50", false},
		{"thousands separator", "$1,234.56", "1234.56", false},
		{"negative", "-23.40", "-23.40", false},
		{"explicit plus", "+2500.00", "2500.00", false},
		{"parentheses negative", "(42.00)", "-42.00", false},
		{"euro", "€9.99", "9.99", false},
		{"integer", "100", "100", false},
		{"whitespace", "  7.25 ", "7.25", false},
		{"empty", "", "", true},
		{"just a sign", "-", "", true},
		{"garbage", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$42.50", Format(decimal.RequireFromString("42.5"), "USD"))
	assert.Equal(t, "$1,234.56", Format(decimal.RequireFromString("1234.56"), "USD"))
	// Unknown currency codes fall back to the default.
	assert.Equal(t, "$10.00", Format(decimal.RequireFromString("10"), "NOPE"))
}
