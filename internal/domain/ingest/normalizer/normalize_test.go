package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"slash day first", "15/01/2024", date(2024, 1, 15), false},
		{"iso", "2024-01-15", date(2024, 1, 15), false},
		{"dash", "15-01-2024", date(2024, 1, 15), false},
		{"two digit year", "15/01/24", date(2024, 1, 15), false},
		{"single digit fields", "5/1/2024", date(2024, 1, 5), false},
		{"ambiguous resolves day first", "03/04/2024", date(2024, 4, 3), false},
		{"empty", "", time.Time{}, true},
		{"not a date", "yesterday", time.Time{}, true},
		{"impossible calendar date", "45/45/2024", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindDate(t *testing.T) {
	got, ok := FindDate("STORE\nsome text 15/01/2024 more text\nTOTAL 4.50")
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 15), got)

	// An invalid token is skipped in favor of a later valid one.
	got, ok = FindDate("ref 99/99/9999 printed 2024-02-03")
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 3), got)

	_, ok = FindDate("no dates here")
	assert.False(t, ok)
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "COFFEE SHOP 42", CleanDescription("  COFFEE   SHOP \t 42 "))
	assert.Equal(t, "", CleanDescription("   "))
}
