//go:build unit

package format_test

import (
	"testing"
	"time"

	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/format"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Number(t *testing.T) {
	testCases := []struct {
		locale string
		n      int
		want   string
	}{
		{locale: "en", n: 0, want: "0"},
		{locale: "en", n: 40, want: "40"},
		{locale: "en", n: 1234567, want: "1,234,567"},
		{locale: "de", n: 1234567, want: "1.234.567"},
	}
	for _, tc := range testCases {
		t.Run(tc.locale+"/"+tc.want, func(t *testing.T) {
			f, err := format.NewFormatter(config.DisplayConfig{Locale: tc.locale, TimeZone: "UTC"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Number(tc.n))
		})
	}
}

func TestFormatter_LastUsed(t *testing.T) {
	f, err := format.NewFormatter(config.NewTestConfig().Display)
	require.NoError(t, err)

	assert.Equal(t, "N/A", f.LastUsed(nil))
	assert.Equal(t, "N/A", f.LastUsed(&time.Time{}))

	usedAt := time.Date(2020, 12, 9, 16, 9, 53, 0, time.FixedZone("UTC+2", 2*60*60))
	assert.Equal(t, "2020-12-09 14:09", f.LastUsed(&usedAt))
}

func TestNewFormatter_InvalidConfig(t *testing.T) {
	_, err := format.NewFormatter(config.DisplayConfig{Locale: "not a locale!", TimeZone: "UTC"})
	assert.Error(t, err)

	_, err = format.NewFormatter(config.DisplayConfig{Locale: "en", TimeZone: "Nowhere/Atlantis"})
	assert.Error(t, err)
}
