package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPPORT_EMAIL", "support@example.com")
	t.Setenv("SIGNATURE", "The Team")
	t.Setenv("NOTIFY_DEFAULT_CHANNELS", "slack,teams")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.TaxRate().Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, []string{"slack", "teams"}, cfg.DefaultChannels)
	assert.Equal(t, "/templates/application/pending.html", cfg.TemplatePaths()["PendingApplication"])
	assert.Len(t, cfg.TemplatePaths(), 3)
}

func TestLoadRequiresSupportEmail(t *testing.T) {
	t.Setenv("SUPPORT_EMAIL", "")
	t.Setenv("SIGNATURE", "The Team")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseTaxRate(t *testing.T) {
	cases := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "0.2"},
		{raw: "0"},
		{raw: "-0.1", wantErr: true},
		{raw: "fifteen", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			cfg := Config{TaxRateRaw: tc.raw}
			err := cfg.parse()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.TaxRate().Equal(decimal.RequireFromString(tc.raw)))
		})
	}
}

func TestWithTaxRateCopies(t *testing.T) {
	cfg := &Config{TaxRateRaw: "0.15"}
	require.NoError(t, cfg.parse())

	other := cfg.WithTaxRate(decimal.NewFromInt(1))
	assert.True(t, other.TaxRate().Equal(decimal.NewFromInt(1)))
	assert.True(t, cfg.TaxRate().Equal(decimal.RequireFromString("0.15")))
}
