package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop-quote/config"
	"workshop-quote/refdata"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "REFDATA_PATH", "PUSHGATEWAY_URL",
		"QUOTE_VAT_RATE_PCT", "QUOTE_DEV_RATE_BASE", "QUOTE_OVERHEAD_PCT"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.RefdataPath)
	assert.Nil(t, cfg.VATRatePct)

	d := refdata.StandardDefaults()
	assert.Equal(t, d, cfg.Apply(d))
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("QUOTE_VAT_RATE_PCT", "17.5")
	t.Setenv("QUOTE_DEV_RATE_BASE", "0.25")
	t.Setenv("QUOTE_OVERHEAD_PCT", "0.5")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())

	d := cfg.Apply(refdata.StandardDefaults())
	assert.True(t, d.VATRatePct.Equal(decimal.RequireFromString("17.5")))
	assert.True(t, d.DevRateBase.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, d.OverheadPct.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, 100.0, d.GlobalOutputDefaultPct)
}

func TestFromEnv_InvalidOverrides(t *testing.T) {
	tests := map[string]struct {
		key   string
		value string
	}{
		"NotANumber":       {"QUOTE_VAT_RATE_PCT", "twenty"},
		"NegativeVAT":      {"QUOTE_VAT_RATE_PCT", "-1"},
		"DevRateAboveOne":  {"QUOTE_DEV_RATE_BASE", "1.5"},
		"OverheadNegative": {"QUOTE_OVERHEAD_PCT", "-0.1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := config.FromEnv()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv.Load only sets variables that are absent.
	os.Unsetenv("PORT")
	os.Unsetenv("REFDATA_PATH")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nREFDATA_PATH=/etc/quote/tables.yaml\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("REFDATA_PATH")
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/etc/quote/tables.yaml", cfg.RefdataPath)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}
