// Package config reads process configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"workshop-quote/refdata"
)

const defaultPort = "8080"

// Config is the process configuration.
type Config struct {
	Port           string
	RefdataPath    string
	PushgatewayURL string

	// Overrides for the reference defaults; nil keeps the table value.
	VATRatePct  *decimal.Decimal
	DevRateBase *decimal.Decimal
	OverheadPct *decimal.Decimal
}

// Load reads envPath (if present) into the environment without overriding
// variables that are already set, then builds a Config from the environment.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("Warning: could not load %s: %v", envPath, err)
			}
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", defaultPort),
		RefdataPath:    os.Getenv("REFDATA_PATH"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	var err error
	if cfg.VATRatePct, err = decimalEnv("QUOTE_VAT_RATE_PCT", decimal.NewFromInt(100)); err != nil {
		return Config{}, err
	}
	if cfg.DevRateBase, err = decimalEnv("QUOTE_DEV_RATE_BASE", decimal.NewFromInt(1)); err != nil {
		return Config{}, err
	}
	if cfg.OverheadPct, err = decimalEnv("QUOTE_OVERHEAD_PCT", decimal.NewFromInt(10)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply returns d with the configured overrides applied.
func (c Config) Apply(d refdata.Defaults) refdata.Defaults {
	if c.VATRatePct != nil {
		d.VATRatePct = *c.VATRatePct
	}
	if c.DevRateBase != nil {
		d.DevRateBase = *c.DevRateBase
	}
	if c.OverheadPct != nil {
		d.OverheadPct = *c.OverheadPct
	}
	return d
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// decimalEnv parses key as a decimal in [0, max]. An unset key yields nil.
func decimalEnv(key string, max decimal.Decimal) (*decimal.Decimal, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("config: %s=%q is not a number: %w", key, raw, err)
	}
	if v.IsNegative() || v.GreaterThan(max) {
		return nil, fmt.Errorf("config: %s=%s must be between 0 and %s", key, v, max)
	}
	return &v, nil
}
