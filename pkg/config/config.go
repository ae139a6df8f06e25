package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string   `mapstructure:"PGSQL_URL"`
	Port           string   `mapstructure:"PORT"`
	IsProduction   bool     `mapstructure:"IS_PRODUCTION"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	RateLimit      string   `mapstructure:"RATE_LIMIT"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
	MigrationsPath string   `mapstructure:"MIGRATIONS_PATH"`

	// Names of the system accounts in the chart of nominals. Posting falls
	// back to the suspense account when a named account is missing.
	PurchaseControlNominal  string `mapstructure:"PURCHASE_CONTROL_NOMINAL"`
	SalesControlNominal     string `mapstructure:"SALES_CONTROL_NOMINAL"`
	VatControlNominal       string `mapstructure:"VAT_CONTROL_NOMINAL"`
	SuspenseNominal         string `mapstructure:"SUSPENSE_NOMINAL"`
	RetainedEarningsNominal string `mapstructure:"RETAINED_EARNINGS_NOMINAL"`
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PURCHASE_CONTROL_NOMINAL", "Purchase Ledger Control")
	v.SetDefault("SALES_CONTROL_NOMINAL", "Sales Ledger Control")
	v.SetDefault("VAT_CONTROL_NOMINAL", "Vat")
	v.SetDefault("SUSPENSE_NOMINAL", "System Suspense Account")
	v.SetDefault("RETAINED_EARNINGS_NOMINAL", "Retained Earnings")
	v.AutomaticEnv()

	// AutomaticEnv alone doesn't surface env vars through Unmarshal, so bind
	// each key explicitly.
	for _, key := range []string{
		"PGSQL_URL", "PORT", "IS_PRODUCTION", "LOG_LEVEL", "RATE_LIMIT",
		"ALLOWED_ORIGINS", "MIGRATIONS_PATH",
		"PURCHASE_CONTROL_NOMINAL", "SALES_CONTROL_NOMINAL", "VAT_CONTROL_NOMINAL",
		"SUSPENSE_NOMINAL", "RETAINED_EARNINGS_NOMINAL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable not set")
	}
	return &cfg, nil
}
