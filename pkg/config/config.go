package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string   `mapstructure:"PGSQL_URL"`
	Port              string   `mapstructure:"PORT"`
	IsProduction      bool     `mapstructure:"IS_PRODUCTION"`
	RateLimit         string   `mapstructure:"RATE_LIMIT"`
	CORSAllowOrigins  []string `mapstructure:"CORS_ALLOW_ORIGINS"`
	DefaultCategories []string `mapstructure:"DEFAULT_CATEGORIES"`
}

// LoadConfig loads configuration from the environment. A .env file is read
// first when present so local development does not need exported variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})
	v.SetDefault("DEFAULT_CATEGORIES", []string{
		"Groceries",
		"Rent",
		"Utilities",
		"Transport",
		"Dining",
		"Entertainment",
		"Health",
		"Salary",
		"Savings",
		"Other",
	})
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env vars through Unmarshal, so bind
	// each key explicitly.
	for _, key := range []string{"PGSQL_URL", "PORT", "IS_PRODUCTION", "RATE_LIMIT", "CORS_ALLOW_ORIGINS", "DEFAULT_CATEGORIES"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}

	return &cfg, nil
}
