package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultPort     = "8080"
	defaultLogLevel = "info"
	defaultTaxYear  = 2025
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port     string
	LogLevel string
	// TablesDir holds <year>.yaml files that override the embedded tables.
	TablesDir string
	// TablesURL serves <year>.yaml tables ahead of the embedded ones.
	TablesURL      string
	DefaultTaxYear int
}

// Load fills unset variables from dotenvPath (when it exists) and reads the
// environment.
func Load(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := loadDotEnv(dotenvPath); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	cfg := Config{
		Port:           getenv("PORT", defaultPort),
		LogLevel:       getenv("LOG_LEVEL", defaultLogLevel),
		TablesDir:      os.Getenv("TAX_TABLES_DIR"),
		TablesURL:      os.Getenv("TAX_TABLES_URL"),
		DefaultTaxYear: defaultTaxYear,
	}

	if raw := os.Getenv("DEFAULT_TAX_YEAR"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1900 {
			return Config{}, fmt.Errorf("DEFAULT_TAX_YEAR %q is not a valid year", raw)
		}
		cfg.DefaultTaxYear = year
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
