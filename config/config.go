package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wheelBacktester/internal/adapters/logger" // Import the logger package for LogLevel
)

const (
	// Capital bounds enforced before a run starts.
	MinCapital = 1_000
	MaxCapital = 100_000_000

	dateLayout = "2006-01-02"
)

// Symbols are uppercase alphanumerics, e.g. BTCUSDT or TSLA.
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,12}$`)

// Config holds all application configuration.
type Config struct {
	// Market data provider
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Run Parameters
	Symbol         string
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
	PutOTMPct      float64 // How far out-of-the-money to sell puts (e.g., 0.05 for 5%)
	CallOTMPct     float64 // How far out-of-the-money to sell calls
	PremiumPct     float64 // Estimated weekly premium as a fraction of strike

	// Export
	ExportCSV bool
	CSVDir    string

	// Database
	DBPath string

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Market data provider. Keys are optional: historical klines are public.
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)

	// Run Parameters
	cfg.Symbol = strings.ToUpper(getEnv("SYMBOL", "BTCUSDT"))
	if !symbolPattern.MatchString(cfg.Symbol) {
		errs = append(errs, fmt.Sprintf("invalid SYMBOL %q: must be 1-12 alphanumeric characters", cfg.Symbol))
	}

	startStr := getEnv("START_DATE", "")
	if startStr == "" {
		errs = append(errs, "START_DATE must be set (YYYY-MM-DD)")
	} else if cfg.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		errs = append(errs, fmt.Sprintf("invalid START_DATE %q: must be in YYYY-MM-DD format", startStr))
	}

	endStr := getEnv("END_DATE", "")
	if endStr == "" {
		errs = append(errs, "END_DATE must be set (YYYY-MM-DD)")
	} else if cfg.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		errs = append(errs, fmt.Sprintf("invalid END_DATE %q: must be in YYYY-MM-DD format", endStr))
	}

	if !cfg.StartDate.IsZero() && !cfg.EndDate.IsZero() && !cfg.StartDate.Before(cfg.EndDate) {
		errs = append(errs, fmt.Sprintf("START_DATE (%s) must be before END_DATE (%s)", startStr, endStr))
	}

	cfg.InitialCapital, err = getEnvAsFloatRequired("INITIAL_CAPITAL", 50_000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid INITIAL_CAPITAL: %v", err))
	} else if cfg.InitialCapital < MinCapital || cfg.InitialCapital > MaxCapital {
		errs = append(errs, fmt.Sprintf("INITIAL_CAPITAL must be between %d and %d", MinCapital, MaxCapital))
	}

	cfg.PutOTMPct, err = getEnvAsFloatRequired("PUT_OTM_PCT", 0.05)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PUT_OTM_PCT: %v", err))
	} else if cfg.PutOTMPct <= 0 || cfg.PutOTMPct >= 1 {
		errs = append(errs, "PUT_OTM_PCT must be between 0.0 and 1.0 (exclusive)")
	}

	cfg.CallOTMPct, err = getEnvAsFloatRequired("CALL_OTM_PCT", 0.05)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CALL_OTM_PCT: %v", err))
	} else if cfg.CallOTMPct <= 0 || cfg.CallOTMPct >= 1 {
		errs = append(errs, "CALL_OTM_PCT must be between 0.0 and 1.0 (exclusive)")
	}

	cfg.PremiumPct, err = getEnvAsFloatRequired("PREMIUM_PCT", 0.02)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PREMIUM_PCT: %v", err))
	} else if cfg.PremiumPct <= 0 || cfg.PremiumPct >= 1 {
		errs = append(errs, "PREMIUM_PCT must be between 0.0 and 1.0 (exclusive)")
	}

	// Export
	cfg.ExportCSV = getEnvAsBool("EXPORT_CSV", true)
	cfg.CSVDir = getEnv("CSV_DIR", ".")

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/wheel_backtests.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
