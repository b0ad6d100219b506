package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-now/internal/weather"
	"github.com/i474232898/weather-now/internal/weather/providers"
)

type AppConfig struct {
	GeocodeBaseURL  string
	ForecastBaseURL string

	// HTTPTimeout bounds every outbound geocode and forecast call.
	HTTPTimeout time.Duration

	// SearchDebounce is the quiet period before a geocode lookup fires.
	SearchDebounce time.Duration

	// DefaultUnit is the unit system new sessions start with.
	DefaultUnit weather.UnitSystem

	// Session retention.
	MaxSessions        int           // max number of live sessions (0 = unlimited)
	SessionIdleTTL     time.Duration // idle sessions older than this are evicted (0 = never)
	SessionSweepPeriod time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GeocodeBaseURL = getenvDefault("GEOCODE_BASE_URL", providers.DefaultGeocodeURL)
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", providers.DefaultForecastURL)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = getenvDuration("SEARCH_DEBOUNCE", "300ms"); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getenvDuration("SESSION_IDLE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.SessionSweepPeriod, err = getenvDuration("SESSION_SWEEP_INTERVAL", "1m"); err != nil {
		return nil, err
	}

	unit, err := weather.ParseUnitSystem(getenvDefault("DEFAULT_UNIT", "metric"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNIT: %w", err)
	}
	cfg.DefaultUnit = unit

	cfg.MaxSessions = getenvInt("MAX_SESSIONS", 1000)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
