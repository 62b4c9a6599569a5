// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/contracts and cmd/api.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-contracts/internal/season"
)

// --------------------------------------------------------------------------
// Config is populated from environment variables.
// --------------------------------------------------------------------------

type Config struct {
	// Stats API
	StatsBaseURL          string
	StatsTimeout          time.Duration
	StatsRetryAttempts    int
	StatsRetryDelay       time.Duration
	SCRequestInterval     time.Duration
	TenureRequestInterval time.Duration

	// Jobs
	CurrentSeason    season.Season
	MaxLookback      int
	ResolveJoinDates bool
	SCOutputPath     string
	TenureOutputPath string

	// Logging
	LogLevel slog.Level

	// API server
	APIHost          string
	APIPort          int
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// now picks the current season unless CURRENT_SEASON is set.
func Load(now time.Time) (*Config, error) {
	current := season.Current(now)
	if v := os.Getenv("CURRENT_SEASON"); v != "" {
		s, err := season.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("CURRENT_SEASON: %w", err)
		}
		current = s
	}

	level, err := ParseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		StatsBaseURL:          envOr("NBA_STATS_BASE_URL", "https://stats.nba.com/stats"),
		StatsTimeout:          envDuration("NBA_STATS_TIMEOUT", 45*time.Second),
		StatsRetryAttempts:    envInt("NBA_STATS_RETRY_ATTEMPTS", 3),
		StatsRetryDelay:       envDuration("NBA_STATS_RETRY_DELAY", 3*time.Second),
		SCRequestInterval:     envDuration("SC_REQUEST_INTERVAL", time.Second),
		TenureRequestInterval: envDuration("TENURE_REQUEST_INTERVAL", 1500*time.Millisecond),

		CurrentSeason:    current,
		MaxLookback:      envInt("TENURE_MAX_LOOKBACK", 22),
		ResolveJoinDates: envBool("TENURE_RESOLVE_JOIN_DATES", true),
		SCOutputPath:     envOr("SC_OUTPUT_PATH", "sc_data.json"),
		TenureOutputPath: envOr("TENURE_OUTPUT_PATH", "tenure_data.json"),

		LogLevel: level,

		APIHost: envOr("API_HOST", "0.0.0.0"),
		APIPort: envInt("API_PORT", envInt("PORT", 8000)),
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4321",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     envDuration("CACHE_TTL", 10*time.Minute),
	}, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
