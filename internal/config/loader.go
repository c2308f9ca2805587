package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the portal service.
type Config struct {
	HTTPPort       int
	StoreDSN       string
	SessionTTL     time.Duration
	AdminPassword  string
	DefaultTheme   string
	QuoteURL       string
	WeatherURL     string
	WidgetTimeout  time.Duration
	WidgetCacheTTL time.Duration
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is read first when present; real
// environment variables win over its entries.
//
// The loader applies defaults for every optional field while validating the
// values that are set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:       8080,
		StoreDSN:       "bolt://portal.db",
		SessionTTL:     24 * time.Hour,
		AdminPassword:  "admin",
		DefaultTheme:   "light",
		WidgetTimeout:  5 * time.Second,
		WidgetCacheTTL: 5 * time.Minute,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("PORTAL_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PORTAL_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("PORTAL_STORE_DSN")); dsn != "" {
		if !validStoreDSN(dsn) {
			invalid = append(invalid, "PORTAL_STORE_DSN")
		} else {
			cfg.StoreDSN = dsn
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("PORTAL_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "PORTAL_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if password := os.Getenv("PORTAL_ADMIN_PASSWORD"); password != "" {
		cfg.AdminPassword = password
	}

	if theme := strings.TrimSpace(os.Getenv("PORTAL_DEFAULT_THEME")); theme != "" {
		if theme != "light" && theme != "dark" {
			invalid = append(invalid, "PORTAL_DEFAULT_THEME")
		} else {
			cfg.DefaultTheme = theme
		}
	}

	if url := strings.TrimSpace(os.Getenv("PORTAL_QUOTE_URL")); url != "" {
		cfg.QuoteURL = url
	}
	if url := strings.TrimSpace(os.Getenv("PORTAL_WEATHER_URL")); url != "" {
		cfg.WeatherURL = url
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("PORTAL_WIDGET_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "PORTAL_WIDGET_TIMEOUT")
		} else {
			cfg.WidgetTimeout = timeout
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("PORTAL_WIDGET_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "PORTAL_WIDGET_CACHE_TTL")
		} else {
			cfg.WidgetCacheTTL = ttl
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// validStoreDSN accepts the schemes a store backend exists for.
func validStoreDSN(dsn string) bool {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return false
	}
	switch scheme {
	case "bolt", "sqlite", "memory":
		return true
	default:
		return false
	}
}
