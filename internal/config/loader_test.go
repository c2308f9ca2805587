package config

import (
	"os"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"PORTAL_HTTP_PORT",
			"PORTAL_STORE_DSN",
			"PORTAL_SESSION_TTL",
			"PORTAL_ADMIN_PASSWORD",
			"PORTAL_DEFAULT_THEME",
			"PORTAL_WIDGET_TIMEOUT",
			"PORTAL_WIDGET_CACHE_TTL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.StoreDSN != "bolt://portal.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.StoreDSN)
		}
		if cfg.SessionTTL != 24*time.Hour {
			t.Fatalf("unexpected default session TTL: %v", cfg.SessionTTL)
		}
		if cfg.AdminPassword != "admin" {
			t.Fatalf("unexpected default admin password: %q", cfg.AdminPassword)
		}
		if cfg.DefaultTheme != "light" {
			t.Fatalf("unexpected default theme: %q", cfg.DefaultTheme)
		}
	})

	t.Run("parses explicit values", func(t *testing.T) {
		t.Setenv("PORTAL_HTTP_PORT", "9090")
		t.Setenv("PORTAL_STORE_DSN", "sqlite://file:portal.db?_foreign_keys=on")
		t.Setenv("PORTAL_SESSION_TTL", "2h")
		t.Setenv("PORTAL_ADMIN_PASSWORD", "hunter2")
		t.Setenv("PORTAL_DEFAULT_THEME", "dark")
		t.Setenv("PORTAL_WIDGET_TIMEOUT", "3s")
		t.Setenv("PORTAL_WIDGET_CACHE_TTL", "90s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.StoreDSN != "sqlite://file:portal.db?_foreign_keys=on" {
			t.Fatalf("unexpected DSN: %q", cfg.StoreDSN)
		}
		if cfg.SessionTTL != 2*time.Hour {
			t.Fatalf("unexpected session TTL: %v", cfg.SessionTTL)
		}
		if cfg.AdminPassword != "hunter2" {
			t.Fatalf("unexpected admin password: %q", cfg.AdminPassword)
		}
		if cfg.DefaultTheme != "dark" {
			t.Fatalf("unexpected theme: %q", cfg.DefaultTheme)
		}
		if cfg.WidgetTimeout != 3*time.Second {
			t.Fatalf("unexpected widget timeout: %v", cfg.WidgetTimeout)
		}
		if cfg.WidgetCacheTTL != 90*time.Second {
			t.Fatalf("unexpected widget cache TTL: %v", cfg.WidgetCacheTTL)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		cases := map[string]string{
			"PORTAL_HTTP_PORT":     "not-a-port",
			"PORTAL_STORE_DSN":     "postgres://elsewhere",
			"PORTAL_SESSION_TTL":   "-1h",
			"PORTAL_DEFAULT_THEME": "sepia",
		}
		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				if _, err := Load(); err == nil {
					t.Fatalf("expected error for %s=%q", key, value)
				}
			})
		}
	})
}
