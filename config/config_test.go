package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("CREDITWISE_SERVER_PORT")
		os.Unsetenv("CREDITWISE_SERVER_ENVIRONMENT")
		os.Unsetenv("CREDITWISE_DATABASE_URL")
		os.Unsetenv("CREDITWISE_GEMINI_API_KEY")
		os.Unsetenv("CREDITWISE_GEMINI_BASE_URL")
		os.Unsetenv("CREDITWISE_GEMINI_MODEL")
		os.Unsetenv("CREDITWISE_CACHE_TTL")
		os.Unsetenv("CREDITWISE_ADMIN_USERNAME")
		os.Unsetenv("CREDITWISE_ADMIN_PASSWORD")
		os.Unsetenv("CREDITWISE_ADMIN_JWT_SECRET")
	}

	setRequired := func() {
		os.Setenv("CREDITWISE_GEMINI_API_KEY", "test-key")
		os.Setenv("CREDITWISE_ADMIN_PASSWORD", "test-pass")
		os.Setenv("CREDITWISE_ADMIN_JWT_SECRET", "test-secret")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Gemini.BaseURL != "https://generativelanguage.googleapis.com" {
			t.Errorf("Gemini.BaseURL = %s, want default", cfg.Gemini.BaseURL)
		}
		if cfg.Gemini.Model != "gemini-2.0-flash" {
			t.Errorf("Gemini.Model = %s, want gemini-2.0-flash", cfg.Gemini.Model)
		}
		if cfg.Cache.TTL != 15*time.Minute {
			t.Errorf("Cache.TTL = %v, want 15m", cfg.Cache.TTL)
		}
		if cfg.Admin.Username != "admin" {
			t.Errorf("Admin.Username = %s, want admin", cfg.Admin.Username)
		}
		if cfg.Admin.JWTExpiresIn != 24*time.Hour {
			t.Errorf("Admin.JWTExpiresIn = %v, want 24h", cfg.Admin.JWTExpiresIn)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("CREDITWISE_SERVER_PORT", "9090")
		os.Setenv("CREDITWISE_GEMINI_MODEL", "gemini-1.5-pro")
		os.Setenv("CREDITWISE_CACHE_TTL", "1h")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Gemini.Model != "gemini-1.5-pro" {
			t.Errorf("Gemini.Model = %s, want gemini-1.5-pro", cfg.Gemini.Model)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
	})

	t.Run("fails without Gemini API key", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CREDITWISE_ADMIN_PASSWORD", "test-pass")
		os.Setenv("CREDITWISE_ADMIN_JWT_SECRET", "test-secret")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want missing API key error")
		}
	})

	t.Run("fails without admin password", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CREDITWISE_GEMINI_API_KEY", "test-key")
		os.Setenv("CREDITWISE_ADMIN_JWT_SECRET", "test-secret")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want missing password error")
		}
	})

	t.Run("fails without JWT secret", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CREDITWISE_GEMINI_API_KEY", "test-key")
		os.Setenv("CREDITWISE_ADMIN_PASSWORD", "test-pass")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want missing secret error")
		}
	})
}
