package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.API.BaseURL != "http://localhost:8080/api/v1" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.API.RequestTimeout)
	}
	if cfg.Demo.Enabled {
		t.Error("demo mode should be off by default")
	}
	if !cfg.Display.PositiveIsExpense {
		t.Error("positive-is-expense should default on for provider data")
	}
	if cfg.Display.RecentLimit != 5 {
		t.Errorf("recent limit = %d", cfg.Display.RecentLimit)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FINPILOT_API_URL", "https://api.example.com/api/v1")
	t.Setenv("FINPILOT_API_TIMEOUT", "30s")
	t.Setenv("FINPILOT_API_TOKEN", "token-123")
	t.Setenv("FINPILOT_DEMO", "true")
	t.Setenv("FINPILOT_POSITIVE_IS_EXPENSE", "false")
	t.Setenv("FINPILOT_RECENT_LIMIT", "10")

	cfg := Load()

	if cfg.API.BaseURL != "https://api.example.com/api/v1" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.API.RequestTimeout)
	}
	if cfg.Auth.Token != "token-123" {
		t.Errorf("token = %q", cfg.Auth.Token)
	}
	if !cfg.Demo.Enabled {
		t.Error("demo mode should be enabled")
	}
	if cfg.Display.PositiveIsExpense {
		t.Error("sign convention override not applied")
	}
	if cfg.Display.RecentLimit != 10 {
		t.Errorf("recent limit = %d", cfg.Display.RecentLimit)
	}
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("FINPILOT_API_TIMEOUT", "soon")
	t.Setenv("FINPILOT_DEMO", "yes please")
	t.Setenv("FINPILOT_RECENT_LIMIT", "many")

	cfg := Load()

	if cfg.API.RequestTimeout != 15*time.Second {
		t.Errorf("timeout = %v, want the default", cfg.API.RequestTimeout)
	}
	if cfg.Demo.Enabled {
		t.Error("unparseable bool should keep the default")
	}
	if cfg.Display.RecentLimit != 5 {
		t.Errorf("recent limit = %d, want the default", cfg.Display.RecentLimit)
	}
}
