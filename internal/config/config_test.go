package config

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTPAddr != ":3000" || cfg.Store != StoreMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReconnectGrace != 20*time.Second || cfg.RoomTTL != 2*time.Hour {
		t.Fatalf("unexpected durations: %v %v", cfg.ReconnectGrace, cfg.RoomTTL)
	}
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowAllOrigins() {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	s := cfg.GameSettings()
	if s.StartingMoney != 8000 || s.StartSalary != 700 || s.SanctionsBail != 1000 || s.InfluenceToWin != 2500 {
		t.Fatalf("unexpected rules: %+v", s)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ECONWARS_HTTP_ADDR", ":9000")
	t.Setenv("ECONWARS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ECONWARS_STORE", "sqlite")
	t.Setenv("ECONWARS_RECONNECT_GRACE", "5s")
	t.Setenv("ECONWARS_REDIS_DB", "3")
	t.Setenv("ECONWARS_STARTING_MONEY", "12000")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTPAddr != ":9000" || cfg.Store != StoreSQLite || cfg.ReconnectGrace != 5*time.Second {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.Redis.DB != 3 || cfg.Rules.StartingMoney != 12000 {
		t.Fatalf("nested overrides ignored: %+v", cfg)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("origins not trimmed: %q", cfg.AllowedOrigins)
	}
	if !cfg.OriginAllowed("https://B.example") || cfg.OriginAllowed("https://c.example") {
		t.Fatalf("origin check wrong")
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ECONWARS_RECONNECT_GRACE": "soon",
		"ECONWARS_ACTION_BURST":    "many",
		"ECONWARS_STORE":           "postgres",
		"ECONWARS_ACTION_RATE":     "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Parse()
			if err == nil || !strings.Contains(err.Error(), "parse env") {
				t.Fatalf("expected parse env error, got %v", err)
			}
		})
	}
}

func TestWildcardOrigin(t *testing.T) {
	t.Setenv("ECONWARS_ALLOWED_ORIGINS", "*")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.OriginAllowed("https://anything.example") {
		t.Fatalf("wildcard should allow every origin")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(Config{LogLevel: "debug", LogDevelopment: true}); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if _, err := NewLogger(Config{LogLevel: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
