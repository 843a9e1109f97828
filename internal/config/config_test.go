package config

import (
	"testing"
	"time"
)

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"MOVIES_PORT":              "port",
		"MOVIES_ENV":               "env",
		"MOVIES_DB_DSN":            "db.dsn",
		"MOVIES_DB_MAX_OPEN_CONNS": "db.max_open_conns",
		"MOVIES_DB_MAX_IDLE_TIME":  "db.max_idle_time",
		"MOVIES_LIMITER_RPS":       "limiter.rps",
		"MOVIES_LIMITER_ENABLED":   "limiter.enabled",
	}

	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v; want defaults %+v", cfg, Default())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MOVIES_PORT", "8080")
	t.Setenv("MOVIES_ENV", "production")
	t.Setenv("MOVIES_DB_DSN", "postgres://u:p@db/movies")
	t.Setenv("MOVIES_DB_MAX_OPEN_CONNS", "10")
	t.Setenv("MOVIES_DB_MAX_IDLE_TIME", "5m")
	t.Setenv("MOVIES_DB_MIGRATE", "true")
	t.Setenv("MOVIES_LIMITER_RPS", "0.5")
	t.Setenv("MOVIES_LIMITER_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Port = 8080
	want.Env = "production"
	want.DB.DSN = "postgres://u:p@db/movies"
	want.DB.MaxOpenConns = 10
	want.DB.MaxIdleTime = 5 * time.Minute
	want.DB.Migrate = true
	want.Limiter.RPS = 0.5
	want.Limiter.Enabled = false

	if cfg != want {
		t.Errorf("Load() = %+v; want %+v", cfg, want)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown environment", "MOVIES_ENV", "qa"},
		{"port out of range", "MOVIES_PORT", "70000"},
		{"port not a number", "MOVIES_PORT", "http"},
		{"zero open conns", "MOVIES_DB_MAX_OPEN_CONNS", "0"},
		{"zero rps", "MOVIES_LIMITER_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded; want an error", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	cfg.DB.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an empty DSN")
	}
}
