package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://u:p@localhost:5432/db?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("port default: want 8080, got %d", cfg.Port)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("session ttl default: got %s", cfg.SessionTTL)
	}
	if cfg.HouseEdgePercent != 5 {
		t.Fatalf("edge default: got %d", cfg.HouseEdgePercent)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("redis addr default: got %q", cfg.RedisAddr)
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("PG_DSN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("want error for missing PG_DSN")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero_session_ttl", key: "SESSION_TTL", value: "0s"},
		{name: "edge_above_hundred", key: "HOUSE_EDGE_PERCENT", value: "150"},
		{name: "zero_open_conns", key: "PG_MAX_OPEN_CONNS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PG_DSN", "postgres://u:p@localhost:5432/db?sslmode=disable")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("want validation error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
