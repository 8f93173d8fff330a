package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_NAME", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()

	if cfg.Postgres.DBName != "school_supplies" {
		t.Fatalf("expected default db name, got %q", cfg.Postgres.DBName)
	}
	if cfg.Postgres.MaxOpenConns != 25 {
		t.Fatalf("expected 25 open conns, got %d", cfg.Postgres.MaxOpenConns)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1")

	cfg := Load()

	if cfg.IsDevelopment() {
		t.Fatal("expected production environment")
	}
	if cfg.JWT.TTL != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %v", cfg.JWT.TTL)
	}
	if !cfg.Redis.Enabled {
		t.Fatal("expected redis enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if cfg.Postgres.MaxOpenConns != 25 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.Postgres.MaxOpenConns)
	}
	if len(cfg.Server.TrustedProxies) != 2 || cfg.Server.TrustedProxies[0] != "10.0.0.0/8" {
		t.Fatalf("unexpected trusted proxies %v", cfg.Server.TrustedProxies)
	}
}
