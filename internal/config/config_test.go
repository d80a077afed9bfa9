package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_TIMEOUT", "PORT", "LOG_RETENTION_DAYS", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want localhost", cfg.DBHost)
	}
	if cfg.DBTimeout != 5*time.Second {
		t.Errorf("DBTimeout = %v, want 5s", cfg.DBTimeout)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogRetentionDays != 30 {
		t.Errorf("LogRetentionDays = %d, want 30", cfg.LogRetentionDays)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Errorf("RateLimitPerMinute = %d, want 60", cfg.RateLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_TIMEOUT", "750ms")
	t.Setenv("LOG_RETENTION_DAYS", "7")
	t.Setenv("WRITE_RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	if cfg.DBTimeout != 750*time.Millisecond {
		t.Errorf("DBTimeout = %v, want 750ms", cfg.DBTimeout)
	}
	if cfg.LogRetentionDays != 7 {
		t.Errorf("LogRetentionDays = %d, want 7", cfg.LogRetentionDays)
	}
	if cfg.WriteRateLimitPerMinute != 20 {
		t.Errorf("WriteRateLimitPerMinute = %d, want fallback 20", cfg.WriteRateLimitPerMinute)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
