package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg := load()
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate() unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Generator.DefaultSize != 256 || cfg.Generator.MaxSize != 1024 {
		t.Errorf("generator sizes = %d/%d, want 256/1024", cfg.Generator.DefaultSize, cfg.Generator.MaxSize)
	}
	if cfg.Generator.Workers != 4 || cfg.Generator.MaxBatch != 256 {
		t.Errorf("generator workers/batch = %d/%d, want 4/256", cfg.Generator.Workers, cfg.Generator.MaxBatch)
	}
	if cfg.Generator.CacheTTL != time.Hour {
		t.Errorf("Generator.CacheTTL = %v, want 1h", cfg.Generator.CacheTTL)
	}
	if cfg.Generator.MemoryCacheBytes != 256<<20 {
		t.Errorf("Generator.MemoryCacheBytes = %d, want %d", cfg.Generator.MemoryCacheBytes, 256<<20)
	}
	if cfg.Auth.TokenExpiration != 24*time.Hour {
		t.Errorf("Auth.TokenExpiration = %v, want 24h", cfg.Auth.TokenExpiration)
	}
	if !cfg.Database.Enabled || !cfg.Redis.Enabled || !cfg.RateLimit.Enabled {
		t.Error("database, redis and rate limiting should default to enabled")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("GENERATOR_DEFAULT_SIZE", "128")
	t.Setenv("GENERATOR_WORKERS", "8")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("DB_HOST", "")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GENERATOR_MEMORY_CACHE_BYTES", "1048576")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	cfg := load()
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate() unexpected error: %v", err)
	}
	if cfg.Generator.DefaultSize != 128 || cfg.Generator.Workers != 8 {
		t.Errorf("generator = %+v", cfg.Generator)
	}
	if cfg.Generator.MemoryCacheBytes != 1<<20 {
		t.Errorf("Generator.MemoryCacheBytes = %d, want %d", cfg.Generator.MemoryCacheBytes, 1<<20)
	}
	if got := LoadAuthConfig().TokenExpiration; got != 2*time.Hour {
		t.Errorf("LoadAuthConfig().TokenExpiration = %v, want 2h", got)
	}
	if cfg.Database.Enabled {
		t.Error("Database.Enabled = true, want false")
	}
	if !cfg.Logging.JSONFormat {
		t.Error("production should default to JSON logs")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET is required"},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "at least 32"},
		{"default above max", map[string]string{"GENERATOR_DEFAULT_SIZE": "2048"}, "exceeds GENERATOR_MAX_SIZE"},
		{"zero workers", map[string]string{"GENERATOR_WORKERS": "0"}, "GENERATOR_WORKERS"},
		{"zero cache bytes", map[string]string{"GENERATOR_MEMORY_CACHE_BYTES": "0"}, "GENERATOR_MEMORY_CACHE_BYTES"},
		{"bad rate", map[string]string{"RATE_LIMIT_REQUESTS_PER_SECOND": "-1"}, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := load().validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "planets", SSLMode: "disable",
	}}
	want := "host=db port=5432 user=u password=p dbname=planets sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
