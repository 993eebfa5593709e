package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.DataBackend != BackendMemory || cfg.StorageBackend != BackendMemory {
		t.Errorf("expected memory backends, got %q/%q", cfg.DataBackend, cfg.StorageBackend)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.ClientIdleTTL != 30*time.Minute {
		t.Errorf("expected 30m idle ttl, got %v", cfg.ClientIdleTTL)
	}
	if cfg.SeedAdminPassword != "admin123" {
		t.Errorf("unexpected seed password %q", cfg.SeedAdminPassword)
	}
	if cfg.Mongo.Database != "meetdesk" {
		t.Errorf("unexpected mongo db %q", cfg.Mongo.Database)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATA_BACKEND":     "mongo",
		"STORAGE_BACKEND":  "redis",
		"TOKEN_TTL":        "2h",
		"DISPATCH_WORKERS": "8",
		"REDIS_DB":         "3",
		"REDIS_PASSWORD":   "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataBackend != BackendMongo || cfg.StorageBackend != BackendRedis {
		t.Errorf("backends not applied: %q/%q", cfg.DataBackend, cfg.StorageBackend)
	}
	if cfg.TokenTTL != 2*time.Hour || cfg.DispatchWorkers != 8 || cfg.Redis.DB != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Redis.Password != "s3cret" {
		t.Errorf("redis password not applied: %q", cfg.Redis.Password)
	}
}

func TestLoadFrom_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATA_BACKEND": "postgres",
	}))
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadFrom_ProductionNeedsSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}))
	if err == nil {
		t.Fatal("expected error without JWT_SECRET in production")
	}
}
