package config

import (
	"strings"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QOMMERCE_APP_ENV", "dev")
	t.Setenv("QOMMERCE_JWT_SECRET", "sekret")
	t.Setenv("QOMMERCE_DB_DSN", "host=localhost user=qh dbname=qh sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev environment")
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.DB.MaxOpenConns != 20 {
		t.Fatalf("unexpected pool default %d", cfg.DB.MaxOpenConns)
	}
}

func TestEnsureDSNFromParts(t *testing.T) {
	cfg := DBConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "backoffice",
		Password: "pw",
		Name:     "qommerce",
		SSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, part := range []string{"host=db.internal", "port=5433", "dbname=qommerce", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, part) {
			t.Fatalf("DSN missing %q: %s", part, cfg.DSN)
		}
	}
}

func TestEnsureDSNIncomplete(t *testing.T) {
	cfg := DBConfig{Host: "only-host"}
	if err := cfg.ensureDSN(); err == nil {
		t.Fatal("expected error for incomplete db config")
	}
}
