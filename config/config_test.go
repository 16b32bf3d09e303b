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
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3001" {
		t.Fatalf("expected default port 3001, got %q", cfg.Port)
	}
	if cfg.AuthMode != AuthModeAuthenticated {
		t.Fatalf("expected authenticated mode, got %q", cfg.AuthMode)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.AuditSchedule != "@every 10m" {
		t.Fatalf("unexpected audit schedule %q", cfg.AuditSchedule)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_MODE":       "Anonymous",
		"DB_DRIVER":       "sqlite",
		"SQLITE_PATH":     "/tmp/lend.db",
		"ADMIN_USERNAMES": " Alice , ,bob",
		"WEB_ORIGIN":      "https://lend.example.org",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Anonymous() {
		t.Fatalf("expected anonymous mode")
	}
	if cfg.Database.SQLitePath != "/tmp/lend.db" {
		t.Fatalf("unexpected sqlite path %q", cfg.Database.SQLitePath)
	}
	if len(cfg.AdminUsernames) != 2 || cfg.AdminUsernames[0] != "alice" || cfg.AdminUsernames[1] != "bob" {
		t.Fatalf("unexpected admin usernames %v", cfg.AdminUsernames)
	}
	if !cfg.SecureCookies() {
		t.Fatalf("expected secure cookies for https origin")
	}
}

func TestLoadFrom_RejectsUnknownMode(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"AUTH_MODE": "open"}))
	if err == nil {
		t.Fatalf("expected error for unknown auth mode")
	}
}

func TestLoadFrom_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"DB_DRIVER": "mysql"}))
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
