package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr == "" || cfg.DatabaseDSN == "" || cfg.JWTSecret == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if cfg.MaxRequestBytes <= 0 {
		t.Fatalf("bad MaxRequestBytes: %d", cfg.MaxRequestBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FORMBUILDER_HTTP_ADDR", ":9999")
	t.Setenv("FORMBUILDER_JWT_SECRET", "prod-secret")
	t.Setenv("FORMBUILDER_MAX_REQUEST_BYTES", "2048")
	t.Setenv("AIRTABLE_CLIENT_ID", "client-123")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.JWTSecret != "prod-secret" {
		t.Fatalf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.MaxRequestBytes != 2048 {
		t.Fatalf("MaxRequestBytes = %d", cfg.MaxRequestBytes)
	}
	if cfg.AirtableClientID != "client-123" {
		t.Fatalf("AirtableClientID = %q", cfg.AirtableClientID)
	}
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("FORMBUILDER_MAX_REQUEST_BYTES", "not-a-number")
	cfg := Load()
	if cfg.MaxRequestBytes != 1<<20 {
		t.Fatalf("MaxRequestBytes = %d", cfg.MaxRequestBytes)
	}
}
