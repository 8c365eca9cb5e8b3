package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("default http addr = %q", cfg.HTTPAddr)
	}
	if cfg.Webhook.Timeout.Duration() != 10*time.Second {
		t.Fatalf("default webhook timeout = %v", cfg.Webhook.Timeout.Duration())
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.json")
	data := `{"httpAddr":":9090","defaultLedger":"0xabc","webhook":{"ratePerSecond":3,"burst":1,"timeoutMs":500}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.DefaultLedger != "0xabc" {
		t.Fatalf("loaded config = %+v", cfg)
	}
	if cfg.Webhook.RatePerSecond != 3 || cfg.Webhook.Timeout != 500 {
		t.Fatalf("webhook config = %+v", cfg.Webhook)
	}
	// Unset fields keep defaults.
	if cfg.ResolverConcurrency != 8 {
		t.Fatalf("resolver concurrency = %d, want default 8", cfg.ResolverConcurrency)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	data := "httpAddr: \":7070\"\nownIss: did:elsi:VATES-X\nwebhook:\n  ratePerSecond: 1.5\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" || cfg.OwnIss != "did:elsi:VATES-X" {
		t.Fatalf("loaded config = %+v", cfg)
	}
	if cfg.Webhook.RatePerSecond != 1.5 {
		t.Fatalf("webhook rate = %v", cfg.Webhook.RatePerSecond)
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RELAY_HTTP_ADDR", ":6060")
	t.Setenv("RELAY_DEFAULT_LEDGER", "0xdef")
	t.Setenv("RELAY_OWN_ISS", "did:elsi:VATES-Y")
	t.Setenv("RELAY_RESOLVER_CONCURRENCY", "4")
	t.Setenv("RELAY_WEBHOOK_RATE", "2.5")
	t.Setenv("RELAY_WEBHOOK_BURST", "7")
	t.Setenv("RELAY_WEBHOOK_TIMEOUT_MS", "1500")

	cfg := Default()
	FromEnv(&cfg)

	if cfg.HTTPAddr != ":6060" || cfg.DefaultLedger != "0xdef" || cfg.OwnIss != "did:elsi:VATES-Y" {
		t.Fatalf("env overlay = %+v", cfg)
	}
	if cfg.ResolverConcurrency != 4 {
		t.Fatalf("resolver concurrency = %d", cfg.ResolverConcurrency)
	}
	if cfg.Webhook.RatePerSecond != 2.5 || cfg.Webhook.Burst != 7 || cfg.Webhook.Timeout != 1500 {
		t.Fatalf("webhook overlay = %+v", cfg.Webhook)
	}
}

func TestFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("RELAY_RESOLVER_CONCURRENCY", "zero")
	t.Setenv("RELAY_WEBHOOK_RATE", "-1")

	cfg := Default()
	FromEnv(&cfg)

	if cfg.ResolverConcurrency != 8 || cfg.Webhook.RatePerSecond != 20 {
		t.Fatalf("invalid env values applied: %+v", cfg)
	}
}
