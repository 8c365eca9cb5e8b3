package config

import (
	"os"
	"strconv"
)

// FromEnv overlays RELAY_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("RELAY_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("RELAY_DEFAULT_LEDGER"); v != "" {
		cfg.DefaultLedger = v
	}
	if v := os.Getenv("RELAY_OWN_ISS"); v != "" {
		cfg.OwnIss = v
	}
	if v := os.Getenv("RELAY_RESOLVER_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ResolverConcurrency = n
		}
	}
	if v := os.Getenv("RELAY_WEBHOOK_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Webhook.RatePerSecond = f
		}
	}
	if v := os.Getenv("RELAY_WEBHOOK_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Webhook.Burst = n
		}
	}
	if v := os.Getenv("RELAY_WEBHOOK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Webhook.Timeout = Millis(n)
		}
	}
}
