package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level relay configuration loaded from file/env.
type Config struct {
	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// DefaultLedger is the event log address used when a request omits one.
	DefaultLedger string `json:"defaultLedger" yaml:"defaultLedger"`
	// OwnIss is the relay operator's DID; subscriptions default to excluding
	// events this identity published.
	OwnIss string `json:"ownIss" yaml:"ownIss"`
	// ResolverConcurrency bounds parallel per-entity history lookups.
	ResolverConcurrency int `json:"resolverConcurrency" yaml:"resolverConcurrency"`
	// Webhook controls outbound notification delivery.
	Webhook WebhookConfig `json:"webhook" yaml:"webhook"`
}

// WebhookConfig captures delivery pacing and timeouts for notification
// endpoints.
type WebhookConfig struct {
	// RatePerSecond limits posts per endpoint. Zero disables pacing.
	RatePerSecond float64 `json:"ratePerSecond" yaml:"ratePerSecond"`
	Burst         int     `json:"burst" yaml:"burst"`
	Timeout       Millis  `json:"timeoutMs" yaml:"timeoutMs"`
}

// Millis is a duration serialized as integer milliseconds.
type Millis int64

func (m Millis) Duration() time.Duration { return time.Duration(m) * time.Millisecond }

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:            ":8080",
		ResolverConcurrency: 8,
		Webhook: WebhookConfig{
			RatePerSecond: 20,
			Burst:         5,
			Timeout:       10_000,
		},
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
