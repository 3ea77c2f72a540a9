package config

import "time"

// Config holds runtime settings for the Foody client.
//
// Fields:
//   - GatewayBaseURL: base URL of the hosted gateway (identity/catalog/payment).
//   - RequestTimeout: per-request HTTP timeout applied by the gateway client.
type Config struct {
	GatewayBaseURL string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults pointing at a locally
// running dev gateway.
func (c *Config) LoadDefaults() {
	c.GatewayBaseURL = "http://127.0.0.1:8790"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
