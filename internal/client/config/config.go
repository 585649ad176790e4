package config

import "time"

// Config holds runtime settings for the quicksh CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the service's REST interface, including
//     the /api/ prefix.
//   - RequestTimeout: upper bound applied to every network operation.
//   - DatabasePath: sqlite file holding the durable client state.
//   - DownloadDir: directory (under the working directory) receiving
//     downloaded files.
//   - DefaultExpire: expiration option preselected for uploads (0..4).
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	DownloadDir    string
	DefaultExpire  int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://quicksh.cc/api/"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "quicksh.db"
	c.DownloadDir = "downloads"
	c.DefaultExpire = 1
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
