package config

import (
	"encoding/json"
	"os"

	"github.com/quickshcc/quicksh/internal/flagx"
	"github.com/quickshcc/quicksh/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	DownloadDir    string         `json:"download_dir"`
	DefaultExpire  *int           `json:"default_expire"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. With no such flag nothing is loaded. Only the
// fields present in the file override the defaults. Read or unmarshal
// errors panic; the config chain runs before anything else has started.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.DefaultExpire != nil {
		cfg.DefaultExpire = *jc.DefaultExpire
	}
}
