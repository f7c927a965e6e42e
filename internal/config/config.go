package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for clockhand, stored in
// ~/.clockhand/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	Harvest HarvestConfig `json:"harvest"`
	Watch   WatchConfig   `json:"watch"`
}

// HarvestConfig holds the Harvest v2 API credentials.
type HarvestConfig struct {
	// Token is a personal access token from https://id.getharvest.com/developers.
	Token string `json:"token"`
	// AccountID is the numeric Harvest account the token belongs to.
	AccountID int64 `json:"account_id"`
	// BaseURL overrides the API endpoint; empty means the public API.
	BaseURL string `json:"base_url"`
}

// WatchConfig holds defaults for the watch command.
type WatchConfig struct {
	// IntervalSeconds is the polling interval between directory scans.
	IntervalSeconds int `json:"interval_seconds"`
}

// DefaultIntervalSeconds is the watch polling interval used when neither
// the config file nor the -i flag specifies one. Sub-second polling of
// large trees is wasteful, not incorrect; a minute is a sensible floor.
const DefaultIntervalSeconds = 60

// defaultConfig returns a Config pre-filled with built-in defaults.
func defaultConfig() Config {
	return Config{
		Watch: WatchConfig{IntervalSeconds: DefaultIntervalSeconds},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// clockhand configuration – ~/.clockhand/config.json
//
// Fill in the Harvest credentials before using any command.
{
  // ── Harvest API ──────────────────────────────────────────────────────────
  "harvest": {
    // Personal access token. Create one at https://id.getharvest.com/developers.
    "token": "",

    // The numeric account ID shown next to the token.
    "account_id": 0,

    // API endpoint override; leave empty for the public Harvest API.
    "base_url": ""
  },

  // ── watch command ────────────────────────────────────────────────────────
  "watch": {
    // Polling interval in seconds.
    // Can be overridden per run with: clockhand watch -i <seconds>
    "interval_seconds": 60
  }
}
`

// FilePath returns the path to ~/.clockhand/config.json.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".clockhand", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.clockhand/config.json, creating it with annotated defaults
// on first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Watch.IntervalSeconds <= 0 {
		cfg.Watch.IntervalSeconds = DefaultIntervalSeconds
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
