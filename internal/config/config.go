// Package config loads runtime settings for the clinicdesk CLI.
// Sources are applied in order: defaults, JSON file, command-line flags;
// later sources take precedence.
package config

// Config holds runtime settings for the clinicdesk CLI.
//
// Fields:
//   - DatabaseDSN: path (or sqlite DSN) of the local database file.
//   - LogLevel: minimum log level (debug|info|warn|error).
type Config struct {
	DatabaseDSN string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "clinic.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
