package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DatabaseDSN string `json:"database_dsn"`
	LogLevel    string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via the -c or -config flags. If no path is given the function
// returns without touching cfg. Read or unmarshal failures panic; the
// intended usage is defaults -> parseJson -> parseFlags.
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

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
