// Package config provides configuration for the drug name resolution
// engine: dataset source, index tuning knobs, and the HTTP hosting surface.
// Settings are read from an optional YAML file with environment-variable
// overrides, and every field has a sensible default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the top-level configuration.
type Settings struct {
	Dataset DatasetSettings `yaml:"dataset"`
	Engine  EngineSettings  `yaml:"engine"`
	Server  ServerSettings  `yaml:"server"`
	Logging LoggingSettings `yaml:"logging"`
	Metrics MetricsSettings `yaml:"metrics"`
}

// DatasetSettings describes where the reference drug dataset is fetched
// from. The source is a flat CSV list of records; see internal/loader.
type DatasetSettings struct {
	URL          string        `yaml:"url"`
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
}

// EngineSettings holds the resolver tuning knobs.
type EngineSettings struct {
	// PrefixCap bounds the longest word-prefix stored in the token index.
	PrefixCap int `yaml:"prefixCap"`
	// FuzzyScanCap bounds how many records the edit-distance tier may
	// scan per query. A full-dataset scan is expressly avoided for latency.
	FuzzyScanCap int `yaml:"fuzzyScanCap"`
	// MaxEditDistance is the default distance budget for fuzzy search when
	// the caller does not supply one.
	MaxEditDistance int `yaml:"maxEditDistance"`
	// DefaultLimit and MaxLimit bound the result count of HTTP queries.
	DefaultLimit int `yaml:"defaultLimit"`
	MaxLimit     int `yaml:"maxLimit"`
	// ExtraAliases is merged over the built-in alias table.
	ExtraAliases map[string]string `yaml:"extraAliases"`
}

// ServerSettings holds HTTP server settings.
type ServerSettings struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingSettings controls structured logging level and output format.
type LoggingSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// MetricsSettings controls the Prometheus /metrics endpoint.
type MetricsSettings struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML settings file (if path is non-empty) and applies
// environment-variable overrides and defaults.
func Load(path string) (*Settings, error) {
	settings := &Settings{}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's flag, not user input
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	settings.applyEnvOverrides()
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return settings, nil
}

// ApplyDefaults fills in default values for any unset field.
func (s *Settings) ApplyDefaults() {
	if s.Dataset.FetchTimeout == 0 {
		s.Dataset.FetchTimeout = 30 * time.Second
	}
	if s.Engine.PrefixCap == 0 {
		s.Engine.PrefixCap = 12
	}
	if s.Engine.FuzzyScanCap == 0 {
		s.Engine.FuzzyScanCap = 2000
	}
	if s.Engine.MaxEditDistance == 0 {
		s.Engine.MaxEditDistance = 2
	}
	if s.Engine.DefaultLimit == 0 {
		s.Engine.DefaultLimit = 10
	}
	if s.Engine.MaxLimit == 0 {
		s.Engine.MaxLimit = 50
	}
	if s.Server.Port == 0 {
		s.Server.Port = 8080
	}
	if s.Server.ReadTimeout == 0 {
		s.Server.ReadTimeout = 10 * time.Second
	}
	if s.Server.WriteTimeout == 0 {
		s.Server.WriteTimeout = 10 * time.Second
	}
	if s.Server.ShutdownTimeout == 0 {
		s.Server.ShutdownTimeout = 15 * time.Second
	}
	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	if s.Logging.Format == "" {
		s.Logging.Format = "text"
	}
}

// Validate returns a list of configuration problems. An empty list means the
// settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	if s.Engine.PrefixCap < 2 {
		problems = append(problems, "engine.prefixCap must be at least 2")
	}
	if s.Engine.FuzzyScanCap < 0 {
		problems = append(problems, "engine.fuzzyScanCap cannot be negative")
	}
	if s.Engine.MaxEditDistance < 0 {
		problems = append(problems, "engine.maxEditDistance cannot be negative")
	}
	if s.Engine.DefaultLimit <= 0 {
		problems = append(problems, "engine.defaultLimit must be positive")
	}
	if s.Engine.MaxLimit < s.Engine.DefaultLimit {
		problems = append(problems, "engine.maxLimit cannot be smaller than engine.defaultLimit")
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		problems = append(problems, "server.port must be in (0, 65535]")
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "logging.level must be one of debug, info, warn, error")
	}
	switch s.Logging.Format {
	case "text", "json":
	default:
		problems = append(problems, "logging.format must be text or json")
	}
	return problems
}

// applyEnvOverrides lets deployment environments override file values
// without editing the file.
func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv("DRUGRESOLVER_DATASET_URL"); v != "" {
		s.Dataset.URL = v
	}
	if v := os.Getenv("DRUGRESOLVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Server.Port = port
		}
	}
	if v := os.Getenv("DRUGRESOLVER_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv("DRUGRESOLVER_LOG_FORMAT"); v != "" {
		s.Logging.Format = v
	}
	if v := os.Getenv("DRUGRESOLVER_METRICS_ENABLED"); v != "" {
		s.Metrics.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
}
