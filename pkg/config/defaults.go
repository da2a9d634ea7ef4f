package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// If unmarshaling fails, returns an empty config with an initialized
// Managers map.
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil && cfg.Managers != nil {
		return &cfg
	}
	return &Config{Managers: make(map[string]ManagerCfg)}
}

// Default returns a fresh copy of the built-in configuration.
//
// Every call returns a new value, so callers may modify it freely.
func Default() *Config {
	return loadDefaultConfig()
}

// GetDefaultConfig returns the embedded default configuration YAML.
func GetDefaultConfig() string {
	return defaultConfigYAML
}
