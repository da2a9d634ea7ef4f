// Package config handles configuration loading, validation, and merging for bagpack.
// A user file is layered over the embedded defaults; settings it leaves out keep
// their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ajxudir/bagpack/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// LocalConfigName is the config file looked up in the working directory.
const LocalConfigName = ".bagpack.yml"

// userConfigDir locates the per-user configuration directory.
var userConfigDir = os.UserConfigDir

// LoadConfig loads configuration from the specified path or the usual locations.
//
// Lookup order (first match wins):
//  1. configPath, when non-empty (a missing file is an error)
//  2. .bagpack.yml in workDir
//  3. bagpack/config.yml in the user config directory
//  4. the built-in defaults
//
// The file found is merged over the defaults and validated.
//
// Parameters:
//   - configPath: path to the config file, or empty to search
//   - workDir: directory searched for .bagpack.yml
//
// Returns:
//   - *Config: the loaded and merged configuration
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	path := configPath
	if path == "" {
		path = findConfigFile(workDir)
	}

	if path == "" {
		verbose.ConfigLoaded("")
		return loadDefaultConfig(), nil
	}

	custom, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg := mergeConfigs(loadDefaultConfig(), custom)
	cfg.Source = path
	if err := cfg.Validate().Err(); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	verbose.ConfigLoaded(path)
	return cfg, nil
}

// findConfigFile returns the first existing implicit config file, or "".
func findConfigFile(workDir string) string {
	candidates := []string{filepath.Join(workDir, LocalConfigName)}
	if dir, err := userConfigDir(); err == nil && dir != "" {
		candidates = append(candidates, filepath.Join(dir, "bagpack", "config.yml"))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			verbose.Infof("Found config: %s", candidate)
			return candidate
		}
	}
	return ""
}

// loadConfigFileWithLimit loads a config file with a size limit.
//
// Parameters:
//   - path: path to the config file
//   - maxSize: maximum allowed file size in bytes
//
// Returns:
//   - *Config: the parsed configuration (not merged with defaults)
//   - error: error if file is too large, not found, or has invalid YAML
func loadConfigFileWithLimit(path string, maxSize int64) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return loadConfigData(data)
}

func loadConfigFile(path string) (*Config, error) {
	return loadConfigFileWithLimit(path, DefaultMaxConfigFileSize)
}

// loadConfigData parses YAML configuration data.
//
// Unknown fields are rejected so typos such as "timeout: 30" surface
// instead of being silently ignored. An empty document is a valid, empty
// configuration.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: error if YAML is invalid or has unknown fields
func loadConfigData(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if cfg.Managers == nil {
		cfg.Managers = make(map[string]ManagerCfg)
	}

	return &cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
