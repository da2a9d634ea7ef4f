package config

import (
	"slices"
	"time"

	"github.com/ajxudir/bagpack/pkg/inventory"
)

// DefaultMaxConfigFileSize is the largest config file that will be read (1 MiB).
const DefaultMaxConfigFileSize int64 = 1 << 20

// Config is the root configuration structure.
type Config struct {
	// Parallel runs the manager probes concurrently. Defaults to false.
	Parallel *bool                 `yaml:"parallel,omitempty"`
	Managers map[string]ManagerCfg `yaml:"managers"`

	// Source is the file the configuration was loaded from, or "" for the
	// built-in defaults. It is not persisted to YAML.
	Source string `yaml:"-"`
}

// ManagerCfg holds configuration for one package manager.
type ManagerCfg struct {
	// Enabled controls whether the manager is collected. Defaults to true if not specified.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Command is the executable to run, a name resolved on PATH or a path.
	Command string `yaml:"command,omitempty"`

	// TimeoutSeconds bounds the whole probe (both of its commands).
	// 0 means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Env holds extra environment variables for the manager's commands.
	// Values may reference other variables, e.g. "$HOME/.npm-global".
	Env map[string]string `yaml:"env,omitempty"`
}

// IsEnabled returns true if the manager is enabled (defaults to true if not specified).
func (m *ManagerCfg) IsEnabled() bool {
	if m.Enabled == nil {
		return true
	}
	return *m.Enabled
}

// Timeout returns the probe timeout, or 0 when none is configured.
func (m *ManagerCfg) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// IsParallel reports whether probes should run concurrently.
func (c *Config) IsParallel() bool {
	return c.Parallel != nil && *c.Parallel
}

// SetParallel overrides the parallel setting, e.g. from the --parallel flag.
func (c *Config) SetParallel(parallel bool) {
	c.Parallel = &parallel
}

// Manager returns the settings for m and whether the manager is configured.
//
// Parameters:
//   - m: the package manager to look up
//
// Returns:
//   - ManagerCfg: the manager's settings (zero value when absent)
//   - bool: true if the manager appears in the configuration
func (c *Config) Manager(m inventory.PackageManager) (ManagerCfg, bool) {
	cfg, ok := c.Managers[string(m)]
	return cfg, ok
}

// EnabledManagers returns the configured, enabled managers in collection order.
func (c *Config) EnabledManagers() []inventory.PackageManager {
	var enabled []inventory.PackageManager
	for _, m := range inventory.AllManagers() {
		if mc, ok := c.Manager(m); ok && mc.IsEnabled() {
			enabled = append(enabled, m)
		}
	}
	return enabled
}

// OnlyManagers disables every manager not named in names.
//
// An empty list leaves the configuration unchanged. Names must be known
// managers; the first unknown name is reported as a validation error and
// nothing is changed.
//
// Parameters:
//   - names: managers to keep, e.g. []string{"npm", "pip"}
//
// Returns:
//   - error: *errors.ValidationError when a name is not a supported manager
func (c *Config) OnlyManagers(names []string) error {
	if len(names) == 0 {
		return nil
	}
	for _, name := range names {
		if !inventory.PackageManager(name).IsValid() {
			return unknownManagerError("--manager", name)
		}
	}

	disabled := false
	for key, mc := range c.Managers {
		if !slices.Contains(names, key) {
			mc.Enabled = &disabled
			c.Managers[key] = mc
		}
	}
	return nil
}
