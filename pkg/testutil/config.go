package testutil

import (
	"github.com/ajxudir/bagpack/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfig creates a new ConfigBuilder with no managers configured.
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Managers: make(map[string]config.ManagerCfg),
		},
	}
}

// WithManager adds an enabled manager running command.
//
// Parameters:
//   - name: Manager key ("brew", "npm", "pip")
//   - command: Executable the manager's probe runs
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithManager(name, command string) *ConfigBuilder {
	b.cfg.Managers[name] = config.ManagerCfg{Command: command}
	return b
}

// WithManagerCfg adds a manager with full settings.
func (b *ConfigBuilder) WithManagerCfg(name string, mc config.ManagerCfg) *ConfigBuilder {
	b.cfg.Managers[name] = mc
	return b
}

// WithDisabled adds a disabled manager.
func (b *ConfigBuilder) WithDisabled(name, command string) *ConfigBuilder {
	disabled := false
	b.cfg.Managers[name] = config.ManagerCfg{Command: command, Enabled: &disabled}
	return b
}

// WithParallel sets the parallel flag.
func (b *ConfigBuilder) WithParallel(parallel bool) *ConfigBuilder {
	b.cfg.SetParallel(parallel)
	return b
}

// Build returns the built configuration.
//
// Returns:
//   - *config.Config: The configuration (a copy of the builder's state)
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	cfg.Managers = make(map[string]config.ManagerCfg, len(b.cfg.Managers))
	for k, v := range b.cfg.Managers {
		cfg.Managers[k] = v
	}
	return &cfg
}

// DefaultManagers returns a configuration with all three managers using
// their built-in commands.
func DefaultManagers() *config.Config {
	return NewConfig().
		WithManager("brew", "brew").
		WithManager("npm", "npm").
		WithManager("pip", "pip3").
		Build()
}
