package config

import (
	"maps"

	"github.com/ajxudir/bagpack/pkg/verbose"
)

// mergeConfigs merges two configurations with custom taking precedence.
//
// Managers are merged key by key; a manager only present in custom is
// added as-is (validation rejects unknown names afterwards).
//
// Parameters:
//   - base: the base configuration
//   - custom: the custom configuration that overrides base
//
// Returns:
//   - *Config: the merged configuration
func mergeConfigs(base, custom *Config) *Config {
	if custom == nil {
		return base
	}

	merged := &Config{
		Parallel: base.Parallel,
		Managers: make(map[string]ManagerCfg, len(base.Managers)),
		Source:   base.Source,
	}
	if custom.Parallel != nil {
		merged.Parallel = custom.Parallel
	}

	maps.Copy(merged.Managers, base.Managers)

	for key, mc := range custom.Managers {
		if existing, exists := merged.Managers[key]; exists {
			merged.Managers[key] = mergeManager(existing, mc)
			verbose.Printf("Manager %q: merged with defaults", key)
		} else {
			merged.Managers[key] = mc
			verbose.Printf("Manager %q: added", key)
		}
	}

	return merged
}

// mergeManager overlays the fields custom sets onto base.
//
// Env maps are merged with custom values winning per key.
func mergeManager(base, custom ManagerCfg) ManagerCfg {
	merged := base
	if custom.Enabled != nil {
		merged.Enabled = custom.Enabled
	}
	if custom.Command != "" {
		merged.Command = custom.Command
	}
	if custom.TimeoutSeconds != 0 {
		merged.TimeoutSeconds = custom.TimeoutSeconds
	}
	if len(custom.Env) > 0 {
		env := make(map[string]string, len(base.Env)+len(custom.Env))
		maps.Copy(env, base.Env)
		maps.Copy(env, custom.Env)
		merged.Env = env
	}
	return merged
}
