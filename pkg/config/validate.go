package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

// Validate validates a loaded Config struct.
//
// It checks that every manager key is supported, every command is
// non-empty and no timeout is negative. Disabling every manager is allowed
// but reported as a warning.
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func (c *Config) Validate() *errors.ValidationResult {
	result := errors.NewValidationResult()

	keys := make([]string, 0, len(c.Managers))
	for key := range c.Managers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		mc := c.Managers[key]
		if !inventory.PackageManager(key).IsValid() {
			result.AddError(unknownManagerError("managers."+key, key))
			continue
		}
		validateManager(key, &mc, result)
	}

	if len(c.EnabledManagers()) == 0 {
		result.AddWarning("no package managers are enabled")
	}

	if result.HasErrors() {
		verbose.Printf("Config validation FAILED: %d errors found", len(result.Errors))
	}
	return result
}

func validateManager(name string, mc *ManagerCfg, result *errors.ValidationResult) {
	prefix := "managers." + name
	if strings.TrimSpace(mc.Command) == "" {
		err := errors.NewConfigValidationError(prefix+".command", "must not be empty")
		err.Expected = "an executable name or path, e.g. " + defaultCommand(name)
		result.AddError(err)
	}
	if mc.TimeoutSeconds < 0 {
		err := errors.NewConfigValidationError(prefix+".timeout_seconds", fmt.Sprintf("must not be negative (got %d)", mc.TimeoutSeconds))
		err.Expected = "0 (no timeout) or a positive number of seconds"
		result.AddError(err)
	}
}

func unknownManagerError(field, name string) *errors.ValidationError {
	valid := make([]string, 0, len(inventory.AllManagers()))
	for _, m := range inventory.AllManagers() {
		valid = append(valid, string(m))
	}
	err := errors.NewConfigValidationError(field, fmt.Sprintf("unknown package manager %q", name))
	err.ValidKeys = valid
	return err
}

func defaultCommand(name string) string {
	if mc, ok := loadDefaultConfig().Managers[name]; ok && mc.Command != "" {
		return mc.Command
	}
	return name
}
