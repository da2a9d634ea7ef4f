package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajxudir/bagpack/pkg/config"
	"github.com/ajxudir/bagpack/pkg/constants"
	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
	configPathFlag          string
)

var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	getwdFunc      = os.Getwd
)

// loadEffectiveConfig loads the configuration the collection commands use.
//
// Parameters:
//   - configPath: Explicit config file, or empty to search the usual locations
//
// Returns:
//   - *config.Config: Defaults merged with the file found, if any
//   - error: *errors.ExitError with ExitConfigError when loading fails
func loadEffectiveConfig(configPath string) (*config.Config, error) {
	workDir, err := getwdFunc()
	if err != nil {
		workDir = "."
	}
	cfg, err := loadConfigFunc(configPath, workDir)
	if err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate or create configuration",
	Long: `Show, validate or create the bagpack configuration.

Configuration is read from --config, else .bagpack.yml in the working
directory, else bagpack/config.yml in the user config directory. Settings
are layered over the built-in defaults.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show the built-in default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show the effective merged configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create a .bagpack.yml template in the working directory")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate the configuration (rejects unknown fields)")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command.
//
// Behavior depends on flags, checked in this order:
//   - --init: Writes a .bagpack.yml template
//   - --validate: Loads and validates the configuration
//   - --show-defaults: Prints the embedded default configuration
//   - --show-effective: Prints the merged configuration as YAML
//
// Without flags the help text is shown.
func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case configInitFlag:
		return createConfigTemplate(out)
	case configValidateFlag:
		return validateConfig(out)
	case configShowDefaultsFlag:
		fmt.Fprintln(out, "Default configuration:")
		fmt.Fprintln(out)
		fmt.Fprint(out, config.GetDefaultConfig())
		return nil
	case configShowEffectiveFlag:
		return showEffectiveConfig(out)
	}

	return cmd.Help()
}

func showEffectiveConfig(out io.Writer) error {
	cfg, err := loadEffectiveConfig(configPathFlag)
	if err != nil {
		return err
	}
	rendered, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	fmt.Fprintln(out, "Effective configuration:")
	fmt.Fprintf(out, "Source: %s\n", configSource(cfg))
	fmt.Fprintln(out)
	fmt.Fprint(out, rendered)
	return nil
}

// validateConfig loads the configuration and reports the result.
//
// LoadConfig already rejects invalid files; warnings such as every manager
// being disabled are printed but do not fail the command.
func validateConfig(out io.Writer) error {
	cfg, err := loadEffectiveConfig(configPathFlag)
	if err != nil {
		fmt.Fprintf(out, "%s Configuration validation failed\n\n", constants.IconError)
		return err
	}

	result := cfg.Validate()
	if result.HasWarnings() {
		fmt.Fprintf(out, "%s Configuration valid with warnings: %s\n\n", constants.IconWarn, configSource(cfg))
		result.PrintTo(out, verbose.IsEnabled())
		return nil
	}

	fmt.Fprintf(out, "%s Configuration valid: %s\n", constants.IconSuccess, configSource(cfg))
	return nil
}

// createConfigTemplate writes the default configuration to .bagpack.yml in
// the working directory. An existing file is never overwritten.
func createConfigTemplate(out io.Writer) error {
	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}
	path := filepath.Join(workDir, config.LocalConfigName)

	if _, err := os.Stat(path); err == nil {
		return errors.NewExitErrorf(errors.ExitConfigError, "%s already exists", path)
	}

	if err := writeFileFunc(path, []byte(config.GetDefaultConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(out, "%s Created %s\n", constants.IconSuccess, path)
	return nil
}

func configSource(cfg *config.Config) string {
	if cfg.Source == "" {
		return "built-in defaults"
	}
	return cfg.Source
}
