package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/preflight"
)

var doctorConfigFlag string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the package manager commands can be found",
	Long: `Resolve the command of every enabled package manager on PATH and show
where it was found, or how to install it when it is missing.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorConfigFlag, "config", "c", "", "Config file path")
}

// runDoctor executes the doctor command.
//
// Returns:
//   - error: ExitError with ExitConfigError when the config cannot be loaded
//     or an enabled manager's command is missing
func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig(doctorConfigFlag)
	if err != nil {
		return err
	}

	report := preflight.ValidateManagers(cfg)
	report.Print(cmd.OutOrStdout())

	result := report.Result()
	if !result.HasErrors() {
		return nil
	}
	return &errors.ExitError{
		Code:    errors.ExitConfigError,
		Message: fmt.Sprintf("%d package manager command(s) not found", len(result.Errors)),
		Err:     result.Err(),
	}
}
