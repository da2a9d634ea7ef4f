// Package cmd implements the bagpack command-line interface: collecting the
// brew, npm and pip package inventory, showing outdated packages, and
// checking that the package managers can be found.
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var skipBuildChecksFlag bool

var rootCmd = &cobra.Command{
	Use:   "bagpack",
	Short: "Inventory of Homebrew, npm and pip packages",
	Long: `Collect installed packages from Homebrew, global npm and pip, and report
which ones have newer versions available.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.SetWriter(cmd.ErrOrStderr())
			verbose.Enable()
		}
		if !skipBuildChecksFlag {
			if warnings := GetBuildWarnings(); warnings != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), warnings)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersion(cmd.OutOrStdout())
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with the matching code:
//   - 0: Success
//   - 1: Partial failure (--strict and some managers failed)
//   - 2: Failure
//   - 3: Configuration or preflight error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errors.PrintErrorWithHints(rootCmd.ErrOrStderr(), []error{err}, verboseFlag)

		code := errors.GetExitCode(err)
		var partialErr *errors.PartialSuccessError
		if stderrors.As(err, &partialErr) {
			code = errors.ExitPartialFailure
			verbose.Infof("Exit code %d: partial success - %d succeeded, %d failed", code, partialErr.Succeeded, partialErr.Failed)
		} else {
			verbose.Infof("Exit code %d: %v", code, err)
		}

		exitFunc(code)
	}
}

// ExecuteTest runs the root command and returns its error instead of exiting.
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output on stderr")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build warnings (dev build, arch mismatch)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// info → config → doctor → inventory → outdated
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(outdatedCmd)
}
