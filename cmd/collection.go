package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ajxudir/bagpack/pkg/collect"
	"github.com/ajxudir/bagpack/pkg/display"
	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/output"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

// collectFunc runs one collection pass; swapped in tests.
var collectFunc = collect.CollectWithConfig

// isTerminalFunc reports whether w is an interactive terminal.
var isTerminalFunc = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// collectionRequest carries the flags shared by inventory and outdated.
type collectionRequest struct {
	configPath string
	output     string
	managers   []string
	parallel   bool
	strict     bool

	// onlyOutdated drops current and unknown records before rendering.
	onlyOutdated bool
	schema       display.Schema
	qualifier    string
}

// runCollection loads the configuration, collects the inventory and renders it.
//
// It performs the following operations:
//   - Step 1: Validates the output format and loads the configuration
//   - Step 2: Applies --manager and --parallel to the configuration
//   - Step 3: Runs the collection, with a progress counter for table output on a terminal
//   - Step 4: Writes the table or structured document to stdout; warnings go to
//     stderr unless the document carries them (json, xml)
//   - Step 5: With --strict, turns manager failures into an exit error
//
// Returns:
//   - error: ExitError for config problems and strict-mode failures, nil otherwise
func runCollection(cmd *cobra.Command, req collectionRequest) error {
	format, err := output.ParseFormat(req.output)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	cfg, err := loadEffectiveConfig(req.configPath)
	if err != nil {
		return err
	}
	if err := cfg.OnlyManagers(req.managers); err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	if req.parallel {
		cfg.SetParallel(true)
	}

	enabled := cfg.EnabledManagers()
	verbose.Infof("Collecting from %d manager(s), parallel=%v", len(enabled), cfg.IsParallel())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []collect.Option
	var progress *output.Progress
	if !format.IsStructured() && !verbose.IsEnabled() && isTerminalFunc(cmd.ErrOrStderr()) {
		progress = output.NewProgress(cmd.ErrOrStderr(), len(enabled), "Collecting")
		opts = append(opts, collect.WithObserver(func(inventory.PackageManager, error) {
			progress.Increment()
		}))
	}

	summary := collectFunc(ctx, cfg, opts...)
	if progress != nil {
		progress.Clear()
	}

	rendered := summary
	if req.onlyOutdated {
		rendered = summary.OnlyOutdated()
	}

	if format.IsStructured() {
		if err := output.WriteInventory(cmd.OutOrStdout(), format, rendered); err != nil {
			return fmt.Errorf("failed to write %s output: %w", format, err)
		}
		// CSV has no place for warnings.
		if format == output.FormatCSV {
			display.PrintCollectionWarnings(cmd.ErrOrStderr(), summary.Warnings, verbose.IsEnabled())
		}
	} else {
		display.WriteInventoryTable(cmd.OutOrStdout(), req.schema, rendered, req.qualifier)
		display.PrintCollectionWarnings(cmd.ErrOrStderr(), summary.Warnings, verbose.IsEnabled())
	}

	if req.strict {
		return strictError(len(enabled), summary.Warnings)
	}
	return nil
}

// strictError maps manager failures to an exit error: every enabled manager
// failing is ExitFailure, some failing is a partial success.
func strictError(enabled int, warnings []inventory.CollectionWarning) error {
	failed := len(warnings)
	if failed == 0 {
		return nil
	}

	errs := make([]error, 0, failed)
	for _, w := range warnings {
		errs = append(errs, fmt.Errorf("%s", w.Message))
	}

	if failed >= enabled {
		verbose.Infof("Exit code %d: all %d manager(s) failed", errors.ExitFailure, failed)
		return errors.NewExitErrorf(errors.ExitFailure, "all %d package manager(s) failed", failed)
	}
	return errors.NewPartialSuccessError(enabled-failed, failed, errs)
}
