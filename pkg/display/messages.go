package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/bagpack/pkg/constants"
	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
)

// maxWarningWidth bounds a warning line when not in verbose mode.
const maxWarningWidth = 160

// PrintCollectionWarnings prints one line per failed manager, each followed
// by a resolution hint when one applies.
//
// Without verbose, only the first line of a message is shown, truncated.
// Does nothing if warnings is empty.
//
// Example output:
//
//	<blank line>
//	⚠️ npm: npm failed to run: npm ls -g --depth=0 --json: command not found
//	   💡 Install Node.js: https://nodejs.org/
func PrintCollectionWarnings(w io.Writer, warnings []inventory.CollectionWarning, verbose bool) {
	if len(warnings) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	for _, warning := range warnings {
		msg := warning.Message
		if !verbose {
			msg, _, _ = strings.Cut(msg, "\n")
			msg = TruncateWithEllipsis(msg, maxWarningWidth)
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", constants.IconWarn, warning.Manager, msg)
		if hint := errors.HintFor(string(warning.Manager), warning.Message); hint != "" {
			_, _ = fmt.Fprintf(w, "   %s %s\n", constants.IconLightbulb, hint)
		}
	}
}

// PrintNoPackagesMessage prints the message shown instead of an empty table.
//
// Parameters:
//   - w: Writer to output to
//   - qualifier: Optional word before "packages", e.g. "outdated"
func PrintNoPackagesMessage(w io.Writer, qualifier string) {
	if qualifier == "" {
		_, _ = fmt.Fprintln(w, "No packages found.")
		return
	}
	_, _ = fmt.Fprintf(w, "No %s packages found.\n", qualifier)
}

// PrintFooter prints the package totals and collection time under a table.
//
// Example output:
//
//	<blank line>
//	Total packages: 12 (3 outdated)
//	Generated at: 2025-10-05T00:00:00Z
func PrintFooter(w io.Writer, summary inventory.CollectionSummary) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Total packages: %d (%d outdated)\n", len(summary.Snapshot.Packages), summary.OutdatedCount())
	if summary.Snapshot.GeneratedAt != nil {
		_, _ = fmt.Fprintf(w, "Generated at: %s\n", *summary.Snapshot.GeneratedAt)
	}
}
