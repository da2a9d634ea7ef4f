// Package display formats collection results for the terminal.
//
// Value Formatting:
//
//	latest := display.SafeLatestValue(rec)         // "#N/A" when no latest version
//	update := display.FormatUpdateType(versioning.UpdateMinor) // "🟡 minor"
//
// Status Formatting:
//
//	status := display.FormatStatus(inventory.StatusOutdated) // "🟠 outdated"
//
// Messages:
//
//	display.PrintCollectionWarnings(os.Stderr, summary.Warnings, false)
//	display.PrintNoPackagesMessage(os.Stdout, "outdated")
//
// Tables are built on pkg/output.
package display
