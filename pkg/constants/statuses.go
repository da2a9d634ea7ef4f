// Package constants holds display strings shared by the output packages.
package constants

// Placeholder values for table cells with no data.
const (
	// PlaceholderNA is shown when a manager reported no latest version.
	PlaceholderNA = "#N/A"

	// PlaceholderNone is shown in the UPDATE column for packages with no update.
	PlaceholderNone = "-"
)

// Status icons.
const (
	// IconSuccess marks a current package or a passed check.
	IconSuccess = "🟢"

	// IconWarning marks an outdated package.
	IconWarning = "🟠"

	// IconError marks a failed manager or check.
	IconError = "❌"

	// IconNotConfigured marks a package whose state could not be determined
	// or a manager that is disabled.
	IconNotConfigured = "⚪"

	// IconWarn prefixes warning lines.
	IconWarn = "⚠️"

	// IconLightbulb prefixes hints.
	IconLightbulb = "💡"
)

// Update type labels with their icons, from most to least disruptive.
const (
	UpdateMajorLabel = "🔴 major"
	UpdateMinorLabel = "🟡 minor"
	UpdatePatchLabel = "🔵 patch"
)
