package display

import (
	"github.com/ajxudir/bagpack/pkg/constants"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/versioning"
)

// StatusIcon returns the icon for a package status, or "" when unknown.
//
// Example:
//
//	display.StatusIcon(inventory.StatusCurrent)  // Returns "🟢"
//	display.StatusIcon(inventory.StatusOutdated) // Returns "🟠"
func StatusIcon(status inventory.PackageStatus) string {
	switch status {
	case inventory.StatusCurrent:
		return constants.IconSuccess
	case inventory.StatusOutdated:
		return constants.IconWarning
	case inventory.StatusUnknown:
		return constants.IconNotConfigured
	default:
		return ""
	}
}

// FormatStatus returns the status prefixed with its icon.
//
// Parameters:
//   - status: The package status
//
// Returns:
//   - string: e.g. "🟠 outdated"; statuses without an icon are returned as-is
func FormatStatus(status inventory.PackageStatus) string {
	if icon := StatusIcon(status); icon != "" {
		return icon + " " + string(status)
	}
	return string(status)
}

// FormatUpdateType returns the labelled update type, or "-" when there is none.
func FormatUpdateType(u versioning.UpdateType) string {
	switch u {
	case versioning.UpdateMajor:
		return constants.UpdateMajorLabel
	case versioning.UpdateMinor:
		return constants.UpdateMinorLabel
	case versioning.UpdatePatch:
		return constants.UpdatePatchLabel
	default:
		return constants.PlaceholderNone
	}
}
