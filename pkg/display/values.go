package display

import (
	"strings"

	"github.com/ajxudir/bagpack/pkg/constants"
	"github.com/ajxudir/bagpack/pkg/inventory"
)

// SafeVersionValue returns the trimmed version, or placeholder when it is blank.
//
// Example:
//
//	display.SafeVersionValue("", "#N/A")   // Returns "#N/A"
//	display.SafeVersionValue(" 1.2.3 ", "-") // Returns "1.2.3"
func SafeVersionValue(val, placeholder string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return placeholder
	}
	return val
}

// SafeLatestValue returns the record's latest version, or "#N/A" when the
// manager reported none.
func SafeLatestValue(rec inventory.PackageRecord) string {
	return SafeVersionValue(rec.Latest(), constants.PlaceholderNA)
}

// TruncateWithEllipsis shortens s to maxLen runes ending in "...".
//
// maxLen is raised to 4 when smaller. Strings that fit are returned unchanged.
//
// Example:
//
//	display.TruncateWithEllipsis("@scope/very-long-package-name", 16)
//	// Returns "@scope/very-l..."
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
