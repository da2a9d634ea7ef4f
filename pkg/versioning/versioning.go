// Package versioning classifies the distance between an installed version and
// the newest available one (major, minor, or patch).
//
// Versions that are valid semver (after padding "1.2" to "1.2.0") are
// compared with golang.org/x/mod/semver. Anything else, such as Homebrew
// revisions ("1.24.5_1") or four-part versions ("1.0.0.0"), falls back to
// the leading numeric major.minor.patch components.
package versioning

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// UpdateType describes how far the latest version is ahead of the current one.
type UpdateType string

const (
	// UpdateMajor means the major component increased.
	UpdateMajor UpdateType = "major"
	// UpdateMinor means the minor component increased.
	UpdateMinor UpdateType = "minor"
	// UpdatePatch means the patch component, a prerelease, or a package
	// revision increased.
	UpdatePatch UpdateType = "patch"
	// UpdateNone means there is no newer version, or it cannot be determined.
	UpdateNone UpdateType = ""
)

// numericPattern captures the leading major[.minor[.patch]] of a version.
var numericPattern = regexp.MustCompile(`(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Version is a parsed version string.
//
// Fields:
//   - Raw: The original string
//   - Major, Minor, Patch: Numeric components (0 when absent)
type Version struct {
	Raw   string
	Major int
	Minor int
	Patch int

	canonical string
}

// Parse parses a version string.
//
// It performs the following operations:
//   - Tries canonical semver first ("1.2" becomes "v1.2.0")
//   - Otherwise extracts the first numeric major.minor.patch run
//
// Parameters:
//   - raw: The version string, e.g. "v1.2.3", "2024.8.30", "1.24.5_1"
//
// Returns:
//   - Version: The parsed version
//   - bool: false when no numeric component could be found
func Parse(raw string) (Version, bool) {
	v := Version{Raw: raw}
	if canonical := canonicalSemver(raw); canonical != "" {
		v.canonical = canonical
		v.Major, v.Minor, v.Patch = semverParts(canonical)
		return v, true
	}

	match := numericPattern.FindStringSubmatch(raw)
	if match == nil {
		return v, false
	}
	v.Major = atoi(match[1])
	v.Minor = atoi(match[2])
	v.Patch = atoi(match[3])
	return v, true
}

// IsSemver reports whether the version was parsed as semver.
func (v Version) IsSemver() bool {
	return v.canonical != ""
}

// Compare orders two versions: -1 if v < o, 0 if equal, +1 if v > o.
//
// Two semver versions use full semver precedence (prereleases sort before
// releases). Otherwise the numeric components decide, and ties are broken
// by comparing the raw strings so that revision suffixes still order.
func (v Version) Compare(o Version) int {
	if v.IsSemver() && o.IsSemver() {
		return semver.Compare(v.canonical, o.canonical)
	}
	if c := compareInts(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareInts(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareInts(v.Patch, o.Patch); c != 0 {
		return c
	}
	return strings.Compare(v.Raw, o.Raw)
}

// Classify returns the update type from current to latest.
//
// Parameters:
//   - current: The installed version
//   - latest: The newest available version; "" when unknown
//
// Returns:
//   - UpdateType: UpdateNone when latest is empty, unparseable, or not newer
//
// Example:
//
//	Classify("1.24.5", "2.0.0")     // "major"
//	Classify("5.5.2", "5.6.3")      // "minor"
//	Classify("1.24.5_1", "1.24.5_2") // "patch"
func Classify(current, latest string) UpdateType {
	if latest == "" || current == latest {
		return UpdateNone
	}

	cur, ok := Parse(current)
	if !ok {
		return UpdateNone
	}
	next, ok := Parse(latest)
	if !ok {
		return UpdateNone
	}

	if next.Compare(cur) <= 0 {
		return UpdateNone
	}

	switch {
	case next.Major > cur.Major:
		return UpdateMajor
	case next.Major == cur.Major && next.Minor > cur.Minor:
		return UpdateMinor
	case next.Major == cur.Major && next.Minor == cur.Minor:
		return UpdatePatch
	default:
		return UpdateNone
	}
}

// canonicalSemver converts a version string to canonical semver format.
//
// A missing "v" prefix is added and semver.Canonical pads "1.2" to "v1.2.0".
// Returns "" when the string is not semver.
func canonicalSemver(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "v") {
		cleaned = "v" + cleaned
	}
	if !semver.IsValid(cleaned) {
		return ""
	}
	return semver.Canonical(cleaned)
}

// semverParts extracts major, minor, and patch from a canonical "vX.Y.Z[-pre]".
func semverParts(canonical string) (int, int, int) {
	core := strings.TrimPrefix(canonical, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.SplitN(core, ".", 3)
	var nums [3]int
	for i := range parts {
		nums[i] = atoi(parts[i])
	}
	return nums[0], nums[1], nums[2]
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func compareInts(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
