// Package inventory defines the package records, snapshots, and summaries
// produced by a collection pass.
//
// All values are plain data: they are built by the probes and the collector
// during a single call and are not retained afterwards. The JSON encoding of
// CollectionSummary is the form handed to the desktop front end, so field
// names and enum values are part of that contract.
package inventory

import "time"

// PackageStatus is the update state of an installed package.
type PackageStatus string

const (
	// StatusCurrent indicates no newer version was reported by the manager.
	StatusCurrent PackageStatus = "current"

	// StatusOutdated indicates the manager reported a latest version that
	// differs from the installed one.
	StatusOutdated PackageStatus = "outdated"

	// StatusUnknown is reserved for sources that cannot determine update state.
	// The bundled probes never produce it.
	StatusUnknown PackageStatus = "unknown"
)

// IsValid reports whether s is one of the known statuses.
func (s PackageStatus) IsValid() bool {
	switch s {
	case StatusCurrent, StatusOutdated, StatusUnknown:
		return true
	}
	return false
}

// PackageManager identifies the manager a record was collected from.
//
// The set is closed: supporting another manager means adding a probe for it
// and registering it with the probe registry.
type PackageManager string

const (
	// ManagerBrew is the system package manager (Homebrew formulae).
	ManagerBrew PackageManager = "brew"

	// ManagerNpm is the JavaScript package manager (global npm packages).
	ManagerNpm PackageManager = "npm"

	// ManagerPip is the Python package manager.
	ManagerPip PackageManager = "pip"
)

// AllManagers returns every known manager in collection order.
//
// Returns:
//   - []PackageManager: brew, npm, pip
func AllManagers() []PackageManager {
	return []PackageManager{ManagerBrew, ManagerNpm, ManagerPip}
}

// IsValid reports whether m is one of the known managers.
func (m PackageManager) IsValid() bool {
	switch m {
	case ManagerBrew, ManagerNpm, ManagerPip:
		return true
	}
	return false
}

// Label returns the human-facing name of the manager.
//
// Returns:
//   - string: "Homebrew", "npm", "pip", or the raw value for unknown managers
func (m PackageManager) Label() string {
	switch m {
	case ManagerBrew:
		return "Homebrew"
	case ManagerNpm:
		return "npm"
	case ManagerPip:
		return "pip"
	default:
		return string(m)
	}
}

// PackageRecord describes one installed package as reported by one manager.
//
// Fields:
//   - Name: Package name as the manager reports it
//   - CurrentVersion: Installed version
//   - LatestVersion: Latest available version, nil when the manager reported none
//   - InstalledAt: Install timestamp, nil when unknown (no bundled probe supplies it)
//   - Status: Update state derived from CurrentVersion and LatestVersion
//   - Manager: The manager whose probe produced the record
type PackageRecord struct {
	Name           string         `json:"name"`
	CurrentVersion string         `json:"current_version"`
	LatestVersion  *string        `json:"latest_version"`
	InstalledAt    *string        `json:"installed_at"`
	Status         PackageStatus  `json:"status"`
	Manager        PackageManager `json:"manager"`
}

// NewRecord builds a record for an installed package and classifies it.
//
// The record is outdated when latest is non-empty and differs from current;
// otherwise it is current. An empty latest leaves LatestVersion unset.
//
// Parameters:
//   - manager: Manager that reported the package
//   - name: Package name
//   - current: Installed version
//   - latest: Latest version reported by the manager, or "" when none
//
// Returns:
//   - PackageRecord: The classified record
func NewRecord(manager PackageManager, name, current, latest string) PackageRecord {
	rec := PackageRecord{
		Name:           name,
		CurrentVersion: current,
		Status:         StatusCurrent,
		Manager:        manager,
	}
	if latest != "" {
		l := latest
		rec.LatestVersion = &l
		if latest != current {
			rec.Status = StatusOutdated
		}
	}
	return rec
}

// Latest returns the latest version or "" when unset.
func (r PackageRecord) Latest() string {
	if r.LatestVersion == nil {
		return ""
	}
	return *r.LatestVersion
}

// IsOutdated reports whether the record is marked outdated.
func (r PackageRecord) IsOutdated() bool {
	return r.Status == StatusOutdated
}

// InventorySnapshot is the timestamped package list from one collection pass.
//
// Packages are grouped by manager in collection order; within one manager the
// order is whatever the probe produced.
type InventorySnapshot struct {
	GeneratedAt *string         `json:"generated_at"`
	Packages    []PackageRecord `json:"packages"`
}

// NewSnapshot returns an empty snapshot with a non-nil package list.
func NewSnapshot() InventorySnapshot {
	return InventorySnapshot{Packages: []PackageRecord{}}
}

// Push appends records to the snapshot.
//
// Parameters:
//   - records: Records to append, in order
func (s *InventorySnapshot) Push(records ...PackageRecord) {
	s.Packages = append(s.Packages, records...)
}

// SetGeneratedAt sets the generation timestamp to an ISO-8601 string.
//
// Parameters:
//   - iso: Timestamp text, typically RFC3339
func (s *InventorySnapshot) SetGeneratedAt(iso string) {
	s.GeneratedAt = &iso
}

// Stamp sets the generation timestamp from t formatted as RFC3339 in UTC.
//
// Formatting is best-effort: when t cannot be represented (for example a
// year outside 0-9999) the timestamp is left unset and false is returned.
//
// Parameters:
//   - t: The instant to record
//
// Returns:
//   - bool: true when the timestamp was set
func (s *InventorySnapshot) Stamp(t time.Time) bool {
	text, err := t.UTC().Truncate(time.Second).MarshalText()
	if err != nil {
		s.GeneratedAt = nil
		return false
	}
	s.SetGeneratedAt(string(text))
	return true
}

// OutdatedCount returns the number of records with status outdated.
func (s InventorySnapshot) OutdatedCount() int {
	count := 0
	for _, rec := range s.Packages {
		if rec.Status == StatusOutdated {
			count++
		}
	}
	return count
}

// CountByStatus returns the number of records for each status.
func (s InventorySnapshot) CountByStatus() map[PackageStatus]int {
	counts := make(map[PackageStatus]int, 3)
	for _, rec := range s.Packages {
		counts[rec.Status]++
	}
	return counts
}

// CollectionWarning records that one manager's probe produced no data.
type CollectionWarning struct {
	Manager PackageManager `json:"manager"`
	Message string         `json:"message"`
}

// CollectionSummary is the sole result of a collection call.
//
// Fields:
//   - Snapshot: Records recovered from every probe that succeeded
//   - Warnings: One entry per probe that failed, in collection order
type CollectionSummary struct {
	Snapshot InventorySnapshot   `json:"snapshot"`
	Warnings []CollectionWarning `json:"warnings"`
}

// NewSummary wraps a snapshot and its warnings, normalizing nil slices so the
// JSON form always carries arrays.
//
// Parameters:
//   - snapshot: The assembled snapshot
//   - warnings: Warnings collected during the pass
//
// Returns:
//   - CollectionSummary: The summary returned to callers
func NewSummary(snapshot InventorySnapshot, warnings []CollectionWarning) CollectionSummary {
	if snapshot.Packages == nil {
		snapshot.Packages = []PackageRecord{}
	}
	if warnings == nil {
		warnings = []CollectionWarning{}
	}
	return CollectionSummary{Snapshot: snapshot, Warnings: warnings}
}

// OutdatedCount returns the number of outdated records in the snapshot.
func (c CollectionSummary) OutdatedCount() int {
	return c.Snapshot.OutdatedCount()
}

// HasWarnings reports whether any manager failed.
func (c CollectionSummary) HasWarnings() bool {
	return len(c.Warnings) > 0
}

// PackagesFor returns the records produced by one manager, in snapshot order.
//
// Parameters:
//   - manager: The manager to select
//
// Returns:
//   - []PackageRecord: Matching records; empty (non-nil) when none
func (c CollectionSummary) PackagesFor(manager PackageManager) []PackageRecord {
	out := []PackageRecord{}
	for _, rec := range c.Snapshot.Packages {
		if rec.Manager == manager {
			out = append(out, rec)
		}
	}
	return out
}

// WarningFor returns the warning recorded for a manager, if any.
func (c CollectionSummary) WarningFor(manager PackageManager) (CollectionWarning, bool) {
	for _, w := range c.Warnings {
		if w.Manager == manager {
			return w, true
		}
	}
	return CollectionWarning{}, false
}

// OnlyOutdated returns a copy of the summary whose snapshot keeps only the
// outdated records. Warnings and the timestamp are carried over unchanged.
func (c CollectionSummary) OnlyOutdated() CollectionSummary {
	filtered := InventorySnapshot{
		GeneratedAt: c.Snapshot.GeneratedAt,
		Packages:    []PackageRecord{},
	}
	for _, rec := range c.Snapshot.Packages {
		if rec.IsOutdated() {
			filtered.Packages = append(filtered.Packages, rec)
		}
	}
	return NewSummary(filtered, c.Warnings)
}
