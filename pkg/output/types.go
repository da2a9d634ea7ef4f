package output

import (
	"encoding/xml"

	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/versioning"
)

// InventoryResult is the CSV/XML view of a collection summary.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - GeneratedAt: Collection timestamp, empty when unknown
//   - Summary: Counts by status and update type
//   - Packages: One entry per record, in collection order
//   - Warnings: One entry per failed manager (omitted if empty)
type InventoryResult struct {
	XMLName     xml.Name           `json:"-" xml:"inventoryResult"`
	GeneratedAt string             `json:"generated_at,omitempty" xml:"generatedAt,attr,omitempty"`
	Summary     InventorySummary   `json:"summary" xml:"summary"`
	Packages    []InventoryPackage `json:"packages" xml:"packages>package"`
	Warnings    []InventoryWarning `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// InventorySummary holds aggregate counts for an inventory.
//
// Fields:
//   - TotalPackages: Number of records
//   - OutdatedPackages, CurrentPackages, UnknownPackages: Counts by status
//   - HasMajor, HasMinor, HasPatch: Outdated packages by update type
//   - FailedManagers: Number of managers that produced a warning
type InventorySummary struct {
	TotalPackages    int `json:"total_packages" xml:"totalPackages"`
	OutdatedPackages int `json:"outdated_packages" xml:"outdatedPackages"`
	CurrentPackages  int `json:"current_packages" xml:"currentPackages"`
	UnknownPackages  int `json:"unknown_packages" xml:"unknownPackages"`
	HasMajor         int `json:"has_major" xml:"hasMajor"`
	HasMinor         int `json:"has_minor" xml:"hasMinor"`
	HasPatch         int `json:"has_patch" xml:"hasPatch"`
	FailedManagers   int `json:"failed_managers" xml:"failedManagers"`
}

// InventoryPackage is one package row.
//
// Fields:
//   - Manager: Manager that reported the package
//   - Name: Package name
//   - Current: Installed version
//   - Latest: Latest reported version, empty when none
//   - Update: "major", "minor", "patch", or empty
//   - Status: "current", "outdated", or "unknown"
type InventoryPackage struct {
	Manager string `json:"manager" xml:"manager"`
	Name    string `json:"name" xml:"name"`
	Current string `json:"current" xml:"current"`
	Latest  string `json:"latest" xml:"latest"`
	Update  string `json:"update" xml:"update"`
	Status  string `json:"status" xml:"status"`
}

// InventoryWarning is a manager that could not be collected.
type InventoryWarning struct {
	Manager string `json:"manager" xml:"manager,attr"`
	Message string `json:"message" xml:",chardata"`
}

// UpdateTypeOf classifies an outdated record; other records have none.
func UpdateTypeOf(rec inventory.PackageRecord) versioning.UpdateType {
	if rec.Status != inventory.StatusOutdated {
		return versioning.UpdateNone
	}
	return versioning.Classify(rec.CurrentVersion, rec.Latest())
}

// NewInventoryResult builds the CSV/XML view of summary.
//
// Parameters:
//   - summary: The collection summary to convert
//
// Returns:
//   - *InventoryResult: Packages and warnings in summary order, with counts
func NewInventoryResult(summary inventory.CollectionSummary) *InventoryResult {
	result := &InventoryResult{
		Packages: make([]InventoryPackage, 0, len(summary.Snapshot.Packages)),
	}
	if summary.Snapshot.GeneratedAt != nil {
		result.GeneratedAt = *summary.Snapshot.GeneratedAt
	}

	counts := &result.Summary
	for _, rec := range summary.Snapshot.Packages {
		update := UpdateTypeOf(rec)
		switch rec.Status {
		case inventory.StatusOutdated:
			counts.OutdatedPackages++
		case inventory.StatusCurrent:
			counts.CurrentPackages++
		default:
			counts.UnknownPackages++
		}
		switch update {
		case versioning.UpdateMajor:
			counts.HasMajor++
		case versioning.UpdateMinor:
			counts.HasMinor++
		case versioning.UpdatePatch:
			counts.HasPatch++
		}

		result.Packages = append(result.Packages, InventoryPackage{
			Manager: string(rec.Manager),
			Name:    rec.Name,
			Current: rec.CurrentVersion,
			Latest:  rec.Latest(),
			Update:  string(update),
			Status:  string(rec.Status),
		})
	}
	counts.TotalPackages = len(result.Packages)

	for _, w := range summary.Warnings {
		result.Warnings = append(result.Warnings, InventoryWarning{Manager: string(w.Manager), Message: w.Message})
	}
	counts.FailedManagers = len(result.Warnings)
	return result
}
