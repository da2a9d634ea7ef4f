package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/versioning"
)

func sampleSummary() inventory.CollectionSummary {
	snapshot := inventory.NewSnapshot()
	snapshot.SetGeneratedAt("2025-10-05T00:00:00Z")
	snapshot.Push(
		inventory.NewRecord(inventory.ManagerBrew, "wget", "1.24.5", "1.24.6"),
		inventory.NewRecord(inventory.ManagerBrew, "jq", "1.7.1", ""),
		inventory.NewRecord(inventory.ManagerNpm, "typescript", "5.5.2", "5.6.3"),
		inventory.NewRecord(inventory.ManagerNpm, "npm", "9.9.0", "10.8.1"),
	)
	return inventory.NewSummary(snapshot, []inventory.CollectionWarning{
		{Manager: inventory.ManagerPip, Message: "pip failed to run: pip3 list --format=json: command not found"},
	})
}

// TestNewInventoryResult tests the conversion used by CSV and XML.
//
// It verifies:
//   - Packages keep collection order
//   - Counts by status and update type are correct
//   - Warnings are carried over
func TestNewInventoryResult(t *testing.T) {
	result := NewInventoryResult(sampleSummary())

	assert.Equal(t, "2025-10-05T00:00:00Z", result.GeneratedAt)
	assert.Equal(t, InventorySummary{
		TotalPackages:    4,
		OutdatedPackages: 3,
		CurrentPackages:  1,
		HasMajor:         1,
		HasMinor:         1,
		HasPatch:         1,
		FailedManagers:   1,
	}, result.Summary)

	require.Len(t, result.Packages, 4)
	assert.Equal(t, InventoryPackage{Manager: "brew", Name: "wget", Current: "1.24.5", Latest: "1.24.6", Update: "patch", Status: "outdated"}, result.Packages[0])
	assert.Equal(t, InventoryPackage{Manager: "brew", Name: "jq", Current: "1.7.1", Status: "current"}, result.Packages[1])
	assert.Equal(t, "major", result.Packages[3].Update)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "pip", result.Warnings[0].Manager)
}

// TestNewInventoryResult_Empty tests an empty collection.
func TestNewInventoryResult_Empty(t *testing.T) {
	result := NewInventoryResult(inventory.NewSummary(inventory.InventorySnapshot{}, nil))
	assert.Empty(t, result.GeneratedAt)
	assert.NotNil(t, result.Packages)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, InventorySummary{}, result.Summary)
}

// TestUpdateTypeOf tests that only outdated records are classified.
func TestUpdateTypeOf(t *testing.T) {
	assert.Equal(t, versioning.UpdateMinor, UpdateTypeOf(inventory.NewRecord(inventory.ManagerNpm, "typescript", "5.5.2", "5.6.3")))
	assert.Equal(t, versioning.UpdateNone, UpdateTypeOf(inventory.NewRecord(inventory.ManagerNpm, "npm", "10.8.1", "10.8.1")))

	unknown := inventory.NewRecord(inventory.ManagerPip, "requests", "2.32.3", "3.0.0")
	unknown.Status = inventory.StatusUnknown
	assert.Equal(t, versioning.UpdateNone, UpdateTypeOf(unknown))
}

// TestWriteInventory_JSON tests that JSON output is the summary encoding itself.
func TestWriteInventory_JSON(t *testing.T) {
	summary := sampleSummary()
	var buf bytes.Buffer
	require.NoError(t, WriteInventory(&buf, FormatJSON, summary))

	want, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), buf.String())
	assert.Contains(t, buf.String(), `"status":"outdated"`)
}

// TestWriteInventory_CSV tests the CSV header and rows.
func TestWriteInventory_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInventory(&buf, FormatCSV, sampleSummary()))
	assert.Equal(t, "MANAGER,NAME,CURRENT,LATEST,UPDATE,STATUS\n"+
		"brew,wget,1.24.5,1.24.6,patch,outdated\n"+
		"brew,jq,1.7.1,,,current\n"+
		"npm,typescript,5.5.2,5.6.3,minor,outdated\n"+
		"npm,npm,9.9.0,10.8.1,major,outdated\n", buf.String())
}

// TestWriteInventory_XML tests the XML document structure.
func TestWriteInventory_XML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInventory(&buf, FormatXML, sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, `<inventoryResult generatedAt="2025-10-05T00:00:00Z">`)
	assert.Contains(t, out, "<totalPackages>4</totalPackages>")
	assert.Contains(t, out, "<outdatedPackages>3</outdatedPackages>")
	assert.Contains(t, out, "<name>typescript</name>")
	assert.Contains(t, out, `<warning manager="pip">pip failed to run: pip3 list --format=json: command not found</warning>`)
}

// TestWriteInventory_Table tests that the table format is rejected here.
func TestWriteInventory_Table(t *testing.T) {
	err := WriteInventory(&bytes.Buffer{}, FormatTable, sampleSummary())
	assert.EqualError(t, err, "unsupported format: table")
}
