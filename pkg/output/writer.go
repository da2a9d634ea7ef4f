package output

import (
	"fmt"
	"io"

	"github.com/ajxudir/bagpack/pkg/inventory"
)

// inventoryHeaders are the CSV columns, matching the table columns.
var inventoryHeaders = []string{"MANAGER", "NAME", "CURRENT", "LATEST", "UPDATE", "STATUS"}

// WriteInventory writes summary in a structured format.
//
// It performs the following operations:
//   - JSON: encodes the CollectionSummary itself, the cross-boundary form
//   - XML: encodes an InventoryResult including counts and warnings
//   - CSV: writes one row per package; the caller reports warnings separately
//
// Parameters:
//   - w: Destination writer
//   - format: FormatJSON, FormatXML, or FormatCSV
//   - summary: The collection summary to write
//
// Returns:
//   - error: When format is not structured or the write fails
func WriteInventory(w io.Writer, format Format, summary inventory.CollectionSummary) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(summary)
	case FormatXML:
		return formatter.WriteXML(NewInventoryResult(summary))
	case FormatCSV:
		return writeInventoryCSV(formatter, NewInventoryResult(summary))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeInventoryCSV(f *Formatter, result *InventoryResult) error {
	rows := make([][]string, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		rows = append(rows, []string{pkg.Manager, pkg.Name, pkg.Current, pkg.Latest, pkg.Update, pkg.Status})
	}
	return f.WriteCSV(inventoryHeaders, rows)
}
