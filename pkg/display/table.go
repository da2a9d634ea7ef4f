package display

import (
	"io"

	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/output"
)

// ColumnDef defines one table column.
//
// Fields:
//   - Name: Header text
//   - MinWidth: Minimum width in terminal cells
//   - Optional: Shown only when TableOptions enables it
type ColumnDef struct {
	Name     string
	MinWidth int
	Optional bool
}

// Schema is an ordered list of columns.
type Schema struct {
	Columns []ColumnDef
}

// TableOptions configures table creation from a schema.
//
// Fields:
//   - ShowOptional: Optional column names to show
type TableOptions struct {
	ShowOptional map[string]bool
}

var (
	// InventorySchema defines columns for the inventory command.
	InventorySchema = Schema{
		Columns: []ColumnDef{
			{Name: "MANAGER", MinWidth: 7},
			{Name: "NAME", MinWidth: 4},
			{Name: "CURRENT", MinWidth: 7},
			{Name: "LATEST", MinWidth: 6},
			{Name: "UPDATE", MinWidth: 6},
			{Name: "STATUS", MinWidth: 6},
		},
	}

	// OutdatedSchema defines columns for the outdated command. Every row is
	// outdated, so STATUS is optional.
	OutdatedSchema = Schema{
		Columns: []ColumnDef{
			{Name: "MANAGER", MinWidth: 7},
			{Name: "NAME", MinWidth: 4},
			{Name: "CURRENT", MinWidth: 7},
			{Name: "LATEST", MinWidth: 6},
			{Name: "UPDATE", MinWidth: 6},
			{Name: "STATUS", MinWidth: 6, Optional: true},
		},
	}
)

// NewTableFromSchema creates an output.Table from a schema.
func NewTableFromSchema(schema Schema, options TableOptions) *output.Table {
	table := output.NewTable()
	for _, col := range schema.Columns {
		if col.Optional {
			table.AddConditionalColumn(col.Name, options.ShowOptional[col.Name])
			continue
		}
		table.AddColumnWithMinWidth(col.Name, col.MinWidth)
	}
	return table
}

// InventoryRow returns the table cells for rec, in schema column order.
func InventoryRow(rec inventory.PackageRecord) []string {
	return []string{
		string(rec.Manager),
		rec.Name,
		SafeVersionValue(rec.CurrentVersion, "-"),
		SafeLatestValue(rec),
		FormatUpdateType(output.UpdateTypeOf(rec)),
		FormatStatus(rec.Status),
	}
}

// WriteInventoryTable renders the records of summary as a table followed by
// the footer. An empty summary prints the no-packages message instead.
//
// Parameters:
//   - w: Writer to output to
//   - schema: InventorySchema or OutdatedSchema
//   - summary: The summary to render
//   - qualifier: Passed to PrintNoPackagesMessage when there are no records
func WriteInventoryTable(w io.Writer, schema Schema, summary inventory.CollectionSummary, qualifier string) {
	if len(summary.Snapshot.Packages) == 0 {
		PrintNoPackagesMessage(w, qualifier)
		return
	}

	rows := make([][]string, 0, len(summary.Snapshot.Packages))
	for _, rec := range summary.Snapshot.Packages {
		rows = append(rows, InventoryRow(rec))
	}
	NewTableFromSchema(schema, TableOptions{}).Render(w, rows)
	PrintFooter(w, summary)
}
