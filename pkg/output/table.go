package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the number of terminal cells s occupies.
// Wide runes such as CJK characters and most emoji count as two.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width terminal cells.
// Strings already at least width cells wide are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Column is one table column.
//
// Fields:
//   - Header: Header text
//   - Width: Current width in terminal cells
//   - hidden: Excluded from rendering
type Column struct {
	Header string
	Width  int
	hidden bool
}

// Table is a left-aligned text table whose columns grow to fit their widest
// value. Widths are measured in terminal cells, so status icons and
// non-ASCII package names line up.
//
// Example:
//
//	output.NewTable().
//		AddColumnWithMinWidth("NAME", 0).
//		AddColumnWithMinWidth("CURRENT", 0).
//		Render(os.Stdout, [][]string{{"typescript", "5.5.2"}})
type Table struct {
	columns []Column
}

const columnSeparator = "  "

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddColumnWithMinWidth appends a column at least minWidth cells wide.
func (t *Table) AddColumnWithMinWidth(header string, minWidth int) *Table {
	t.columns = append(t.columns, Column{Header: header, Width: max(DisplayWidth(header), minWidth)})
	return t
}

// AddConditionalColumn appends a column that is only rendered when visible.
// Rows still carry a value for it.
func (t *Table) AddConditionalColumn(header string, visible bool) *Table {
	t.columns = append(t.columns, Column{Header: header, Width: DisplayWidth(header), hidden: !visible})
	return t
}

// UpdateWidths widens columns to fit one row of values.
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		if w := DisplayWidth(val); w > t.columns[i].Width {
			t.columns[i].Width = w
		}
	}
	return t
}

// Render sizes the columns for rows, then writes the header, the separator,
// and every row to w.
//
// Rows must carry a value for hidden columns too. Missing trailing values
// render as blanks.
func (t *Table) Render(w io.Writer, rows [][]string) {
	for _, row := range rows {
		t.UpdateWidths(row...)
	}
	_, _ = fmt.Fprintln(w, t.headerRow())
	_, _ = fmt.Fprintln(w, t.separatorRow())
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, t.formatRow(row...))
	}
}

func (t *Table) headerRow() string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return t.formatRow(headers...)
}

func (t *Table) separatorRow() string {
	var parts []string
	for _, col := range t.columns {
		if !col.hidden {
			parts = append(parts, strings.Repeat("-", col.Width))
		}
	}
	return strings.Join(parts, columnSeparator)
}

// formatRow pads values to their column widths and joins the visible ones.
// Trailing spaces of the last column are trimmed.
func (t *Table) formatRow(values ...string) string {
	var parts []string
	for i, col := range t.columns {
		if col.hidden {
			continue
		}
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts = append(parts, PadRight(val, col.Width))
	}
	return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
}
