// Package output renders collection results as tables or as CSV, JSON and XML
// for machine consumption.
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format is an output format selected with --output.
type Format string

const (
	// FormatTable is the default terminal table.
	FormatTable Format = "table"
	// FormatCSV writes one comma-separated row per package.
	FormatCSV Format = "csv"
	// FormatJSON writes the collection summary as compact JSON.
	FormatJSON Format = "json"
	// FormatXML writes an indented inventoryResult document.
	FormatXML Format = "xml"
)

// Formats lists every accepted format name in help-text order.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatCSV, FormatXML}
}

// ParseFormat parses a format name case-insensitively.
//
// An empty string selects FormatTable.
//
// Parameters:
//   - s: Format name (e.g. "json", "CSV")
//
// Returns:
//   - Format: The parsed format
//   - error: When s names no known format
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatTable, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (expected one of: table, json, csv, xml)", s)
}

// IsStructured reports whether f is meant for machines rather than a terminal.
func (f Format) IsStructured() bool {
	return f == FormatCSV || f == FormatJSON || f == FormatXML
}

// Formatter writes encoded data to a writer.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a formatter for format writing to w.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// Format returns the format this formatter was created with.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes a header row followed by rows.
//
// csv.Writer buffers; write errors surface from Error after Flush.
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)
	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes data as a single line of JSON followed by a newline.
func (f *Formatter) WriteJSON(data any) error {
	return json.NewEncoder(f.writer).Encode(data)
}

// WriteXML writes the XML header and data indented by two spaces.
func (f *Formatter) WriteXML(data any) error {
	if _, err := io.WriteString(f.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.writer)
	return err
}
