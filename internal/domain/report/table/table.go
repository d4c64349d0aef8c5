// Package table holds the in-memory tabular model produced by the loader.
// A Table lives for a single report pass and is discarded afterwards.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a single tagged cell value: either raw text, exactly as the source
// file carried it, or a native number decoded by a spreadsheet reader.
type Cell struct {
	text    string
	num     float64
	numeric bool
}

// Text creates a raw-text cell. Leading zeros and locale formatting are preserved.
func Text(s string) Cell {
	return Cell{text: s}
}

// Number creates a native-numeric cell.
func Number(f float64) Cell {
	return Cell{num: f, numeric: true}
}

// IsNumber reports whether the cell carries a native numeric value.
func (c Cell) IsNumber() bool {
	return c.numeric
}

// Float returns the native numeric value. Zero for text cells.
func (c Cell) Float() float64 {
	return c.num
}

// String returns the raw text, or a plain decimal rendering for numeric cells.
func (c Cell) String() string {
	if c.numeric {
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	}
	return c.text
}

// IsEmpty reports whether the cell is text containing only whitespace.
func (c Cell) IsEmpty() bool {
	return !c.numeric && strings.TrimSpace(c.text) == ""
}

// Table is an ordered sequence of named columns over row-major cell storage.
type Table struct {
	headers []string
	rows    [][]Cell
}

// New builds a table from a header row and data rows. Short rows are padded
// with empty cells so every row matches the header width.
func New(headers []string, rows [][]Cell) *Table {
	width := len(headers)
	normalized := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			normalized[i] = row[:width]
			continue
		}
		padded := make([]Cell, width)
		copy(padded, row)
		normalized[i] = padded
	}
	return &Table{headers: headers, rows: normalized}
}

// TrimHeaders strips surrounding whitespace from every column name.
// Names must remain unique after trimming.
func (t *Table) TrimHeaders() error {
	seen := make(map[string]struct{}, len(t.headers))
	for i, h := range t.headers {
		trimmed := strings.TrimSpace(h)
		if _, dup := seen[trimmed]; dup {
			return fmt.Errorf("duplicate column name %q after trimming", trimmed)
		}
		seen[trimmed] = struct{}{}
		t.headers[i] = trimmed
	}
	return nil
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	return t.headers
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.headers)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// ColumnIndex returns the index of the named column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Row returns the cells of row i.
func (t *Table) Row(i int) []Cell {
	return t.rows[i]
}

// Cell returns the cell at the given row and column.
func (t *Table) Cell(row, col int) Cell {
	return t.rows[row][col]
}

// Filter returns a new table sharing this table's headers and containing only
// the rows the predicate accepts.
func (t *Table) Filter(keep func(row []Cell) bool) *Table {
	filtered := make([][]Cell, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			filtered = append(filtered, row)
		}
	}
	return &Table{headers: t.headers, rows: filtered}
}

// Strings renders all rows as raw strings, for display and diagnostics.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.String()
		}
		out[i] = cells
	}
	return out
}
