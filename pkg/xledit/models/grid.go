// Package models defines data structures for single-sheet spreadsheet editing.
package models

import (
	"github.com/tiendc/go-deepcopy"
)

// Grid is an ordered sequence of rows of text cells.
//
// Rows are sized independently. A row may be shorter than its neighbours;
// the missing trailing cells read as empty text. Row 0 is the header row
// once a grid has been decoded from a sheet.
type Grid struct {
	rows [][]string
}

// NewGrid creates a grid holding a copy of rows.
func NewGrid(rows [][]string) *Grid {
	return &Grid{rows: copyRows(rows)}
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// CellCount returns the number of cells present in the row.
// It returns 0 for a row that does not exist.
func (g *Grid) CellCount(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

// MaxCellCount returns the length of the widest row.
func (g *Grid) MaxCellCount() int {
	maxCols := 0
	for _, r := range g.rows {
		if len(r) > maxCols {
			maxCols = len(r)
		}
	}
	return maxCols
}

// Cell returns the text at (row, col), or empty text when the address is
// outside the grid.
func (g *Grid) Cell(row, col int) string {
	if col < 0 || col >= g.CellCount(row) {
		return ""
	}
	return g.rows[row][col]
}

// SetCell stores text at (row, col).
//
// Missing rows are appended as empty rows. The target row alone is padded
// with empty cells up to col; no other row changes length. Negative
// coordinates are ignored.
func (g *Grid) SetCell(row, col int, text string) {
	if row < 0 || col < 0 {
		return
	}
	for len(g.rows) <= row {
		g.rows = append(g.rows, nil)
	}
	if pad := col + 1 - len(g.rows[row]); pad > 0 {
		g.rows[row] = append(g.rows[row], make([]string, pad)...)
	}
	g.rows[row][col] = text
}

// Header returns a copy of row 0, or an empty slice when the grid has no rows.
func (g *Grid) Header() []string {
	if len(g.rows) == 0 {
		return []string{}
	}
	header := make([]string, len(g.rows[0]))
	copy(header, g.rows[0])
	return header
}

// Replace substitutes the whole content of g with a copy of other.
func (g *Grid) Replace(other *Grid) {
	if other == nil {
		g.rows = nil
		return
	}
	g.rows = copyRows(other.rows)
}

// Rows returns a deep copy of the grid's rows.
func (g *Grid) Rows() [][]string {
	return copyRows(g.rows)
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{rows: copyRows(g.rows)}
}

// Equal reports whether both grids hold the same rows, cell for cell.
// Row lengths must match; a nil row equals an empty one.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	if len(g.rows) != len(other.rows) {
		return false
	}
	for i := range g.rows {
		if len(g.rows[i]) != len(other.rows[i]) {
			return false
		}
		for j := range g.rows[i] {
			if g.rows[i][j] != other.rows[i][j] {
				return false
			}
		}
	}
	return true
}

// copyRows deep-copies rows. Copying [][]string into a value of the same
// type never fails, so the error is dropped.
func copyRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	var out [][]string
	_ = deepcopy.Copy(&out, rows)
	return out
}
