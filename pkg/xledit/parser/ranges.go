package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellName converts zero-based coordinates to A1 notation.
func CellName(row, col int) (string, error) {
	return excelize.CoordinatesToCellName(col+1, row+1)
}

// ParseCellName converts an A1 reference (absolute markers allowed) to
// zero-based coordinates.
func ParseCellName(name string) (row, col int, err error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "$", "")

	c, r, err := excelize.CellNameToCoordinates(name)
	if err != nil {
		return 0, 0, err
	}
	return r - 1, c - 1, nil
}

// UsedRange returns the bounding box of non-empty cells (e.g. "A1:D10"),
// or "" when every cell is empty.
func UsedRange(rows [][]string) string {
	b, ok := dataBox(rows)
	if !ok {
		return ""
	}

	startCell, _ := CellName(b.top, b.left)
	endCell, _ := CellName(b.bottom, b.right)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// CountFilled counts non-empty cells.
func CountFilled(rows [][]string) int {
	n := 0
	for _, row := range rows {
		for _, cell := range row {
			if cell != "" {
				n++
			}
		}
	}
	return n
}

// box is an inclusive zero-based cell rectangle.
type box struct {
	top, bottom, left, right int
}

// dataBox returns the smallest box holding every non-empty cell.
func dataBox(rows [][]string) (box, bool) {
	b := box{top: -1, left: -1}
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if b.top < 0 {
				b.top = r
			}
			b.bottom = r
			if b.left < 0 || c < b.left {
				b.left = c
			}
			if c > b.right {
				b.right = c
			}
		}
	}
	return b, b.top >= 0
}
