package xledit

import (
	"github.com/ukaji3/xledit-go/pkg/xledit/models"
	"github.com/ukaji3/xledit-go/pkg/xledit/parser"
)

// Describe summarizes a grid.
func Describe(name string, g *models.Grid) models.Summary {
	if g == nil {
		g = models.NewGrid(nil)
	}
	rows := g.Rows()
	return models.Summary{
		Name:      name,
		Rows:      g.RowCount(),
		Cols:      g.MaxCellCount(),
		Filled:    parser.CountFilled(rows),
		UsedRange: parser.UsedRange(rows),
		Header:    g.Header(),
	}
}
