// Package output serializes grids and summaries for display.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/xledit-go/pkg/xledit/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// NewGridView splits a grid into header and body rows.
func NewGridView(name string, g *models.Grid) models.GridView {
	view := models.GridView{
		Name:   name,
		Header: g.Header(),
		Rows:   [][]string{},
	}
	if rows := g.Rows(); len(rows) > 1 {
		for _, r := range rows[1:] {
			if r == nil {
				r = []string{}
			}
			view.Rows = append(view.Rows, r)
		}
	}
	return view
}

// GridToJSON serializes a grid as a GridView.
func GridToJSON(name string, g *models.Grid, pretty bool) ([]byte, error) {
	view := NewGridView(name, g)
	return ToJSON(&view, pretty)
}

// WriteTable writes rows as aligned, tab-separated columns.
// Tabs and newlines inside cells are escaped.
func WriteTable(w io.Writer, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escapeCell(c)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

var cellEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
