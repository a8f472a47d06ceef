package models

// Summary describes a loaded grid.
type Summary struct {
	// Name is the document name (no path).
	Name string `json:"name"`
	// Rows is the number of rows, header included.
	Rows int `json:"rows"`
	// Cols is the length of the widest row.
	Cols int `json:"cols"`
	// Filled is the number of non-empty cells.
	Filled int `json:"filled"`
	// UsedRange is the bounding box of non-empty cells in A1 notation.
	UsedRange string `json:"used_range,omitempty"`
	// Header is row 0.
	Header []string `json:"header"`
}

// GridView is a serializable copy of a grid with its header split out.
type GridView struct {
	// Name is the document name (no path).
	Name string `json:"name"`
	// Header is row 0.
	Header []string `json:"header"`
	// Rows contains every row after the header.
	Rows [][]string `json:"rows"`
}
