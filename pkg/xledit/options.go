// Package xledit loads the first worksheet of an xlsx workbook into an
// editable text grid and writes the grid back as a single-sheet workbook.
//
// Decoding is a structural transform, not a byte-level round trip. Numbers
// and dates are read as their displayed text, and formulas, styles, merged
// cells and every sheet but the first are dropped. Encoding writes every
// value back as a string cell. Decoding the encoded bytes again yields the
// same text grid, but never the original file.
package xledit

// DefaultSheetLabel is the sheet name used when encoding without a label.
const DefaultSheetLabel = "Sheet1"

// DefaultName is the output name used when saving a document that was
// loaded without a name.
const DefaultName = "Updated_File.xlsx"

// Options configures decoding and saving.
type Options struct {
	// SheetLabel names the single sheet written on save.
	// If empty, DefaultSheetLabel is used.
	SheetLabel string
	// DefaultName is the fallback output name on save.
	// If empty, DefaultName is used.
	DefaultName string
	// RawValues reads stored cell values instead of their formatted text.
	RawValues bool
	// Password decrypts encrypted workbooks.
	Password string
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		SheetLabel:  DefaultSheetLabel,
		DefaultName: DefaultName,
	}
}

// ResolvedSheetLabel returns the sheet label to encode with.
func (o Options) ResolvedSheetLabel() string {
	if o.SheetLabel != "" {
		return o.SheetLabel
	}
	return DefaultSheetLabel
}

// ResolvedDefaultName returns the fallback output name.
func (o Options) ResolvedDefaultName() string {
	if o.DefaultName != "" {
		return o.DefaultName
	}
	return DefaultName
}
