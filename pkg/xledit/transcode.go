package xledit

import (
	"bytes"
	"fmt"
	"unicode/utf16"

	"github.com/ukaji3/xledit-go/pkg/xledit/models"
	"github.com/ukaji3/xledit-go/pkg/xledit/parser"
	"github.com/xuri/excelize/v2"
)

var packagePrefix = []byte("PK")

// Transcoder converts between container bytes and grids with fixed options.
type Transcoder struct {
	opts Options
}

// NewTranscoder creates a Transcoder.
func NewTranscoder(opts Options) Transcoder {
	return Transcoder{opts: opts}
}

// Decode decodes data with the transcoder's options.
func (t Transcoder) Decode(data []byte) (*models.Grid, error) {
	return Decode(data, t.opts)
}

// Encode encodes g under the transcoder's sheet label.
func (t Transcoder) Encode(g *models.Grid) ([]byte, error) {
	return Encode(g, t.opts.ResolvedSheetLabel())
}

// Inspect identifies the container and lists its worksheets in workbook order.
// Encrypted containers are decrypted with opts.Password when one is given.
func Inspect(data []byte, opts Options) (models.ContainerInfo, error) {
	info, err := parser.Inspect(data)
	if err != nil {
		return models.ContainerInfo{}, NewFormatError("probe", err)
	}
	if info.Kind != models.ContainerEncrypted || opts.Password == "" {
		return info, nil
	}

	plain, err := decrypt(data, opts.Password)
	if err != nil {
		return models.ContainerInfo{}, NewFormatError("decrypt", err)
	}
	inner, err := parser.Inspect(plain)
	if err != nil {
		return models.ContainerInfo{}, NewFormatError("probe", err)
	}
	inner.Kind = models.ContainerEncrypted
	return inner, nil
}

// Decode reads the first worksheet of an xlsx container into a grid.
//
// Worksheets are taken in workbook order; the others are ignored. A
// container without worksheets, or whose first worksheet is empty, yields a
// grid with no rows. Every cell becomes text. On failure the error is a
// *FormatError and no grid is returned.
func Decode(data []byte, opts Options) (*models.Grid, error) {
	info, err := parser.Inspect(data)
	if err != nil {
		return nil, NewFormatError("probe", err)
	}

	if info.Kind == models.ContainerEncrypted {
		if opts.Password == "" {
			return nil, NewFormatError("probe", ErrPasswordRequired)
		}
		if data, err = decrypt(data, opts.Password); err != nil {
			return nil, NewFormatError("decrypt", err)
		}
		if info, err = parser.Inspect(data); err != nil {
			return nil, NewFormatError("probe", err)
		}
	}

	sheetName := info.FirstSheet()
	if sheetName == "" {
		return models.NewGrid(nil), nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, NewFormatError("open", err)
	}
	defer f.Close()

	rows, err := parser.ReadRows(f, sheetName, opts.RawValues)
	if err != nil {
		return nil, NewFormatError("read", fmt.Errorf("sheet %q: %w", sheetName, err))
	}

	return models.NewGrid(rows), nil
}

// Encode writes g as a workbook with a single sheet named sheetLabel
// (DefaultSheetLabel when empty).
//
// Rows are written in order and each keeps its own length; empty cells are
// left out. Every value is stored as a string cell, escaped so that it
// decodes back to the same text. Text that would not fit in a cell once
// escaped fails with ErrCellTooLong.
func Encode(g *models.Grid, sheetLabel string) ([]byte, error) {
	if sheetLabel == "" {
		sheetLabel = DefaultSheetLabel
	}
	if g == nil {
		g = models.NewGrid(nil)
	}
	if g.RowCount() > excelize.TotalRows || g.MaxCellCount() > excelize.MaxColumns {
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrGridTooLarge, g.RowCount(), g.MaxCellCount())
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(DefaultSheetLabel, sheetLabel); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSheetLabel, sheetLabel, err)
	}

	for row := 0; row < g.RowCount(); row++ {
		for col := 0; col < g.CellCount(row); col++ {
			text := g.Cell(row, col)
			if text == "" {
				continue
			}
			cell, err := parser.CellName(row, col)
			if err != nil {
				return nil, err
			}
			stored := parser.EscapeCellText(text)
			if n := countUTF16(stored); n > excelize.TotalCellChars {
				return nil, fmt.Errorf("%w: %s holds %d characters", ErrCellTooLong, cell, n)
			}
			if err := f.SetCellStr(sheetLabel, cell, stored); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func countUTF16(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// decrypt unwraps an encrypted package.
func decrypt(data []byte, password string) ([]byte, error) {
	plain, err := excelize.Decrypt(data, &excelize.Options{Password: password})
	if err != nil {
		return nil, err
	}
	// A wrong password decrypts to noise rather than failing
	if !bytes.HasPrefix(plain, packagePrefix) {
		return nil, excelize.ErrWorkbookPassword
	}
	return plain, nil
}
