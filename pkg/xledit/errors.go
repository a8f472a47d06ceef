package xledit

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xledit-go/pkg/xledit/parser"
)

// ErrInvalidFormat indicates the input bytes are not a readable xlsx container.
// Every *FormatError matches it with errors.Is.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoDocument indicates an edit or save before any successful load.
var ErrNoDocument = errors.New("no document loaded")

// ErrPasswordRequired indicates an encrypted workbook was decoded without a password.
var ErrPasswordRequired = errors.New("workbook is encrypted; password required")

// ErrUnsupportedContainer indicates a compound file that is not an encrypted
// xlsx package, such as a legacy .xls workbook.
var ErrUnsupportedContainer = parser.ErrLegacyBinary

// ErrInvalidAddress indicates a cell address outside the sheet limits.
var ErrInvalidAddress = errors.New("invalid cell address")

// ErrInvalidSheetLabel indicates a sheet name the container format rejects.
var ErrInvalidSheetLabel = errors.New("invalid sheet label")

// ErrGridTooLarge indicates a grid exceeding the container's row or column limits.
var ErrGridTooLarge = errors.New("grid exceeds sheet limits")

// ErrCellTooLong indicates cell text longer than a sheet cell can hold once stored.
var ErrCellTooLong = errors.New("cell text exceeds the cell length limit")

// FormatError represents a failure to decode container bytes.
type FormatError struct {
	Stage string // "probe", "decrypt", "open", "read"
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid xlsx format (%s): %v", e.Stage, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NewFormatError creates a new FormatError.
func NewFormatError(stage string, err error) *FormatError {
	return &FormatError{
		Stage: stage,
		Err:   err,
	}
}
