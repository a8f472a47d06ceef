package xledit

import (
	"fmt"
	"sync"

	"github.com/ukaji3/xledit-go/pkg/xledit/models"
	"github.com/ukaji3/xledit-go/pkg/xledit/parser"
	"github.com/xuri/excelize/v2"
)

// Session holds at most one loaded document: its name and its grid.
//
// The session owns the grid exclusively; readers receive copies. All
// methods are safe for concurrent use, and an edit never overlaps a save.
type Session struct {
	mu         sync.Mutex
	transcoder Transcoder
	opts       Options

	name   string
	grid   *models.Grid
	loaded bool
}

// NewSession creates an empty session.
func NewSession(opts Options) *Session {
	return &Session{
		transcoder: NewTranscoder(opts),
		opts:       opts,
		grid:       models.NewGrid(nil),
	}
}

// Load decodes data and makes it the current document under name.
// On failure the previously loaded document is left untouched.
func (s *Session) Load(data []byte, name string) error {
	grid, err := s.transcoder.Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.grid.Replace(grid)
	s.name = name
	s.loaded = true
	return nil
}

// Edit sets the text of one cell of the loaded document.
// Text too long to be saved is rejected with ErrCellTooLong.
func (s *Session) Edit(row, col int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNoDocument
	}
	if row < 0 || col < 0 || row >= excelize.TotalRows || col >= excelize.MaxColumns {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidAddress, row, col)
	}
	if n := parser.StoredLength(text); n > excelize.TotalCellChars {
		return fmt.Errorf("%w: %d characters", ErrCellTooLong, n)
	}
	s.grid.SetCell(row, col, text)
	return nil
}

// Save encodes the loaded document and resolves its output name:
// preferredName if given, else the loaded name, else the configured default.
// The grid is not modified.
func (s *Session) Save(preferredName string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, "", ErrNoDocument
	}

	data, err := s.transcoder.Encode(s.grid)
	if err != nil {
		return nil, "", err
	}
	return data, s.resolveName(preferredName), nil
}

func (s *Session) resolveName(preferredName string) string {
	switch {
	case preferredName != "":
		return preferredName
	case s.name != "":
		return s.name
	default:
		return s.opts.ResolvedDefaultName()
	}
}

// Name returns the loaded document's name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Loaded reports whether a document has been loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// RowCount returns the number of rows of the current grid.
func (s *Session) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.RowCount()
}

// CellCount returns the number of cells in a row of the current grid.
func (s *Session) CellCount(row int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.CellCount(row)
}

// Cell returns the text at (row, col), or "" outside the grid.
func (s *Session) Cell(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Cell(row, col)
}

// Header returns a copy of the header row.
func (s *Session) Header() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Header()
}

// Rows returns a copy of every row of the current grid.
func (s *Session) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Rows()
}

// Summary describes the current document.
func (s *Session) Summary() models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Describe(s.name, s.grid)
}
