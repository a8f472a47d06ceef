package xledit

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xledit-go/pkg/xledit/models"
	"github.com/xuri/excelize/v2"
)

func loadedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(DefaultOptions())
	require.NoError(t, s.Load(sampleWorkbook(t), "report.xlsx"))
	return s
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := NewSession(DefaultOptions())

	assert.False(t, s.Loaded())
	assert.Equal(t, "", s.Name())
	assert.Equal(t, 0, s.RowCount())
	assert.Equal(t, []string{}, s.Header())
	assert.Equal(t, "", s.Cell(0, 0))
}

func TestEditWithoutLoad(t *testing.T) {
	s := NewSession(DefaultOptions())

	err := s.Edit(0, 0, "x")
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.False(t, s.Loaded())
	assert.Equal(t, 0, s.RowCount())
	assert.Equal(t, "", s.Cell(0, 0))
}

func TestSaveWithoutLoad(t *testing.T) {
	s := NewSession(DefaultOptions())

	data, name, err := s.Save("out.xlsx")
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.Nil(t, data)
	assert.Empty(t, name)
}

func TestLoadFailurePreservesState(t *testing.T) {
	s := loadedSession(t)
	require.NoError(t, s.Edit(1, 1, "edited"))
	before := s.Rows()

	err := s.Load([]byte("definitely not a workbook"), "broken.xlsx")
	require.ErrorIs(t, err, ErrInvalidFormat)

	assert.True(t, s.Loaded())
	assert.Equal(t, "report.xlsx", s.Name())
	assert.Equal(t, before, s.Rows())
	assert.Equal(t, "edited", s.Cell(1, 1))
}

func TestLoadReplacesDocument(t *testing.T) {
	s := loadedSession(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "only"))
	require.NoError(t, s.Load(writeWorkbook(t, f), "second.xlsx"))

	assert.Equal(t, "second.xlsx", s.Name())
	assert.Equal(t, [][]string{{"only"}}, s.Rows())
}

func TestEditThenSaveRoundTrip(t *testing.T) {
	s := loadedSession(t)

	require.NoError(t, s.Edit(2, 3, "new score"))
	require.NoError(t, s.Edit(8, 1, "appended"))
	assert.Equal(t, 9, s.RowCount())
	assert.Equal(t, 4, s.CellCount(2))
	assert.Equal(t, 0, s.CellCount(7))

	data, name, err := s.Save("")
	require.NoError(t, err)
	assert.Equal(t, "report.xlsx", name)

	g, err := Decode(data, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "new score", g.Cell(2, 3))
	assert.Equal(t, "appended", g.Cell(8, 1))
	assert.Equal(t, s.Header(), g.Header())
}

func TestEditInvalidAddress(t *testing.T) {
	s := loadedSession(t)
	before := s.Rows()

	tests := []struct {
		name string
		row  int
		col  int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"past last row", excelize.TotalRows, 0},
		{"past last column", 0, excelize.MaxColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Edit(tt.row, tt.col, "x"), ErrInvalidAddress)
		})
	}
	assert.Equal(t, before, s.Rows())
}

func TestSaveNameResolution(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		loadedAs  string
		preferred string
		want      string
	}{
		{"preferred wins", DefaultOptions(), "in.xlsx", "out.xlsx", "out.xlsx"},
		{"loaded name", DefaultOptions(), "in.xlsx", "", "in.xlsx"},
		{"default constant", DefaultOptions(), "", "", DefaultName},
		{"zero options fall back", Options{}, "", "", DefaultName},
		{"configured default", Options{DefaultName: "edited.xlsx"}, "", "", "edited.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.opts)
			require.NoError(t, s.Load(sampleWorkbook(t), tt.loadedAs))

			_, got, err := s.Save(tt.preferred)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveDoesNotMutate(t *testing.T) {
	s := loadedSession(t)
	require.NoError(t, s.Edit(4, 6, "tail"))
	before := s.Rows()

	first, _, err := s.Save("")
	require.NoError(t, err)
	second, _, err := s.Save("")
	require.NoError(t, err)

	assert.Equal(t, before, s.Rows())
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
}

func TestSaveUsesSheetLabel(t *testing.T) {
	opts := DefaultOptions()
	opts.SheetLabel = "Edited"
	s := NewSession(opts)
	require.NoError(t, s.Load(sampleWorkbook(t), "in.xlsx"))

	data, _, err := s.Save("")
	require.NoError(t, err)

	info, err := Inspect(data, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Edited"}, info.Sheets)
}

func TestSessionReadsAreCopies(t *testing.T) {
	s := loadedSession(t)

	rows := s.Rows()
	rows[0][0] = "changed"
	header := s.Header()
	header[1] = "changed"

	assert.Equal(t, "id", s.Cell(0, 0))
	assert.Equal(t, "name", s.Cell(0, 1))
}

func TestSessionConcurrentEdits(t *testing.T) {
	s := loadedSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			for row := 10; row < 20; row++ {
				_ = s.Edit(row, col, "w")
			}
			_, _, _ = s.Save("")
		}(i)
	}
	wg.Wait()

	for row := 10; row < 20; row++ {
		assert.Equal(t, 8, s.CellCount(row))
	}
}

func TestSummary(t *testing.T) {
	s := loadedSession(t)

	sum := s.Summary()
	assert.Equal(t, "report.xlsx", sum.Name)
	assert.Equal(t, 6, sum.Rows)
	assert.Equal(t, 4, sum.Cols)
	assert.Equal(t, "A1:D6", sum.UsedRange)
	assert.Equal(t, []string{"id", "name", "joined", "score"}, sum.Header)
	assert.Equal(t, 13, sum.Filled)
}

func TestDescribeEmpty(t *testing.T) {
	sum := Describe("", models.NewGrid(nil))
	assert.Equal(t, 0, sum.Rows)
	assert.Equal(t, "", sum.UsedRange)
	assert.Equal(t, []string{}, sum.Header)

	assert.Equal(t, 0, Describe("x", nil).Rows)
}

func TestEditCellTooLong(t *testing.T) {
	s := loadedSession(t)
	before := s.Rows()

	err := s.Edit(1, 0, strings.Repeat("q", 33000))
	assert.ErrorIs(t, err, ErrCellTooLong)
	err = s.Edit(1, 0, strings.Repeat("q", excelize.TotalCellChars-3)+"\x02")
	assert.ErrorIs(t, err, ErrCellTooLong)
	assert.Equal(t, before, s.Rows())
}

func TestEditAtLengthLimitSurvivesSave(t *testing.T) {
	s := loadedSession(t)
	long := strings.Repeat("q", excelize.TotalCellChars)
	require.NoError(t, s.Edit(1, 0, long))

	data, _, err := s.Save("")
	require.NoError(t, err)

	g, err := Decode(data, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, long, g.Cell(1, 0))
}
