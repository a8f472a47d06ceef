package parser

import (
	"github.com/xuri/excelize/v2"
)

// ReadRows reads the rows of a sheet as text.
//
// Cells carrying a number format are rendered through it unless raw is set,
// in which case the stored value is returned. Rows missing between two
// populated rows come back empty; trailing empty cells and trailing empty
// rows are dropped, including the empty cached values of formula cells.
// Unlike File.GetRows, a malformed row is reported.
func ReadRows(f *excelize.File, sheetName string, raw bool) ([][]string, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, err
	}

	var result [][]string
	rowNum := 0
	for rows.Next() {
		rowNum++
		row, err := rows.Columns(excelize.Options{RawCellValue: raw})
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		if row = trimTrailingEmpty(row); len(row) == 0 {
			continue
		}

		// Fill the gap left by skipped rows
		for len(result) < rowNum-1 {
			result = append(result, nil)
		}
		result = append(result, row)
	}

	if err := rows.Error(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	return result, nil
}

// trimTrailingEmpty drops empty cells from the end of a row.
func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}
