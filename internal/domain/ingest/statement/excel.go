package statement

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// RowsFromWorkbook reads the first sheet of an XLSX workbook into raw
// records, header row included, for the CSV normalizer to consume. Formula
// cells yield their computed values.
func RowsFromWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
