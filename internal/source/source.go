// Package source extracts ordered rows of text cells from local gilt
// price documents. It owns only the container decoding; fetching the
// documents and interpreting the cells belong to other layers.
package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// WorkbookRows reads every sheet of a local workbook and returns the rows
// in sheet order. Header and footer rows are returned as-is; the parser
// filters non-data rows.
func WorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var rows [][]string

	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		rows = append(rows, sheetRows...)
	}

	return rows, nil
}

// CSVRows reads a local CSV file into rows of cells. Rows may have
// varying cell counts; ragged rows are passed through for the parser to
// judge.
func CSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return rows, nil
}
