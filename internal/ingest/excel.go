package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelRows returns the cells of the first sheet that has any rows.
// Cells are handed over as-is; they never go back through text parsing.
func ExcelRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrNotText, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, ErrEmptyContent
}
