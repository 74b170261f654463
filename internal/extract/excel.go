package extract

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// rowsFromExcel returns the rows of every sheet, in sheet order.
func rowsFromExcel(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var all [][]string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		all = append(all, rows...)
	}
	return all, nil
}
