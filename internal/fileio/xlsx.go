package fileio

import (
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet with any content; exports often lead with a
// blank or cover sheet.
func readXLSX(r io.Reader, headerRow int) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return Table{}, fmt.Errorf("xlsx sheet %q: %w", name, err)
		}
		if hasContent(rows) {
			return toTable(rows, headerRow)
		}
	}
	return Table{}, nil
}
