package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// Каталоги из старых ERP приходят в cp1252/cp1251; UTF-8 пробуем первым.
var xlsCharsets = []string{"utf-8", "windows-1252", "windows-1251"}

// Row.LastCol() в BIFF-файлах врёт, поэтому ширину ищем сами в этих пределах.
const xlsProbeCols = 512

func readXLS(r io.Reader, headerRow int) (Table, error) {
	if headerRow < 1 {
		return Table{}, errors.New("headerRow must be 1-based and >= 1")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	wb, err := openXLS(b)
	if err != nil {
		return Table{}, err
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		if grid := xlsGrid(sheet); hasContent(grid) {
			return toTable(grid, headerRow)
		}
	}
	return Table{}, nil
}

func openXLS(b []byte) (*xls.WorkBook, error) {
	lastErr := errors.New("xls: failed to open workbook")
	for _, cs := range xlsCharsets {
		wb, err := xls.OpenReader(bytes.NewReader(b), cs)
		if err == nil && wb != nil {
			return wb, nil
		}
		if err != nil {
			lastErr = err
		}
	}
	return nil, lastErr
}

// xlsGrid reads a sheet into a rectangular grid as wide as its widest
// non-empty cell.
func xlsGrid(sheet *xls.WorkSheet) [][]string {
	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		var cells []string
		if row := sheet.Row(i); row != nil {
			for j := 0; j < xlsProbeCols; j++ {
				v := normalizeCell(row.Col(j))
				if v == "" {
					continue
				}
				for len(cells) < j {
					cells = append(cells, "")
				}
				cells = append(cells, v)
			}
		}
		width = max(width, len(cells))
		grid = append(grid, cells)
	}
	for i, cells := range grid {
		if pad := width - len(cells); pad > 0 {
			grid[i] = append(cells, make([]string, pad)...)
		}
	}
	return grid
}
