package fileio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a parsed sheet: the header row and every non-empty data row keyed by header.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// ReadAny выберет парсер по расширению. headerRow: номер строки заголовков (1-based).
func ReadAny(r io.Reader, filename string, headerRow int) (Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return Table{}, fmt.Errorf("unsupported file: %s", filename)
	}
}

// ReadFile opens path and parses it with ReadAny.
func ReadFile(path string, headerRow int) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return ReadAny(f, filepath.Base(path), headerRow)
}

// ErrHeaderRow means the configured header row is not in the sheet.
var ErrHeaderRow = errors.New("header row out of range")

// pickHeader берёт строку заголовков (headerRow уже проверен) и подставляет Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	h := rows[headerRow-1]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// toTable converts rows to a Table, skipping fully empty data rows. No rows at
// all is an empty Table; a header row past the end is ErrHeaderRow.
func toTable(rows [][]string, headerRow int) (Table, error) {
	if len(rows) == 0 {
		return Table{}, nil
	}
	if headerRow < 1 || headerRow > len(rows) {
		return Table{}, fmt.Errorf("%w: row %d of %d", ErrHeaderRow, headerRow, len(rows))
	}
	headers := pickHeader(rows, headerRow)
	t := Table{Header: headers}
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			t.Rows = append(t.Rows, m)
		}
	}
	return t, nil
}

// normalizeCell trims whitespace, including NBSP that spreadsheet exports leave behind.
func normalizeCell(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\u00a0\u202f"))
}

func hasContent(rows [][]string) bool {
	for _, r := range rows {
		for _, v := range r {
			if normalizeCell(v) != "" {
				return true
			}
		}
	}
	return false
}
