package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"order-intake/internal/fileio"
	"order-intake/internal/utils"
)

// Index is a read-only, matcher-ready view of the catalog. It is safe for
// concurrent use once built.
type Index struct {
	entries []Entry
	byCode  map[string]int
	byName  map[string][]int // NameKey(name) -> positions
	skipped int
}

// Build normalizes raw string rows into an Index. Non-numeric price, MOQ and
// stock cells become unknown rather than failing the load. Rows with a blank
// code are skipped. Missing code/name columns or a duplicate code fail with a
// *LoadError.
func Build(header []string, rows []map[string]string) (*Index, error) {
	cols, missing := resolveColumns(header)
	if len(missing) > 0 {
		return nil, &LoadError{Missing: missing}
	}

	idx := &Index{
		entries: make([]Entry, 0, len(rows)),
		byCode:  make(map[string]int, len(rows)),
		byName:  make(map[string][]int, len(rows)),
	}
	for i, rec := range rows {
		code := strings.TrimSpace(rec[cols.code])
		if code == "" {
			idx.skipped++
			continue
		}
		if _, dup := idx.byCode[code]; dup {
			return nil, &LoadError{Err: fmt.Errorf("duplicate code %q in data row %d", code, i+1)}
		}

		e := Entry{
			Code:        code,
			Name:        strings.TrimSpace(rec[cols.name]),
			Description: cell(rec, cols.description),
			Warehouse:   cell(rec, cols.warehouse),
		}
		if cols.price != "" {
			if p, ok := utils.ParseDecimal(rec[cols.price]); ok && !p.IsNegative() {
				e.Price = decimal.NewNullDecimal(p)
			}
		}
		e.MinOrderQty = parseCount(rec, cols.moq)
		e.AvailableStock = parseCount(rec, cols.stock)
		e.SearchText = searchText(e.Name, e.Description)

		pos := len(idx.entries)
		idx.entries = append(idx.entries, e)
		idx.byCode[code] = pos
		if k := NameKey(e.Name); k != "" {
			idx.byName[k] = append(idx.byName[k], pos)
		}
	}
	return idx, nil
}

// BuildTable is Build over a parsed sheet.
func BuildTable(t fileio.Table) (*Index, error) {
	return Build(t.Header, t.Rows)
}

func cell(rec map[string]string, col string) string {
	if col == "" {
		return ""
	}
	return strings.TrimSpace(rec[col])
}

func parseCount(rec map[string]string, col string) Count {
	if col == "" {
		return Count{}
	}
	n, ok := utils.ParseCount(rec[col])
	if !ok {
		return Count{}
	}
	return KnownCount(n)
}

// Lookup returns a copy of the entry with the given code.
func (idx *Index) Lookup(code string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	pos, ok := idx.byCode[strings.TrimSpace(code)]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[pos], true
}

// LookupName returns every entry whose name equals name, ignoring case and
// repeated whitespace, in catalog order.
func (idx *Index) LookupName(name string) []Entry {
	if idx == nil {
		return nil
	}
	positions := idx.byName[NameKey(name)]
	if len(positions) == 0 {
		return nil
	}
	out := make([]Entry, len(positions))
	for i, p := range positions {
		out[i] = idx.entries[p]
	}
	return out
}

// Len is the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// At returns a copy of the i-th entry in catalog order.
func (idx *Index) At(i int) Entry { return idx.entries[i] }

// Entries returns a copy of all entries in catalog order.
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Skipped counts rows dropped for a blank code.
func (idx *Index) Skipped() int {
	if idx == nil {
		return 0
	}
	return idx.skipped
}
