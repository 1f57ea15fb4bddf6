package catalog

import (
	"regexp"
	"strings"
)

// Алиасы колонок: поддерживаем и "code/name/...", и заголовки старых выгрузок ("SKU", "ProductName", ...).
var (
	colCode        = []string{"code", "sku", "product code", "item code"}
	colName        = []string{"name", "product name", "productname", "product"}
	colDescription = []string{"description", "desc", "details"}
	colPrice       = []string{"price", "unit price", "unitprice"}
	colMOQ         = []string{"min_order_quantity", "minorderqty", "moq", "min order qty", "minimum order quantity"}
	colStock       = []string{"available_stock", "currentstock", "current stock", "stock", "qty available", "available"}
	colWarehouse   = []string{"warehouse", "location"}
)

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey: нижний регистр, служебные символы и "_" → пробел, схлопнуть пробелы.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "_", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveColumn finds the header that best matches one of aliases.
// Exact and normalized-exact matches win; otherwise a header containing an
// alias as whole words is picked, preferring the longest alias.
// Returns "" when nothing fits.
func ResolveColumn(header []string, aliases ...string) string {
	for _, a := range aliases {
		for _, h := range header {
			if h == a {
				return h
			}
		}
	}
	norm := make([]string, len(aliases))
	for i, a := range aliases {
		norm[i] = normHeaderKey(a)
	}
	for _, n := range norm {
		for _, h := range header {
			if normHeaderKey(h) == n {
				return h
			}
		}
	}

	best, bestScore := "", 0
	for _, h := range header {
		nk := " " + normHeaderKey(h) + " "
		for _, n := range norm {
			if n != "" && strings.Contains(nk, " "+n+" ") && len(n) > bestScore {
				best, bestScore = h, len(n)
			}
		}
	}
	return best
}

type columns struct {
	code, name, description, price, moq, stock, warehouse string
}

func resolveColumns(header []string) (columns, []string) {
	c := columns{
		code:        ResolveColumn(header, colCode...),
		name:        ResolveColumn(header, colName...),
		description: ResolveColumn(header, colDescription...),
		price:       ResolveColumn(header, colPrice...),
		moq:         ResolveColumn(header, colMOQ...),
		stock:       ResolveColumn(header, colStock...),
		warehouse:   ResolveColumn(header, colWarehouse...),
	}
	var missing []string
	if c.code == "" {
		missing = append(missing, "code")
	}
	if c.name == "" {
		missing = append(missing, "name")
	}
	// "product code" may also contain "product"; never read one column as both.
	if c.name != "" && c.name == c.code {
		missing = append(missing, "name")
	}
	return c, missing
}
