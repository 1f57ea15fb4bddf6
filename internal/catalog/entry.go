package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Count is a non-negative whole number that may be unknown.
// Unknown is distinct from zero: checks treat it as "do not block".
type Count struct {
	Value int
	Valid bool
}

// KnownCount returns a valid Count.
func KnownCount(n int) Count { return Count{Value: n, Valid: true} }

// MarshalJSON renders unknown as null.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(c.Value), 10), nil
}

// Entry is one catalog product. It holds no pointers into the Index, so a
// copy stays valid after the catalog is reloaded.
type Entry struct {
	Code           string              `json:"code"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	Price          decimal.NullDecimal `json:"price"`
	MinOrderQty    Count               `json:"min_order_quantity"`
	AvailableStock Count               `json:"available_stock"`
	Warehouse      string              `json:"warehouse,omitempty"`

	// SearchText is the lowercased "name description" used by the matcher.
	SearchText string `json:"-"`
}

// NameKey is the form used for exact name comparison: lowercased, whitespace collapsed.
func NameKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func searchText(name, description string) string {
	return NameKey(name + " " + description)
}
