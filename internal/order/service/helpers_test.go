package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"order-intake/internal/catalog"
)

var catalogHeader = []string{"code", "name", "description", "price", "min_order_quantity", "available_stock", "warehouse"}

type item struct {
	code, name, description, price, moq, stock, warehouse string
}

func newIndex(t *testing.T, items ...item) *catalog.Index {
	t.Helper()
	rows := make([]map[string]string, len(items))
	for i, it := range items {
		rows[i] = map[string]string{
			"code": it.code, "name": it.name, "description": it.description, "price": it.price,
			"min_order_quantity": it.moq, "available_stock": it.stock, "warehouse": it.warehouse,
		}
	}
	idx, err := catalog.Build(catalogHeader, rows)
	require.NoError(t, err)
	return idx
}

var blueWidget = item{code: "WID-BL-01", name: "Blue Widget", price: "10.00", moq: "5", stock: "200", warehouse: "WH-West"}
