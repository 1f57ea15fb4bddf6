package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-intake/internal/fileio"
)

func TestBuild(t *testing.T) {
	header := []string{"code", "name", "description", "price", "min_order_quantity", "available_stock"}
	rows := []map[string]string{
		{"code": "WID-BL-01", "name": "Blue Widget", "description": "Standard blue widget", "price": "10.00", "min_order_quantity": "5", "available_stock": "200"},
		{"code": "SCR-SM-01", "name": "Small Steel Screws", "description": "Box of 1000, 1-inch", "price": "n/a", "min_order_quantity": "", "available_stock": "TBD"},
		{"code": "", "name": "Orphan row"},
	}

	idx, err := Build(header, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 1, idx.Skipped())

	t.Run("numeric fields are coerced", func(t *testing.T) {
		e, ok := idx.Lookup("WID-BL-01")
		require.True(t, ok)
		require.True(t, e.Price.Valid)
		assert.Equal(t, "10", e.Price.Decimal.String())
		assert.Equal(t, KnownCount(5), e.MinOrderQty)
		assert.Equal(t, KnownCount(200), e.AvailableStock)
		assert.Equal(t, "blue widget standard blue widget", e.SearchText)
	})

	t.Run("unparseable fields stay unknown", func(t *testing.T) {
		e, ok := idx.Lookup(" SCR-SM-01 ")
		require.True(t, ok)
		assert.False(t, e.Price.Valid)
		assert.False(t, e.MinOrderQty.Valid)
		assert.False(t, e.AvailableStock.Valid)
	})

	t.Run("lookup misses", func(t *testing.T) {
		_, ok := idx.Lookup("NOPE")
		assert.False(t, ok)
	})

	t.Run("lookup by name ignores case and spacing", func(t *testing.T) {
		got := idx.LookupName("  blue   WIDGET ")
		require.Len(t, got, 1)
		assert.Equal(t, "WID-BL-01", got[0].Code)
		assert.Empty(t, idx.LookupName("blue widgets"))
	})

	t.Run("entries are copies", func(t *testing.T) {
		all := idx.Entries()
		all[0].Name = "mutated"
		e, _ := idx.Lookup("WID-BL-01")
		assert.Equal(t, "Blue Widget", e.Name)
	})
}

func TestBuildLegacyHeaders(t *testing.T) {
	header := []string{"SKU", "ProductName", "Price", "CurrentStock", "MinOrderQty", "Warehouse"}
	rows := []map[string]string{
		{"SKU": "WID-RD-01", "ProductName": "Red Widget", "Price": "$12.50", "CurrentStock": "0", "MinOrderQty": "100", "Warehouse": "WH-East"},
	}
	idx, err := Build(header, rows)
	require.NoError(t, err)

	e, ok := idx.Lookup("WID-RD-01")
	require.True(t, ok)
	assert.Equal(t, "12.5", e.Price.Decimal.String())
	assert.Equal(t, KnownCount(0), e.AvailableStock)
	assert.Equal(t, KnownCount(100), e.MinOrderQty)
	assert.Equal(t, "WH-East", e.Warehouse)
	assert.Equal(t, "red widget", e.SearchText)
}

func TestBuildNumbersWithNotes(t *testing.T) {
	header := []string{"code", "name", "price", "min_order_quantity", "available_stock"}
	rows := []map[string]string{
		{"code": "P-1", "name": "Pallet", "price": "1e2", "min_order_quantity": "5 (pack of 10)", "available_stock": "200 (2 pallets)"},
		{"code": "P-2", "name": "Crate", "price": "$12.50 ea", "min_order_quantity": "10 pcs", "available_stock": "1 200"},
	}
	idx, err := Build(header, rows)
	require.NoError(t, err)

	e, ok := idx.Lookup("P-1")
	require.True(t, ok)
	require.True(t, e.Price.Valid)
	assert.Equal(t, "100", e.Price.Decimal.String())
	assert.Equal(t, Count{}, e.MinOrderQty)
	assert.Equal(t, Count{}, e.AvailableStock)

	e, ok = idx.Lookup("P-2")
	require.True(t, ok)
	assert.Equal(t, "12.5", e.Price.Decimal.String())
	assert.Equal(t, KnownCount(10), e.MinOrderQty)
	assert.Equal(t, KnownCount(1200), e.AvailableStock)
}

func TestBuildErrors(t *testing.T) {
	t.Run("missing required columns", func(t *testing.T) {
		_, err := Build([]string{"description", "price"}, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCatalogLoad))

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, []string{"code", "name"}, le.Missing)
	})

	t.Run("empty header", func(t *testing.T) {
		_, err := Build(nil, nil)
		assert.ErrorIs(t, err, ErrCatalogLoad)
	})

	t.Run("duplicate code", func(t *testing.T) {
		rows := []map[string]string{
			{"code": "A-1", "name": "Anvil"},
			{"code": "A-1", "name": "Another Anvil"},
		}
		_, err := Build([]string{"code", "name"}, rows)
		assert.ErrorIs(t, err, ErrCatalogLoad)
		assert.ErrorContains(t, err, `duplicate code "A-1"`)
	})
}

func TestResolveColumn(t *testing.T) {
	cases := []struct {
		name    string
		header  []string
		aliases []string
		want    string
	}{
		{"exact", []string{"code", "name"}, colCode, "code"},
		{"case and punctuation", []string{"Product-Name", "SKU"}, colName, "Product-Name"},
		{"snake case", []string{"Available_Stock"}, colStock, "Available_Stock"},
		{"contained words", []string{"Qty Available Today"}, colStock, "Qty Available Today"},
		{"no match", []string{"foo", "bar"}, colPrice, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveColumn(tc.header, tc.aliases...))
		})
	}
}

func TestLoadAndStore(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(good, []byte("code,name,price\nWID-BL-01,Blue Widget,10.00\n"), 0o644))
	bad := filepath.Join(dir, "broken.csv")
	require.NoError(t, os.WriteFile(bad, []byte("sku_only\nX\n"), 0o644))

	idx, err := Load(good, 1)
	require.NoError(t, err)
	s := NewStore(idx)

	_, err = s.Reload(bad, 1)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, bad, le.Path)
	assert.Same(t, idx, s.Current(), "failed reload must keep the old catalog")

	_, err = s.Reload(filepath.Join(dir, "missing.csv"), 1)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = s.Reload(good, 5)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.ErrorIs(t, err, fileio.ErrHeaderRow)
	assert.Same(t, idx, s.Current())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := s.Current().Lookup("WID-BL-01")
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestSimilarCodes(t *testing.T) {
	header := []string{"code", "name"}
	rows := []map[string]string{
		{"code": "WID-BL-01", "name": "Blue Widget"},
		{"code": "WID-BL-02", "name": "Blue Widget XL"},
		{"code": "WID-LB-01", "name": "Light Blue Widget"},
		{"code": "GAD-GR-02", "name": "Green Gadget"},
	}
	idx, err := Build(header, rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"WID-BL-01", "WID-BL-02", "WID-LB-01"}, idx.SimilarCodes("WID-BL-0I", 5))
	assert.Equal(t, []string{"WID-BL-01"}, idx.SimilarCodes("wid-bl-01", 1))
	assert.Equal(t, []string{"WID-BL-02", "WID-LB-01"}, idx.SimilarCodes("WID-BL-01", 5))
	assert.Empty(t, idx.SimilarCodes("ZZZ", 5))
	assert.Empty(t, idx.SimilarCodes("", 5))
	assert.Nil(t, (*Index)(nil).SimilarCodes("WID-BL-01", 5))

	assert.Equal(t, 1, editDistance("ab", "ba"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
	assert.Equal(t, 0, editDistance("", ""))
}
