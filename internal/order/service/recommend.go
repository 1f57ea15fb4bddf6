package service

import (
	"fmt"
	"strings"

	"order-intake/internal/catalog"
	"order-intake/internal/order/model"
)

// Recommend decides, per product, whether to ship from stock or how much to
// reorder. Names are looked up exactly (case-insensitive): the caller is
// expected to pass catalog names, not free text.
func Recommend(lines []model.RequestedLine, idx *catalog.Index, pending []model.PendingShipment) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(lines))
	for _, l := range lines {
		name := strings.TrimSpace(l.ProductReference)
		if name == "" {
			name = "Unknown Product"
		}
		out = append(out, recommendLine(name, l.Quantity, idx, len(pending) > 0))
	}
	return out
}

func recommendLine(name string, qty *int, idx *catalog.Index, hasPending bool) model.Recommendation {
	rec := model.Recommendation{Product: name}
	if qty == nil || *qty <= 0 {
		rec.Status = model.RecMissingQuantity
		rec.Recommendation = fmt.Sprintf("Product '%s' was mentioned without a specific quantity. Manual review required.", name)
		return rec
	}
	q := *qty
	rec.Quantity = &q

	found := idx.LookupName(name)
	if len(found) == 0 {
		rec.Status = model.RecNotFound
		rec.Recommendation = fmt.Sprintf("Product '%s' not found in inventory. Manual review required.", name)
		return rec
	}
	e := found[0]
	rec.Code = e.Code
	rec.Warehouse = e.Warehouse
	wh := warehouseLabel(e)
	moq := 0
	if e.MinOrderQty.Valid {
		moq = e.MinOrderQty.Value
	}

	switch stock := e.AvailableStock; {
	case !stock.Valid:
		rec.Status = model.RecInStock
		rec.Recommendation = fmt.Sprintf("Stock level at %s is unknown; verify before shipping %d units.", wh, q)
	case q <= stock.Value:
		rec.Status = model.RecInStock
		rec.Recommendation = fmt.Sprintf("Ship %d units directly from %s.", q, wh)
		if hasPending {
			rec.Recommendation += " NOTE: There are other pending shipments; consider consolidating."
		}
	case stock.Value > 0:
		reorder := max(q-stock.Value, moq)
		rec.Status = model.RecPartialStock
		rec.ReorderQuantity = &reorder
		rec.Recommendation = fmt.Sprintf("Partial stock (%d units) at %s. Order an additional %d units (%s).",
			stock.Value, wh, reorder, moqLabel(e.MinOrderQty))
	default:
		reorder := max(q, moq)
		rec.Status = model.RecOutOfStock
		rec.ReorderQuantity = &reorder
		rec.Recommendation = fmt.Sprintf("Product is out of stock. Order at least %d units for %s (%s).",
			reorder, wh, moqLabel(e.MinOrderQty))
	}
	return rec
}

func warehouseLabel(e catalog.Entry) string {
	if e.Warehouse == "" {
		return "stock"
	}
	return e.Warehouse
}

func moqLabel(c catalog.Count) string {
	if !c.Valid {
		return "no MOQ on record"
	}
	return fmt.Sprintf("MOQ is %d", c.Value)
}
