package service

import (
	"fmt"
	"strings"

	"order-intake/internal/catalog"
	"order-intake/internal/fileio"
	"order-intake/internal/match"
	"order-intake/internal/order/model"
)

// FindConsolidation suggests pending orders that ship to (nearly) the same
// address. Destinations are compared with a word-order-insensitive score; every
// pending order to a destination at or above threshold is returned.
func FindConsolidation(address string, pending []model.PendingShipment, threshold int) []model.ConsolidationSuggestion {
	if strings.TrimSpace(address) == "" || len(pending) == 0 {
		return nil
	}

	// уникальные адреса в порядке первого появления
	var dests []string
	byDest := make(map[string][]string)
	for _, p := range pending {
		if _, ok := byDest[p.Destination]; !ok {
			dests = append(dests, p.Destination)
		}
		byDest[p.Destination] = append(byDest[p.Destination], p.OrderID)
	}

	var out []model.ConsolidationSuggestion
	for _, d := range dests {
		score := match.TokenSortRatio(address, d)
		if score < threshold {
			continue
		}
		for _, id := range byDest[d] {
			out = append(out, model.ConsolidationSuggestion{
				PendingOrderID:  id,
				SimilarAddress:  d,
				MatchConfidence: score,
			})
		}
	}
	return out
}

// LoadPendingShipments reads an OrderID/Destination table.
func LoadPendingShipments(path string, headerRow int) ([]model.PendingShipment, error) {
	t, err := fileio.ReadFile(path, headerRow)
	if err != nil {
		return nil, fmt.Errorf("pending shipments %s: %w", path, err)
	}
	idCol := catalog.ResolveColumn(t.Header, "OrderID", "order id", "order", "id")
	destCol := catalog.ResolveColumn(t.Header, "Destination", "address", "delivery address")
	if idCol == "" || destCol == "" {
		return nil, fmt.Errorf("pending shipments %s: need order id and destination columns", path)
	}
	out := make([]model.PendingShipment, 0, len(t.Rows))
	for _, r := range t.Rows {
		dest := strings.TrimSpace(r[destCol])
		if dest == "" {
			continue
		}
		out = append(out, model.PendingShipment{OrderID: strings.TrimSpace(r[idCol]), Destination: dest})
	}
	return out, nil
}
