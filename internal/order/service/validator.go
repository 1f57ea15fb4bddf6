package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"order-intake/internal/catalog"
	"order-intake/internal/match"
	"order-intake/internal/order/model"
)

// Validator resolves each requested line against the catalog and applies
// the MOQ and stock rules. It keeps no state between calls.
type Validator struct {
	matcher *match.Matcher
}

func NewValidator(m *match.Matcher) *Validator {
	if m == nil {
		m = match.New()
	}
	return &Validator{matcher: m}
}

// Validate returns one outcome per line with a non-blank reference, in input
// order. Lines never affect each other. The only error is model.ErrEmptyOrder.
func (v *Validator) Validate(o model.Order, idx *catalog.Index) (model.OrderResult, error) {
	if o.IsEmpty() {
		return model.OrderResult{}, model.ErrEmptyOrder
	}
	res := model.OrderResult{
		ID:              uuid.New(),
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		CustomerNotes:   o.CustomerNotes,
		Outcomes:        make([]model.LineOutcome, 0, len(o.Products)),
	}
	for _, line := range o.Products {
		if strings.TrimSpace(line.ProductReference) == "" {
			res.Skipped++
			continue
		}
		res.Outcomes = append(res.Outcomes, v.ValidateLine(line, idx))
	}
	return res, nil
}

// ValidateLine classifies a single line. Checks run in order and the first
// failing one decides: quantity, match count, MOQ, stock.
func (v *Validator) ValidateLine(line model.RequestedLine, idx *catalog.Index) model.LineOutcome {
	info := model.LineInfo{Reference: strings.TrimSpace(line.ProductReference)}
	if line.Quantity != nil {
		q := *line.Quantity
		info.Quantity = &q
	}

	if info.Quantity == nil || *info.Quantity <= 0 {
		info.Issue = "No specific quantity given, needs manual review."
		return model.MissingQuantity{LineInfo: info}
	}
	qty := *info.Quantity

	matches := v.matcher.FindMatches(info.Reference, idx)
	switch len(matches) {
	case 0:
		info.Issue = fmt.Sprintf("Product '%s' not found in catalog.", info.Reference)
		return model.NotFound{LineInfo: info}
	case 1:
	default:
		info.Issue = fmt.Sprintf("Multiple possible matches for '%s': %s. Please clarify.",
			info.Reference, describeCandidates(matches))
		return model.MultipleMatches{LineInfo: info, Candidates: matches}
	}

	m := matches[0]
	e := m.Entry
	if e.MinOrderQty.Valid && qty < e.MinOrderQty.Value {
		info.Issue = fmt.Sprintf("Requested quantity %d is below the minimum order quantity of %d for %s.",
			qty, e.MinOrderQty.Value, e.Code)
		return model.MOQNotMet{LineInfo: info, Entry: e}
	}
	if e.AvailableStock.Valid && e.AvailableStock.Value < qty {
		info.Issue = fmt.Sprintf("Requested quantity %d exceeds available stock of %d for %s.",
			qty, e.AvailableStock.Value, e.Code)
		return model.InsufficientStock{LineInfo: info, Entry: e}
	}
	return model.Validated{LineInfo: info, Entry: e, Confidence: m.Confidence, Total: lineTotal(e.Price, qty)}
}

// lineTotal is quantity × price rounded to cents, null if the price is unknown.
func lineTotal(price decimal.NullDecimal, qty int) decimal.NullDecimal {
	if !price.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(price.Decimal.Mul(decimal.NewFromInt(int64(qty))).Round(2))
}

func describeCandidates(ms []match.Match) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = fmt.Sprintf("%s (%s, %d%%)", m.Entry.Code, m.Entry.Name, m.Confidence)
	}
	return strings.Join(parts, ", ")
}
