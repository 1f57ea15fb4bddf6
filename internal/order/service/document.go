package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"order-intake/internal/order/model"
)

// BuildDocument splits a result into priced line items (VALIDATED only) and
// issues for review (everything else).
func BuildDocument(res model.OrderResult, now time.Time) model.Document {
	doc := model.Document{
		Summary: model.Summary{
			CustomerName:          res.CustomerName,
			DeliveryAddress:       res.DeliveryAddress,
			RequestedDeliveryDate: res.DeliveryDate,
			Notes:                 res.CustomerNotes,
			GenerationTimestamp:   now.UTC().Format(time.RFC3339),
		},
		LineItems:                []model.LineItem{},
		IssuesForReview:          []model.Issue{},
		ConsolidationSuggestions: res.Consolidation,
	}

	for _, o := range res.Outcomes {
		switch o := o.(type) {
		case model.Validated:
			doc.LineItems = append(doc.LineItems, model.LineItem{
				SKU:         o.Entry.Code,
				ProductName: o.Entry.Name,
				Quantity:    *o.Quantity,
				UnitPrice:   toFloat(o.Entry.Price),
				TotalPrice:  toFloat(o.Total),
			})
		case model.MOQNotMet, model.InsufficientStock, model.NotFound,
			model.MultipleMatches, model.MissingQuantity:
			info := o.Line()
			doc.IssuesForReview = append(doc.IssuesForReview, model.Issue{
				RequestedItem: info.Reference,
				Status:        o.Status(),
				Details:       info.Issue,
			})
		default:
			panic(fmt.Sprintf("unhandled line outcome %T", o))
		}
	}
	return doc
}

func toFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
