package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"order-intake/internal/utils"
)

// ErrEmptyOrder is returned for a missing, null or {} order.
var ErrEmptyOrder = errors.New("empty order")

// RequestedLine is one product/quantity pair from an extracted order.
// A nil Quantity means the email gave none.
type RequestedLine struct {
	ProductReference string `json:"product_name"`
	Quantity         *int   `json:"quantity,omitempty"`
}

// Order is the structured order produced by the extraction step.
type Order struct {
	CustomerName    string          `json:"customer_name,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryDate    string          `json:"delivery_date,omitempty"`
	CustomerNotes   string          `json:"customer_notes,omitempty"`
	Products        []RequestedLine `json:"products"`
}

// IsEmpty reports whether o carries nothing at all.
func (o Order) IsEmpty() bool {
	return strings.TrimSpace(o.CustomerName) == "" &&
		strings.TrimSpace(o.DeliveryAddress) == "" &&
		strings.TrimSpace(o.DeliveryDate) == "" &&
		strings.TrimSpace(o.CustomerNotes) == "" &&
		len(o.Products) == 0
}

// UnmarshalJSON decodes untrusted extractor output. Mistyped fields degrade
// instead of failing: scalars become text, a non-array "products" yields no
// lines, and a quantity that is not one whole number becomes nil. 12, 12.0,
// 1e3, "12" and "12 boxes" are whole numbers; 2.5, "a dozen" and
// "5 boxes of 10" are not.
func (o *Order) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Order{
		CustomerName:    text(raw["customer_name"]),
		DeliveryAddress: text(raw["delivery_address"]),
		DeliveryDate:    text(raw["delivery_date"]),
		CustomerNotes:   text(raw["customer_notes"]),
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw["products"], &items); err != nil {
		return nil
	}
	for _, it := range items {
		var p map[string]json.RawMessage
		if err := json.Unmarshal(it, &p); err != nil {
			continue
		}
		o.Products = append(o.Products, RequestedLine{
			ProductReference: text(p["product_name"]),
			Quantity:         quantity(p["quantity"]),
		})
	}
	return nil
}

// DecodeOrder parses one order. Blank input, null and {} give ErrEmptyOrder.
func DecodeOrder(data []byte) (Order, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Order{}, ErrEmptyOrder
	}
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return Order{}, fmt.Errorf("decode order: %w", err)
	}
	if o.IsEmpty() {
		return Order{}, ErrEmptyOrder
	}
	return o, nil
}

func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// quantity accepts a JSON integer, an integral JSON number (12.0, 1e3) or a
// string holding one number with optional unit text ("20", "100 pcs").
// Anything else, including "5 boxes of 10", is absent.
func quantity(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && raw[0] != '"' {
		return wholeNumber(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	d, ok := utils.ParseDecimal(s)
	if !ok || !d.IsInteger() || d.Abs().GreaterThan(decimal.NewFromInt(maxQuantity)) {
		return nil
	}
	q := int(d.IntPart())
	return &q
}

const maxQuantity = 1<<31 - 1

func wholeNumber(n json.Number) *int {
	if i, err := n.Int64(); err == nil {
		if i > maxQuantity || i < -maxQuantity {
			return nil
		}
		q := int(i)
		return &q
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxQuantity {
		return nil
	}
	q := int(f)
	return &q
}

// Qty is a helper for building lines by hand.
func Qty(n int) *int { return &n }
