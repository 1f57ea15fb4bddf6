package model

// Document is the sales-order JSON handed to the renderer. Field names are
// fixed: the renderer reads them by name.
type Document struct {
	Summary                  Summary                   `json:"sales_order_summary"`
	LineItems                []LineItem                `json:"line_items"`
	IssuesForReview          []Issue                   `json:"issues_for_review"`
	ConsolidationSuggestions []ConsolidationSuggestion `json:"consolidation_suggestions,omitempty"`
}

type Summary struct {
	CustomerName          string `json:"customer_name"`
	DeliveryAddress       string `json:"delivery_address"`
	RequestedDeliveryDate string `json:"requested_delivery_date"`
	Notes                 string `json:"notes"`
	GenerationTimestamp   string `json:"generation_timestamp_utc"`
}

// LineItem is a VALIDATED line. UnitPrice and TotalPrice are null when the
// catalog price is unknown.
type LineItem struct {
	SKU         string   `json:"sku"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	TotalPrice  *float64 `json:"total_price"`
}

// Issue is any non-VALIDATED line.
type Issue struct {
	RequestedItem string `json:"requested_item"`
	Status        Status `json:"status"`
	Details       string `json:"details"`
}
