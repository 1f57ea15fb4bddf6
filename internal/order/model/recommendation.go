package model

// RecommendationStatus tags a restocking decision. It is a separate
// vocabulary from Status even where the names overlap.
type RecommendationStatus string

const (
	RecInStock         RecommendationStatus = "IN_STOCK"
	RecPartialStock    RecommendationStatus = "PARTIAL_STOCK"
	RecOutOfStock      RecommendationStatus = "OUT_OF_STOCK"
	RecNotFound        RecommendationStatus = "NOT_FOUND"
	RecMissingQuantity RecommendationStatus = "MISSING_QUANTITY"
)

type Recommendation struct {
	Product   string               `json:"product"`
	Quantity  *int                 `json:"quantity,omitempty"`
	Status    RecommendationStatus `json:"status"`
	Code      string               `json:"sku,omitempty"`
	Warehouse string               `json:"warehouse,omitempty"`
	// ReorderQuantity is set for PARTIAL_STOCK and OUT_OF_STOCK.
	ReorderQuantity *int   `json:"reorder_quantity,omitempty"`
	Recommendation  string `json:"recommendation"`
}

// PendingShipment is an order already waiting to ship.
type PendingShipment struct {
	OrderID     string `json:"order_id"`
	Destination string `json:"destination"`
}

type ConsolidationSuggestion struct {
	PendingOrderID  string `json:"pending_order_id"`
	SimilarAddress  string `json:"similar_address"`
	MatchConfidence int    `json:"match_confidence"`
}
