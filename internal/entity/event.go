package entity

import "time"

const (
	EventPricesUpdated  = "prices_updated"
	EventProductCreated = "created"
)

// PriceEvent is published whenever stored prices change. Its kafka key is
// "product.<type>.<product id>".
type PriceEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ProductID  int       `json:"product_id"`
	ParentID   int       `json:"parent_id,omitempty"`
	Variations []int     `json:"variations,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
