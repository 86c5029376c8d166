package entity

import (
	"member-pricing-service/internal/display"
	"member-pricing-service/internal/pricing"
)

// ProductPricing is the price of a product as one viewer sees it.
type ProductPricing struct {
	ProductID    int                            `json:"product_id"`
	Type         ProductType                    `json:"type"`
	Context      string                         `json:"context"`
	RegularPrice pricing.Price                  `json:"regular_price"`
	SalePrice    pricing.Price                  `json:"sale_price"`
	OnSale       bool                           `json:"on_sale"`
	Price        pricing.Price                  `json:"price"`
	PricingGroup pricing.Role                   `json:"pricing_group,omitempty"`
	RolePrices   map[pricing.Role]pricing.Price `json:"role_prices,omitempty"`
	Display      *display.Display               `json:"display,omitempty"`
	Variations   []ProductPricing               `json:"variations,omitempty"`
}

// PriceUpdate is an admin edit of a product's stored prices. Unset role
// prices are removed.
type PriceUpdate struct {
	RegularPrice pricing.Price                  `json:"regular_price"`
	SalePrice    pricing.Price                  `json:"sale_price"`
	RolePrices   map[pricing.Role]pricing.Price `json:"role_prices"`
}
