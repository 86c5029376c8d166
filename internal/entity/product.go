package entity

import "member-pricing-service/internal/pricing"

type ProductType string

const (
	ProductSimple    ProductType = "simple"
	ProductVariable  ProductType = "variable"
	ProductVariation ProductType = "variation"
)

// Product is a catalog item with its stored prices.
type Product struct {
	ID       int              `json:"id"`
	ParentID int              `json:"parent_id,omitempty"`
	Name     string           `json:"name"`
	Type     ProductType      `json:"type"`
	Prices   pricing.PriceSet `json:"-"`

	// Variations is only loaded for variable products.
	Variations []Product `json:"-"`
}

// CachedProduct is the JSON form of a Product kept in redis.
type CachedProduct struct {
	ID         int                            `json:"id"`
	ParentID   int                            `json:"parent_id,omitempty"`
	Name       string                         `json:"name"`
	Type       ProductType                    `json:"type"`
	Regular    pricing.Price                  `json:"regular_price"`
	Sale       pricing.Price                  `json:"sale_price"`
	RolePrices map[pricing.Role]pricing.Price `json:"role_prices,omitempty"`
	Variations []CachedProduct                `json:"variations,omitempty"`
}

func (p Product) ToCache() CachedProduct {
	c := CachedProduct{
		ID:         p.ID,
		ParentID:   p.ParentID,
		Name:       p.Name,
		Type:       p.Type,
		Regular:    p.Prices.Regular,
		Sale:       p.Prices.Sale,
		RolePrices: p.Prices.RolePrices,
	}
	for _, v := range p.Variations {
		c.Variations = append(c.Variations, v.ToCache())
	}
	return c
}

func (c CachedProduct) ToProduct() Product {
	p := Product{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		Type:     c.Type,
		Prices: pricing.PriceSet{
			Regular:    c.Regular,
			Sale:       c.Sale,
			RolePrices: c.RolePrices,
		},
	}
	for _, v := range c.Variations {
		p.Variations = append(p.Variations, v.ToProduct())
	}
	return p
}

/*
Schema MySQL:

CREATE TABLE products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	parent_id INT NULL,
	name VARCHAR(255) NOT NULL,
	type VARCHAR(20) NOT NULL,
	regular_price DECIMAL(10,2) NULL,
	sale_price DECIMAL(10,2) NULL
);

CREATE TABLE product_role_prices (
	product_id INT NOT NULL,
	role VARCHAR(50) NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	PRIMARY KEY (product_id, role)
);
*/
