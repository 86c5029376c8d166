package api

import (
	"github.com/labstack/echo/v4"

	"member-pricing-service/internal/auth"
	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

// PricingHandler handles pricing-related requests.
type PricingHandler struct {
	pricing PricingReader
	catalog CatalogWriter
}

// NewPricingHandler creates a new PricingHandler instance.
func NewPricingHandler(pricingReader PricingReader, catalog CatalogWriter) *PricingHandler {
	return &PricingHandler{pricing: pricingReader, catalog: catalog}
}

// GetPricing returns the storefront price for the caller --> /products/:id/pricing
func (h *PricingHandler) GetPricing(c echo.Context) error {
	return h.getPricing(c, pricing.Storefront)
}

// GetAdminPricing returns stored prices --> /admin/products/:id/pricing
func (h *PricingHandler) GetAdminPricing(c echo.Context) error {
	return h.getPricing(c, pricing.Admin)
}

func (h *PricingHandler) getPricing(c echo.Context, execCtx pricing.ExecutionContext) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(400, map[string]string{"error": "invalid product id"})
	}

	result, err := h.pricing.GetProductPricing(c.Request().Context(), id, auth.ViewerFromContext(c), execCtx)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, result)
}

type variationRequest struct {
	Name         string                         `json:"name"`
	RegularPrice pricing.Price                  `json:"regular_price"`
	SalePrice    pricing.Price                  `json:"sale_price"`
	RolePrices   map[pricing.Role]pricing.Price `json:"role_prices"`
}

type productRequest struct {
	variationRequest
	Type       entity.ProductType `json:"type"`
	Variations []variationRequest `json:"variations"`
}

func (r variationRequest) priceSet() pricing.PriceSet {
	return pricing.PriceSet{Regular: r.RegularPrice, Sale: r.SalePrice, RolePrices: r.RolePrices}
}

// CreateProduct --> POST /admin/products
func (h *PricingHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}

	product := &entity.Product{Name: req.Name, Type: req.Type, Prices: req.priceSet()}
	for _, v := range req.Variations {
		product.Variations = append(product.Variations, entity.Product{Name: v.Name, Prices: v.priceSet()})
	}

	ctx := c.Request().Context()
	created, err := h.catalog.CreateProduct(ctx, product)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := h.pricing.GetProductPricing(ctx, created.ID, auth.ViewerFromContext(c), pricing.Admin)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(201, result)
}

// UpdatePrices --> PUT /admin/products/:id/prices
func (h *PricingHandler) UpdatePrices(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(400, map[string]string{"error": "invalid product id"})
	}

	var update entity.PriceUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}

	ctx := c.Request().Context()
	if _, err := h.catalog.UpdatePrices(ctx, id, update); err != nil {
		return errorResponse(c, err)
	}

	result, err := h.pricing.GetProductPricing(ctx, id, auth.ViewerFromContext(c), pricing.Admin)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, result)
}
