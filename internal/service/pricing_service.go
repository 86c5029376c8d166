package service

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"member-pricing-service/internal/display"
	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// PricingService answers "what does this viewer pay" for catalog products.
type PricingService struct {
	products ProductStore
	cache    ProductCache
	resolver *pricing.Resolver
	currency string
}

// NewPricingService creates a new instance of PricingService.
func NewPricingService(products ProductStore, cache ProductCache, resolver *pricing.Resolver, currency string) *PricingService {
	return &PricingService{
		products: products,
		cache:    cache,
		resolver: resolver,
		currency: currency,
	}
}

// loadProduct reads through the cache. Cache failures are logged and the
// repository is used instead.
func (s *PricingService) loadProduct(ctx context.Context, id int) (*entity.Product, error) {
	product, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Msgf("Error getting product %d from cache", id)
	}
	if ok {
		return product, nil
	}

	product, err = s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		logger.Warn().Err(err).Msgf("Error setting product %d in cache", id)
	}
	return product, nil
}

// GetProductPricing returns the prices of product id as viewer sees them. In
// the admin context the stored values are returned untouched.
func (s *PricingService) GetProductPricing(ctx context.Context, id int, viewer pricing.Viewer, execCtx pricing.ExecutionContext) (*entity.ProductPricing, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product %d", id)
		return nil, err
	}

	if execCtx == pricing.Admin {
		return s.adminPricing(*product), nil
	}
	if product.Type == entity.ProductVariable {
		return s.variablePricing(*product, viewer), nil
	}
	if product.Type == entity.ProductVariation {
		s.inheritRolePrices(ctx, product)
	}
	return s.simplePricing(*product, viewer), nil
}

// inheritRolePrices gives a variation without role prices those of its
// parent, so it resolves the same whether read alone or through the parent.
func (s *PricingService) inheritRolePrices(ctx context.Context, variation *entity.Product) {
	if len(variation.Prices.RolePrices) > 0 || variation.ParentID == 0 {
		return
	}
	parent, err := s.loadProduct(ctx, variation.ParentID)
	if err != nil {
		logger.Warn().Err(err).Msgf("Error getting parent %d of variation %d", variation.ParentID, variation.ID)
		return
	}
	variation.Prices.RolePrices = parent.Prices.RolePrices
}

func (s *PricingService) adminPricing(p entity.Product) *entity.ProductPricing {
	out := &entity.ProductPricing{
		ProductID:    p.ID,
		Type:         p.Type,
		Context:      pricing.Admin.String(),
		RegularPrice: p.Prices.Regular,
		SalePrice:    p.Prices.Sale,
		OnSale:       pricing.CurrentlyOnSale(p.Prices),
		Price:        pricing.CurrentPrice(p.Prices),
		RolePrices:   p.Prices.RolePrices,
	}
	for _, v := range p.Variations {
		out.Variations = append(out.Variations, *s.adminPricing(v))
	}
	return out
}

func (s *PricingService) simplePricing(p entity.Product, viewer pricing.Viewer) *entity.ProductPricing {
	resolved := s.resolver.Resolve(p.Prices, viewer)
	group := s.resolver.PricingGroup(viewer)

	out := &entity.ProductPricing{
		ProductID:    p.ID,
		Type:         p.Type,
		Context:      pricing.Storefront.String(),
		RegularPrice: p.Prices.Regular,
		SalePrice:    resolved.SalePrice,
		OnSale:       resolved.OnSale,
		Price:        resolved.Price,
		PricingGroup: group,
	}
	out.Display = s.display(out)
	return out
}

func (s *PricingService) variablePricing(p entity.Product, viewer pricing.Viewer) *entity.ProductPricing {
	agg := s.resolver.VariablePricing(p.Prices.Regular, p.Prices.Sale, p.Prices, viewer)

	// The parent's sale price is shown as stored. Only the price, the
	// variations and the on-sale flag are resolved for the viewer.

	out := &entity.ProductPricing{
		ProductID:    p.ID,
		Type:         p.Type,
		Context:      pricing.Storefront.String(),
		RegularPrice: agg.Regular,
		SalePrice:    agg.Sale,
		Price:        agg.Price,
		PricingGroup: s.resolver.PricingGroup(viewer),
	}

	if len(p.Variations) == 0 {
		out.OnSale = s.resolver.IsOnSale(p.Prices, viewer, pricing.CurrentlyOnSale(p.Prices))
	}
	for _, v := range p.Variations {
		// same rule as inheritRolePrices, without reloading the parent
		if len(v.Prices.RolePrices) == 0 {
			v.Prices.RolePrices = p.Prices.RolePrices
		}
		vp := s.simplePricing(v, viewer)
		out.OnSale = out.OnSale || vp.OnSale
		out.Variations = append(out.Variations, *vp)
	}

	out.Display = s.display(out)
	return out
}

func (s *PricingService) display(p *entity.ProductPricing) *display.Display {
	d := display.Build(display.Input{
		CurrencySymbol: s.currency,
		Regular:        p.RegularPrice,
		Sale:           p.SalePrice,
		OnSale:         p.OnSale,
		Current:        p.Price,
		Group:          p.PricingGroup,
	})
	return &d
}
