package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

// CatalogService manages stored prices. Sale prices above regular and role
// prices above either are accepted; they are simply never shown.
type CatalogService struct {
	products  ProductStore
	cache     ProductCache
	publisher EventPublisher
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(products ProductStore, cache ProductCache, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		products:  products,
		cache:     cache,
		publisher: publisher,
	}
}

func validatePrice(field string, p pricing.Price) error {
	if p.IsSet() && p.Amount().IsNegative() {
		return fmt.Errorf("%s must not be negative: %w", field, ErrInvalidInput)
	}
	return nil
}

// normalizePrices validates set and rewrites its role keys to their
// canonical form so they match what the resolver looks up.
func normalizePrices(set *pricing.PriceSet) error {
	if err := validatePrice("regular_price", set.Regular); err != nil {
		return err
	}
	if err := validatePrice("sale_price", set.Sale); err != nil {
		return err
	}
	if set.RolePrices == nil {
		return nil
	}

	normalized := make(map[pricing.Role]pricing.Price, len(set.RolePrices))
	for key, p := range set.RolePrices {
		role, ok := pricing.ParseRole(string(key))
		if !ok {
			return fmt.Errorf("unknown role %q: %w", key, ErrInvalidInput)
		}
		if _, dup := normalized[role]; dup {
			return fmt.Errorf("role %q given more than once: %w", role, ErrInvalidInput)
		}
		if err := validatePrice(string(role)+" price", p); err != nil {
			return err
		}
		normalized[role] = p
	}
	set.RolePrices = normalized
	return nil
}

// CreateProduct stores a new simple or variable product.
func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	switch product.Type {
	case "":
		product.Type = entity.ProductSimple
	case entity.ProductSimple, entity.ProductVariable:
	default:
		return nil, fmt.Errorf("unsupported product type %q: %w", product.Type, ErrInvalidInput)
	}
	if product.Type == entity.ProductSimple && len(product.Variations) > 0 {
		return nil, fmt.Errorf("simple products have no variations: %w", ErrInvalidInput)
	}

	if err := normalizePrices(&product.Prices); err != nil {
		return nil, err
	}
	for i := range product.Variations {
		v := &product.Variations[i]
		if strings.TrimSpace(v.Name) == "" {
			v.Name = fmt.Sprintf("%s #%d", product.Name, i+1)
		}
		if err := normalizePrices(&v.Prices); err != nil {
			return nil, err
		}
	}

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	s.publish(ctx, entity.EventProductCreated, *created)
	logger.Info().Msgf("Created %s product %d", created.Type, created.ID)
	return created, nil
}

// UpdatePrices replaces the stored prices of product id. For variable
// products non-empty regular and sale prices are pushed to every variation.
func (s *CatalogService) UpdatePrices(ctx context.Context, id int, update entity.PriceUpdate) (*entity.Product, error) {
	set := pricing.PriceSet{Regular: update.RegularPrice, Sale: update.SalePrice, RolePrices: update.RolePrices}
	if err := normalizePrices(&set); err != nil {
		return nil, err
	}
	update.RolePrices = set.RolePrices

	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product %d", id)
		return nil, err
	}

	if err := s.products.UpdatePrices(ctx, *product, update); err != nil {
		logger.Error().Err(err).Msgf("Error updating prices for product %d", id)
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, affectedIDs(*product)...); err != nil {
		logger.Warn().Err(err).Msgf("Error invalidating cache for product %d", id)
	}

	updated, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entity.EventPricesUpdated, *updated)
	logger.Info().Msgf("Updated prices for product %d", id)
	return updated, nil
}

// affectedIDs lists every cached entry whose prices depend on p.
func affectedIDs(p entity.Product) []int {
	ids := []int{p.ID}
	if p.ParentID != 0 {
		ids = append(ids, p.ParentID)
	}
	for _, v := range p.Variations {
		ids = append(ids, v.ID)
	}
	return ids
}

// publish is best effort: the write is already committed and the local cache
// invalidated, so a failed event only delays other instances.
func (s *CatalogService) publish(ctx context.Context, eventType string, p entity.Product) {
	event := entity.PriceEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  p.ID,
		ParentID:   p.ParentID,
		OccurredAt: time.Now().UTC(),
	}
	for _, v := range p.Variations {
		event.Variations = append(event.Variations, v.ID)
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling %s event for product %d", eventType, p.ID)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("product.%s.%d", eventType, p.ID)),
		Value: value,
	}
	if err := s.publisher.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for product %d", eventType, p.ID)
	}
}
