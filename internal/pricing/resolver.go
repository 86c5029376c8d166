// Package pricing decides which price a viewer sees for a catalog item.
//
// A PriceSet carries the stored regular, sale and per-role prices. The
// Resolver layers role pricing over the regular/sale model at three read
// points, always in the same order: the sale price field, the on-sale flag,
// then the final price. Role prices only ever discount; a role price above
// the price being evaluated is ignored.
package pricing

// PriceSet is the admin-configured pricing of one product or variation.
type PriceSet struct {
	Regular    Price
	Sale       Price
	RolePrices map[Role]Price
}

// RolePrice returns the custom price stored for role, unset when none.
func (s PriceSet) RolePrice(role Role) Price {
	return s.RolePrices[role]
}

func (s PriceSet) MemberPrice() Price {
	return s.RolePrice(RoleMember)
}

// WithRolePrice returns a copy of s with role's price set to p.
func (s PriceSet) WithRolePrice(role Role, p Price) PriceSet {
	prices := make(map[Role]Price, len(s.RolePrices)+1)
	for r, v := range s.RolePrices {
		prices[r] = v
	}
	prices[role] = p
	s.RolePrices = prices
	return s
}

// CurrentlyOnSale is the catalog's own flag, before any role pricing.
func CurrentlyOnSale(s PriceSet) bool {
	return s.Sale.LessThan(s.Regular)
}

// CurrentPrice is the catalog's own price, before any role pricing.
func CurrentPrice(s PriceSet) Price {
	if CurrentlyOnSale(s) {
		return s.Sale
	}
	return s.Regular
}

// ResolvedPricing is what a viewer is shown for a simple product.
type ResolvedPricing struct {
	SalePrice Price
	OnSale    bool
	Price     Price
}

// VariablePricing is the aggregated pricing of a variable product.
type VariablePricing struct {
	Regular Price
	Sale    Price
	Price   Price
}

// Resolver applies role pricing. It holds no mutable state.
type Resolver struct {
	priced map[Role]struct{}
}

// NewResolver returns a resolver that honours custom prices for the given
// roles. With no roles it prices members only.
func NewResolver(pricedRoles ...Role) *Resolver {
	if len(pricedRoles) == 0 {
		pricedRoles = []Role{RoleMember}
	}
	priced := make(map[Role]struct{}, len(pricedRoles))
	for _, r := range pricedRoles {
		if r == RoleAnonymous {
			continue
		}
		priced[r] = struct{}{}
	}
	return &Resolver{priced: priced}
}

// HasCustomPricing reports whether v's role is entitled to a custom price.
func (r *Resolver) HasCustomPricing(v Viewer) bool {
	_, ok := r.priced[v.Role]
	return ok
}

// PricingGroup is v's role when it carries custom pricing, else RoleAnonymous.
func (r *Resolver) PricingGroup(v Viewer) Role {
	if r.HasCustomPricing(v) {
		return v.Role
	}
	return RoleAnonymous
}

func (r *Resolver) customPrice(set PriceSet, v Viewer) Price {
	if !r.HasCustomPricing(v) {
		return Price{}
	}
	return set.RolePrice(v.Role)
}

// SalePrice resolves the sale price field of set for v.
func (r *Resolver) SalePrice(set PriceSet, v Viewer) Price {
	return r.FilterSalePrice(set.Sale, set, v)
}

// FilterSalePrice suppresses price when v's custom price is at or below it,
// so the viewer is not shown a sale that their own rate already beats.
func (r *Resolver) FilterSalePrice(price Price, set PriceSet, v Viewer) Price {
	custom := r.customPrice(set, v)
	if custom.IsSet() && custom.LessThanOrEqual(price) {
		return Price{}
	}
	return price
}

// IsOnSale keeps the on-sale flag in line with a suppressed sale price.
func (r *Resolver) IsOnSale(set PriceSet, v Viewer, currentlyOnSale bool) bool {
	if !r.HasCustomPricing(v) {
		return currentlyOnSale
	}
	if !r.SalePrice(set, v).IsSet() {
		return false
	}
	return currentlyOnSale
}

// EffectivePrice returns v's custom price when it is strictly below price,
// otherwise price unchanged.
func (r *Resolver) EffectivePrice(price Price, set PriceSet, v Viewer) Price {
	custom := r.customPrice(set, v)
	if custom.LessThan(price) {
		return custom
	}
	return price
}

// VariablePricing aggregates a variable product. Regular and sale are passed
// through as stored; the final price starts from the lower of the two when a
// positive sale price exists.
func (r *Resolver) VariablePricing(regular, sale Price, set PriceSet, v Viewer) VariablePricing {
	base := regular
	if sale.IsPositive() && (!regular.IsSet() || sale.LessThan(regular)) {
		base = sale
	}
	set.Regular, set.Sale = regular, sale
	return VariablePricing{
		Regular: regular,
		Sale:    sale,
		Price:   r.EffectivePrice(base, set, v),
	}
}

// Resolve runs the storefront read points for a simple product.
func (r *Resolver) Resolve(set PriceSet, v Viewer) ResolvedPricing {
	onSale := CurrentlyOnSale(set)
	return ResolvedPricing{
		SalePrice: r.SalePrice(set, v),
		OnSale:    r.IsOnSale(set, v, onSale),
		Price:     r.EffectivePrice(CurrentPrice(set), set, v),
	}
}
