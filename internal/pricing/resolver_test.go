package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var member = Viewer{Role: RoleMember}

func priceSet(regular, sale, memberPrice string) PriceSet {
	set := PriceSet{Regular: MustPrice(regular), Sale: MustPrice(sale)}
	if memberPrice != "" {
		set = set.WithRolePrice(RoleMember, MustPrice(memberPrice))
	}
	return set
}

func TestSalePrice(t *testing.T) {
	r := NewResolver()

	cases := []struct {
		name   string
		set    PriceSet
		viewer Viewer
		want   string
	}{
		{"non-member keeps sale price", priceSet("25.00", "20.00", "17.50"), Anonymous, "20.00"},
		{"customer keeps sale price", priceSet("25.00", "20.00", "17.50"), Viewer{Role: RoleCustomer}, "20.00"},
		{"member price lower suppresses sale", priceSet("25.00", "20.00", "17.50"), member, ""},
		{"member price equal suppresses sale", priceSet("25.00", "15.00", "15.00"), member, ""},
		{"member price higher keeps sale", priceSet("25.00", "15.00", "20.00"), member, "15.00"},
		{"no member price keeps sale", priceSet("25.00", "20.00", ""), member, "20.00"},
		{"no sale price stays empty", priceSet("25.00", "", "17.50"), member, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.SalePrice(tc.set, tc.viewer).String())
		})
	}
}

func TestIsOnSale(t *testing.T) {
	r := NewResolver()

	t.Run("non-member flag passes through", func(t *testing.T) {
		set := priceSet("25.00", "20.00", "17.50")
		assert.True(t, r.IsOnSale(set, Anonymous, true))
		assert.False(t, r.IsOnSale(set, Anonymous, false))
	})

	t.Run("member with suppressed sale is not on sale", func(t *testing.T) {
		assert.False(t, r.IsOnSale(priceSet("25.00", "20.00", "17.50"), member, true))
	})

	t.Run("member with visible sale keeps flag", func(t *testing.T) {
		assert.True(t, r.IsOnSale(priceSet("25.00", "15.00", "20.00"), member, true))
	})
}

func TestEffectivePrice(t *testing.T) {
	r := NewResolver()

	cases := []struct {
		name   string
		price  string
		set    PriceSet
		viewer Viewer
		want   string
	}{
		{"member equal to regular, non-member", "25.00", priceSet("25.00", "", "25.00"), Anonymous, "25.00"},
		{"member equal to regular, member", "25.00", priceSet("25.00", "", "25.00"), member, "25.00"},
		{"member lower than regular, non-member", "25.00", priceSet("25.00", "", "20.00"), Anonymous, "25.00"},
		{"member lower than regular, member", "25.00", priceSet("25.00", "", "20.00"), member, "20.00"},
		{"member higher than regular, member", "25.00", priceSet("25.00", "", "30.00"), member, "25.00"},
		{"member higher than sale, member", "15.00", priceSet("25.00", "15.00", "20.00"), member, "15.00"},
		{"member lower than sale, non-member", "15.00", priceSet("25.00", "15.00", "10.00"), Anonymous, "15.00"},
		{"member lower than sale, member", "15.00", priceSet("25.00", "15.00", "10.00"), member, "10.00"},
		{"member equal to sale, member", "15.00", priceSet("25.00", "15.00", "15.00"), member, "15.00"},
		{"unset price stays unset", "", priceSet("25.00", "", "10.00"), member, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.EffectivePrice(MustPrice(tc.price), tc.set, tc.viewer)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestVariablePricing(t *testing.T) {
	r := NewResolver()

	cases := []struct {
		name        string
		set         PriceSet
		viewer      Viewer
		wantRegular string
		wantSale    string
		wantPrice   string
	}{
		{"regular only", priceSet("25.00", "", ""), Anonymous, "25.00", "", "25.00"},
		{"sale lowers the price", priceSet("25.00", "20.00", ""), Anonymous, "25.00", "20.00", "20.00"},
		{"member below regular", priceSet("25.00", "", "20.00"), member, "25.00", "", "20.00"},
		{"member below sale", priceSet("25.00", "22.00", "20.00"), member, "25.00", "22.00", "20.00"},
		{"zero sale is ignored", priceSet("25.00", "0", ""), Anonymous, "25.00", "0.00", "25.00"},
		{"sale above regular uses regular", priceSet("25.00", "30.00", ""), Anonymous, "25.00", "30.00", "25.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.VariablePricing(tc.set.Regular, tc.set.Sale, tc.set, tc.viewer)
			assert.Equal(t, tc.wantRegular, got.Regular.String())
			assert.Equal(t, tc.wantSale, got.Sale.String())
			assert.Equal(t, tc.wantPrice, got.Price.String())
		})
	}
}

func TestResolveScenarios(t *testing.T) {
	r := NewResolver()

	t.Run("sale for non-member", func(t *testing.T) {
		got := r.Resolve(priceSet("25.00", "20.00", "17.50"), Anonymous)
		assert.Equal(t, "20.00", got.SalePrice.String())
		assert.True(t, got.OnSale)
		assert.Equal(t, "20.00", got.Price.String())
	})

	t.Run("member beats sale", func(t *testing.T) {
		got := r.Resolve(priceSet("25.00", "20.00", "17.50"), member)
		assert.Equal(t, "", got.SalePrice.String())
		assert.False(t, got.OnSale)
		assert.Equal(t, "17.50", got.Price.String())
	})

	t.Run("member price above regular is ignored", func(t *testing.T) {
		got := r.Resolve(priceSet("25.00", "", "30.00"), member)
		assert.False(t, got.OnSale)
		assert.Equal(t, "25.00", got.Price.String())
	})

	t.Run("member equal to sale", func(t *testing.T) {
		got := r.Resolve(priceSet("25.00", "15.00", "15.00"), member)
		assert.Equal(t, "", got.SalePrice.String())
		assert.False(t, got.OnSale)
		assert.Equal(t, "15.00", got.Price.String())
	})

	t.Run("member equal to regular", func(t *testing.T) {
		for _, v := range []Viewer{Anonymous, member} {
			got := r.Resolve(priceSet("25.00", "", "25.00"), v)
			assert.Equal(t, "25.00", got.Price.String())
		}
	})
}

func TestUnpricedRoleIsPassThrough(t *testing.T) {
	set := priceSet("25.00", "20.00", "").WithRolePrice(RoleSchool, MustPrice("10.00"))
	school := Viewer{Role: RoleSchool}

	got := NewResolver().Resolve(set, school)
	assert.Equal(t, "20.00", got.SalePrice.String())
	assert.True(t, got.OnSale)
	assert.Equal(t, "20.00", got.Price.String())

	got = NewResolver(RoleMember, RoleSchool).Resolve(set, school)
	assert.Equal(t, "", got.SalePrice.String())
	assert.False(t, got.OnSale)
	assert.Equal(t, "10.00", got.Price.String())
}

func TestMonotonicity(t *testing.T) {
	r := NewResolver()
	prev := MustPrice("1000.00")
	for cents := int64(3000); cents >= 0; cents -= 125 {
		set := priceSet("25.00", "20.00", "").WithRolePrice(RoleMember, NewPrice(decimal.New(cents, -2)))
		got := r.Resolve(set, member).Price
		require.True(t, got.LessThanOrEqual(prev), "price rose from %s to %s at member price %d cents", prev, got, cents)
		prev = got
	}
}

func TestNonMemberInvariance(t *testing.T) {
	r := NewResolver()
	sets := []PriceSet{
		priceSet("25.00", "20.00", "17.50"),
		priceSet("25.00", "", "10.00"),
		priceSet("25.00", "15.00", "15.00"),
		priceSet("25.00", "", "30.00"),
	}
	for _, set := range sets {
		for _, v := range []Viewer{Anonymous, {Role: RoleCustomer}, {Role: RoleAdministrator}} {
			got := r.Resolve(set, v)
			assert.True(t, set.Sale.Equal(got.SalePrice))
			assert.Equal(t, CurrentlyOnSale(set), got.OnSale)
			assert.True(t, CurrentPrice(set).Equal(got.Price))
		}
	}
}

func TestSuppressionConsistency(t *testing.T) {
	r := NewResolver()
	for _, mp := range []string{"5.00", "15.00", "17.50", "20.00", "22.00", "25.00", "30.00"} {
		set := priceSet("25.00", "20.00", mp)
		got := r.Resolve(set, member)
		if !got.SalePrice.IsSet() {
			assert.False(t, got.OnSale, "member price %s", mp)
			assert.True(t, got.Price.Equal(set.MemberPrice()), "member price %s", mp)
		}
	}
}

func TestNoMarkup(t *testing.T) {
	r := NewResolver()
	for _, price := range []string{"10.00", "17.50", "25.00"} {
		for _, mp := range []string{"", "5.00", "17.50", "40.00"} {
			set := priceSet("25.00", "", mp)
			in := MustPrice(price)
			for _, v := range []Viewer{Anonymous, member} {
				assert.True(t, r.EffectivePrice(in, set, v).LessThanOrEqual(in))
			}
		}
	}
}
