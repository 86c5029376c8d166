package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice(" 17.5 ")
	require.NoError(t, err)
	assert.True(t, p.IsSet())
	assert.Equal(t, "17.50", p.String())

	p, err = ParsePrice("")
	require.NoError(t, err)
	assert.False(t, p.IsSet())
	assert.Equal(t, "", p.String())

	_, err = ParsePrice("abc")
	assert.Error(t, err)
}

func TestZeroIsNotUnset(t *testing.T) {
	zero := MustPrice("0")
	assert.True(t, zero.IsSet())
	assert.False(t, zero.IsPositive())
	assert.Equal(t, "0.00", zero.String())
	assert.False(t, zero.Equal(Price{}))
}

func TestComparisonsWithUnset(t *testing.T) {
	p := MustPrice("10.00")
	assert.False(t, p.LessThan(Price{}))
	assert.False(t, Price{}.LessThan(p))
	assert.False(t, p.LessThanOrEqual(Price{}))
	assert.True(t, Price{}.Equal(Price{}))
}

func TestPriceJSON(t *testing.T) {
	var body struct {
		Regular Price `json:"regular"`
		Sale    Price `json:"sale"`
		Member  Price `json:"member"`
		Bare    Price `json:"bare"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"regular":"25.00","sale":"","member":null,"bare":17.5}`), &body))
	assert.Equal(t, "25.00", body.Regular.String())
	assert.False(t, body.Sale.IsSet())
	assert.False(t, body.Member.IsSet())
	assert.Equal(t, "17.50", body.Bare.String())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"regular":"25.00","sale":"","member":"","bare":"17.50"}`, string(out))
}

func TestPriceSQL(t *testing.T) {
	var p Price
	require.NoError(t, p.Scan([]byte("12.30")))
	assert.Equal(t, "12.30", p.String())

	require.NoError(t, p.Scan(nil))
	assert.False(t, p.IsSet())

	v, err := Price{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustPrice("9.5").Value()
	require.NoError(t, err)
	assert.Equal(t, "9.50", v)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Member ")
	assert.True(t, ok)
	assert.Equal(t, RoleMember, r)

	r, ok = ParseRole("wholesaler")
	assert.False(t, ok)
	assert.Equal(t, RoleAnonymous, r)

	assert.Equal(t, "Member", RoleMember.Label())
	assert.Equal(t, "Shop manager", RoleShopManager.Label())
	assert.True(t, RoleAdministrator.CanManagePrices())
	assert.False(t, RoleMember.CanManagePrices())
}
