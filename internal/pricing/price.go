package pricing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is an optional money amount. The zero value is unset and renders as
// the empty string, which is distinct from a set price of zero.
type Price struct {
	amount decimal.Decimal
	valid  bool
}

// NewPrice returns a set price.
func NewPrice(amount decimal.Decimal) Price {
	return Price{amount: amount, valid: true}
}

// ParsePrice parses a catalog price string. Blank input yields an unset price.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return NewPrice(d), nil
}

// MustPrice is ParsePrice for literals; it panics on malformed input.
func MustPrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) IsSet() bool { return p.valid }

func (p Price) Amount() decimal.Decimal { return p.amount }

// IsPositive reports whether the price is set and greater than zero.
func (p Price) IsPositive() bool { return p.valid && p.amount.IsPositive() }

// LessThan is false whenever either side is unset.
func (p Price) LessThan(o Price) bool {
	return p.valid && o.valid && p.amount.LessThan(o.amount)
}

// LessThanOrEqual is false whenever either side is unset.
func (p Price) LessThanOrEqual(o Price) bool {
	return p.valid && o.valid && p.amount.LessThanOrEqual(o.amount)
}

// Equal treats two unset prices as equal.
func (p Price) Equal(o Price) bool {
	if !p.valid || !o.valid {
		return p.valid == o.valid
	}
	return p.amount.Equal(o.amount)
}

func (p Price) String() string {
	if !p.valid {
		return ""
	}
	return p.amount.StringFixed(2)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a string ("20.00" or ""), a bare number, or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = Price{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Scan reads a nullable DECIMAL column.
func (p *Price) Scan(src any) error {
	var nd decimal.NullDecimal
	if err := nd.Scan(src); err != nil {
		return err
	}
	*p = Price{amount: nd.Decimal, valid: nd.Valid}
	return nil
}

func (p Price) Value() (driver.Value, error) {
	if !p.valid {
		return nil, nil
	}
	return p.amount.StringFixed(2), nil
}
