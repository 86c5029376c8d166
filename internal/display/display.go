// Package display describes how a resolved price should be presented. It
// produces a view model (labels, roles, badges) and leaves markup to the
// storefront.
package display

import (
	"fmt"
	"strings"

	"member-pricing-service/internal/pricing"
)

type Variant string

const (
	VariantSale  Variant = "sale"
	VariantGroup Variant = "group"
	VariantPlain Variant = "plain"
)

// Element is how an amount is marked up: a deletion (struck through),
// an insertion, or a plain span.
type Element string

const (
	ElementDel  Element = "del"
	ElementIns  Element = "ins"
	ElementSpan Element = "span"
)

// Amount is one labelled price in the display.
type Amount struct {
	Element   Element `json:"element"`
	AriaLabel string  `json:"aria_label"`
	Currency  string  `json:"currency_symbol"`
	Value     string  `json:"amount"`
}

// Badge is a visual-only marker; screen readers get the label from the
// amount it accompanies.
type Badge struct {
	Text       string `json:"text"`
	Class      string `json:"class"`
	AriaHidden bool   `json:"aria_hidden"`
}

type Display struct {
	Variant   Variant  `json:"variant"`
	Amounts   []Amount `json:"amounts"`
	Badge     *Badge   `json:"badge,omitempty"`
	SaleFlash string   `json:"sale_flash,omitempty"`
}

// Input is the price state as the storefront reads it after resolution.
type Input struct {
	CurrencySymbol string
	Regular        pricing.Price
	Sale           pricing.Price
	OnSale         bool
	Current        pricing.Price
	Group          pricing.Role
}

const (
	labelRegular     = "Regular price"
	labelCurrentSale = "Current sale price"
	labelCurrent     = "Current price"
	saleFlash        = "Sale!"
	badgeClass       = "woocommerce-price__custom-badge"
)

func Build(in Input) Display {
	amount := func(el Element, label string, p pricing.Price) Amount {
		return Amount{Element: el, AriaLabel: label, Currency: in.CurrencySymbol, Value: p.String()}
	}
	differs := !in.Regular.Equal(in.Current)

	var d Display
	switch {
	case in.OnSale && in.Sale.IsSet():
		d.Variant = VariantSale
		d.Amounts = []Amount{
			amount(ElementDel, labelRegular, in.Regular),
			amount(ElementIns, labelCurrentSale, in.Sale),
		}
	case in.Group != pricing.RoleAnonymous && differs:
		d.Variant = VariantGroup
		d.Amounts = []Amount{
			amount(ElementDel, labelRegular, in.Regular),
			amount(ElementIns, groupLabel(in.Group), in.Current),
		}
	default:
		d.Variant = VariantPlain
		d.Amounts = []Amount{amount(ElementSpan, labelCurrent, in.Current)}
	}

	if in.Group != pricing.RoleAnonymous && !in.OnSale && differs {
		d.Badge = &Badge{
			Text:       strings.ToLower(groupLabel(in.Group)),
			Class:      fmt.Sprintf("%s %s--%s", badgeClass, badgeClass, in.Group),
			AriaHidden: true,
		}
	}
	if in.OnSale {
		d.SaleFlash = saleFlash
	}
	return d
}

func groupLabel(r pricing.Role) string {
	return r.Label() + " price"
}
