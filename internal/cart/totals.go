package cart

import (
	"github.com/savorbowl/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Pricing holds the flat rates applied to every cart.
type Pricing struct {
	TaxRate     decimal.Decimal
	ShippingFee decimal.Decimal
}

// DefaultPricing mirrors the storefront defaults: 8.25% tax, $5 flat delivery.
func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:     decimal.RequireFromString("0.0825"),
		ShippingFee: decimal.RequireFromString("5.00"),
	}
}

// Totals is the derived monetary breakdown for a cart state.
type Totals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	Discount           decimal.Decimal `json:"discount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	ShippingFee        decimal.Decimal `json:"shipping_fee"`
	Total              decimal.Decimal `json:"total"`
	ItemCount          int             `json:"item_count"`
}

// ComputeTotals derives the full breakdown from the rows and the applied
// promo. Discount and tax are rounded to cents before the total is composed,
// so Total always equals DiscountedSubtotal + Tax + ShippingFee exactly.
func ComputeTotals(items []LineItem, promo *PromoCode, pricing Pricing) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}

	discount := promoDiscount(subtotal, promo).Round(2)
	discounted := subtotal.Sub(discount)
	tax := discounted.Mul(pricing.TaxRate).Round(2)
	shipping := shippingFee(subtotal, promo, pricing)

	return Totals{
		Subtotal:           subtotal,
		Discount:           discount,
		DiscountedSubtotal: discounted,
		Tax:                tax,
		ShippingFee:        shipping,
		Total:              discounted.Add(tax).Add(shipping),
		ItemCount:          count,
	}
}

// promoDiscount applies the promo's rules against the subtotal. Eligibility
// is re-checked on every read: a promo that qualified when applied
// contributes nothing once the cart shrinks below its minimum.
func promoDiscount(subtotal decimal.Decimal, promo *PromoCode) decimal.Decimal {
	if promo == nil || !promo.MeetsMinimum(subtotal) {
		return decimal.Zero
	}

	switch promo.Kind {
	case enums.PromoKindPercentage:
		discount := subtotal.Mul(promo.Value).Div(hundred)
		if promo.MaxDiscount != nil && discount.GreaterThan(*promo.MaxDiscount) {
			discount = *promo.MaxDiscount
		}
		return discount
	case enums.PromoKindFixedAmount:
		// The fixed path clamps to the subtotal only; MaxDiscount is not
		// re-applied here. That asymmetry matches the shipped business rules.
		if promo.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return promo.Value
	default:
		// Free shipping is reflected in the shipping term, not the discount.
		return decimal.Zero
	}
}

func shippingFee(subtotal decimal.Decimal, promo *PromoCode, pricing Pricing) decimal.Decimal {
	if promo != nil && promo.Kind == enums.PromoKindFreeShipping && promo.MeetsMinimum(subtotal) {
		return decimal.Zero
	}
	return pricing.ShippingFee
}
