package cart

import (
	"github.com/savorbowl/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DefaultCatalog returns the storefront's built-in promo codes. The engine
// accepts any catalog at construction, so this can move to external
// configuration without touching the pricing rules.
func DefaultCatalog() Catalog {
	welcomeCap := decimal.RequireFromString("15.00")
	return Catalog{
		{
			Code:           "WELCOME10",
			Kind:           enums.PromoKindPercentage,
			Value:          decimal.NewFromInt(10),
			Description:    "10% off your order",
			MinOrderAmount: decimal.RequireFromString("20.00"),
			MaxDiscount:    &welcomeCap,
			IsActive:       true,
		},
		{
			Code:           "SAVE5",
			Kind:           enums.PromoKindFixedAmount,
			Value:          decimal.RequireFromString("5.00"),
			Description:    "$5 off orders over $25",
			MinOrderAmount: decimal.RequireFromString("25.00"),
			IsActive:       true,
		},
		{
			Code:           "FREESHIP",
			Kind:           enums.PromoKindFreeShipping,
			Description:    "Free delivery on orders over $30",
			MinOrderAmount: decimal.RequireFromString("30.00"),
			IsActive:       true,
		},
	}
}
