package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/savorbowl/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// PromoCode is a promotional rule from the configured catalog.
type PromoCode struct {
	Code           string           `json:"code"`
	Kind           enums.PromoKind  `json:"kind"`
	Value          decimal.Decimal  `json:"value"`
	Description    string           `json:"description"`
	MinOrderAmount decimal.Decimal  `json:"min_order_amount"`
	MaxDiscount    *decimal.Decimal `json:"max_discount,omitempty"`
	IsActive       bool             `json:"is_active"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
}

// Expired reports whether the code is past its expiry relative to now.
// Codes without an expiry never expire.
func (p PromoCode) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// MeetsMinimum reports whether the subtotal qualifies for the code.
func (p PromoCode) MeetsMinimum(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(p.MinOrderAmount)
}

// Catalog is the read-only set of promo codes known to the engine.
type Catalog []PromoCode

// FindActive returns a copy of the active entry whose code matches
// case-insensitively, or nil. Inactive entries never match.
func (c Catalog) FindActive(code string) *PromoCode {
	needle := strings.TrimSpace(code)
	for i := range c {
		if c[i].IsActive && strings.EqualFold(c[i].Code, needle) {
			entry := c[i]
			return &entry
		}
	}
	return nil
}

// User-facing promo validation messages. The storefront shows these verbatim.
const (
	msgPromoEmpty   = "Please enter a promo code"
	msgPromoInvalid = "Invalid promo code"
	msgPromoExpired = "This promo code has expired"
)

func msgPromoMinimum(minOrder decimal.Decimal) string {
	return fmt.Sprintf("Minimum order amount is $%s", minOrder.StringFixed(2))
}
