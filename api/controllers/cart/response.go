package cart

import (
	cartsvc "github.com/savorbowl/storefront-backend/internal/cart"
)

// CartPayload is the full session cart view returned by every cart route.
type CartPayload struct {
	Items      []cartsvc.LineItem `json:"items"`
	Totals     cartsvc.Totals     `json:"totals"`
	Promo      *PromoPayload      `json:"promo,omitempty"`
	PromoError string             `json:"promo_error,omitempty"`
}

// PromoPayload exposes the applied promo without its eligibility internals.
type PromoPayload struct {
	Code        string `json:"code"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// ApplyPromoPayload reports the outcome of a promo application attempt next
// to the refreshed cart view.
type ApplyPromoPayload struct {
	Applied bool        `json:"applied"`
	Cart    CartPayload `json:"cart"`
}

func newCartPayload(engine *cartsvc.Engine) CartPayload {
	payload := CartPayload{
		Items:      engine.Items(),
		Totals:     engine.Totals(),
		PromoError: engine.PromoError(),
	}
	if promo := engine.AppliedPromo(); promo != nil {
		payload.Promo = &PromoPayload{
			Code:        promo.Code,
			Kind:        promo.Kind.String(),
			Description: promo.Description,
		}
	}
	return payload
}
