package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/savorbowl/storefront-backend/internal/cart"
	pkgerrors "github.com/savorbowl/storefront-backend/pkg/errors"
)

// AddItemRequest is the payload for adding a row to the session cart.
// Monetary values travel as decimal strings.
type AddItemRequest struct {
	ID             string                 `json:"id" validate:"required"`
	Name           string                 `json:"name" validate:"required"`
	UnitPrice      string                 `json:"unit_price" validate:"required"`
	Quantity       int                    `json:"quantity" validate:"required,gte=1"`
	Customizations []CustomizationPayload `json:"customizations,omitempty" validate:"dive"`
	ImageRef       string                 `json:"image_ref,omitempty"`
	SourceLabel    string                 `json:"source_label,omitempty"`
}

// CustomizationPayload mirrors one selected modifier.
type CustomizationPayload struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// UpdateQuantityRequest carries the new quantity; zero or negative removes
// the item, so no lower bound is enforced here.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyPromoRequest carries the raw promo code; emptiness is validated by
// the engine so the user sees the storefront's own message.
type ApplyPromoRequest struct {
	Code string `json:"code"`
}

func (r AddItemRequest) toLineItem() (cartsvc.LineItem, error) {
	unitPrice, err := decimal.NewFromString(r.UnitPrice)
	if err != nil {
		return cartsvc.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit price")
	}
	if unitPrice.IsNegative() {
		return cartsvc.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}

	customizations := make([]cartsvc.Customization, 0, len(r.Customizations))
	for _, c := range r.Customizations {
		customizations = append(customizations, cartsvc.Customization{Name: c.Name, Value: c.Value})
	}
	if len(customizations) == 0 {
		customizations = nil
	}

	return cartsvc.LineItem{
		ID:             r.ID,
		Name:           r.Name,
		UnitPrice:      unitPrice,
		Quantity:       r.Quantity,
		Customizations: customizations,
		ImageRef:       r.ImageRef,
		SourceLabel:    r.SourceLabel,
	}, nil
}
