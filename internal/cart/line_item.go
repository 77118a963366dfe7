package cart

import (
	"github.com/shopspring/decimal"
)

// Customization is one selected modifier on a line item, e.g. "Cheese: extra".
type Customization struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LineItem is one purchasable row in the cart. The ID is the catalog item
// identifier, not a row identifier: several rows may share an ID when they
// carry different customizations.
type LineItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	Customizations []Customization `json:"customizations,omitempty"`
	ImageRef       string          `json:"image_ref,omitempty"`
	SourceLabel    string          `json:"source_label,omitempty"`
}

// LineTotal returns the extended price for the row.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// mergeable reports whether the row participates in quantity merging. Rows
// with customizations never merge, even against the same catalog id: a plain
// burger and a burger with extra cheese are different purchasable entities.
func (li LineItem) mergeable() bool {
	return len(li.Customizations) == 0
}
