package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/savorbowl/storefront-backend/pkg/enums"
	pkgerrors "github.com/savorbowl/storefront-backend/pkg/errors"
	"github.com/savorbowl/storefront-backend/pkg/metrics"
)

// Engine owns one session's cart state: the ordered line items, at most one
// applied promo code, and the most recent promo validation message. All
// mutations run synchronously on the caller; collaborator failures are
// reported through the notifier and never escape an operation. The engine is
// not safe for concurrent use; callers sharing one instance across
// goroutines must serialize access themselves.
type Engine struct {
	catalog  Catalog
	store    Store
	notifier Notifier
	metrics  *metrics.CartMetrics
	pricing  Pricing
	now      func() time.Time

	items      []LineItem
	applied    *PromoCode
	promoError string
}

// EngineParams bundles the collaborators an engine is built from.
type EngineParams struct {
	Catalog  Catalog
	Store    Store
	Notifier Notifier
	Metrics  *metrics.CartMetrics
	Pricing  Pricing
	Now      func() time.Time
}

// NewEngine builds an engine and hydrates it from the store. A failed load
// is reported as a warning and leaves the cart empty; it is never fatal.
func NewEngine(ctx context.Context, params EngineParams) (*Engine, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.Pricing.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	if params.Pricing.ShippingFee.IsNegative() {
		return nil, fmt.Errorf("shipping fee must be non-negative")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		catalog:  params.Catalog,
		store:    params.Store,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		pricing:  params.Pricing,
		now:      now,
	}
	e.hydrate(ctx)
	return e, nil
}

func (e *Engine) hydrate(ctx context.Context) {
	items, err := e.store.Load(ctx)
	if err != nil {
		e.notify(ctx, enums.NotificationSeverityError, "Cart unavailable",
			"Your saved cart could not be loaded. Starting with an empty cart.")
		return
	}
	e.items = items
}

// AddItem merges the item into an existing row when both the item and the
// row carry no customizations and share a catalog id; otherwise it appends a
// new row. Malformed input is a caller contract violation and is rejected at
// this boundary.
func (e *Engine) AddItem(ctx context.Context, item LineItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
	}
	if item.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item unit price cannot be negative")
	}

	merged := false
	if item.mergeable() {
		for i := range e.items {
			if e.items[i].ID == item.ID && e.items[i].mergeable() {
				e.items[i].Quantity += item.Quantity
				e.notify(ctx, enums.NotificationSeveritySuccess, "Added to cart",
					fmt.Sprintf("%s (x%d)", e.items[i].Name, e.items[i].Quantity))
				merged = true
				break
			}
		}
	}
	if !merged {
		e.items = append(e.items, item)
		e.notify(ctx, enums.NotificationSeveritySuccess, "Added to cart",
			fmt.Sprintf("%s added to your cart", item.Name))
	}

	e.metrics.IncOperation("add_item")
	e.persist(ctx)
	return nil
}

// RemoveItem removes every row carrying the catalog id, customized variants
// included. Removing an absent id is a silent no-op.
func (e *Engine) RemoveItem(ctx context.Context, id string) {
	var removed *LineItem
	remaining := make([]LineItem, 0, len(e.items))
	for _, item := range e.items {
		if item.ID == id {
			if removed == nil {
				match := item
				removed = &match
			}
			continue
		}
		remaining = append(remaining, item)
	}
	if removed == nil {
		return
	}

	e.items = remaining
	e.notify(ctx, enums.NotificationSeverityInfo, "Removed from cart",
		fmt.Sprintf("%s removed from your cart", removed.Name))
	e.metrics.IncOperation("remove_item")
	e.persist(ctx)
}

// UpdateQuantity sets the quantity on every row carrying the catalog id; a
// non-positive quantity removes the item entirely. When several customized
// rows share the id they are all overwritten with the same value: matching
// is by catalog id, not row identity.
func (e *Engine) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(ctx, id)
		return
	}

	updated := false
	var name string
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Quantity = quantity
			name = e.items[i].Name
			updated = true
		}
	}
	if !updated {
		return
	}

	e.notify(ctx, enums.NotificationSeverityInfo, "Cart updated",
		fmt.Sprintf("%s quantity set to %d", name, quantity))
	e.metrics.IncOperation("update_quantity")
	e.persist(ctx)
}

// Clear empties the cart and drops any applied promo and pending promo error.
func (e *Engine) Clear(ctx context.Context) {
	e.items = nil
	e.applied = nil
	e.promoError = ""

	e.notify(ctx, enums.NotificationSeverityInfo, "Cart cleared",
		"All items were removed from your cart")
	e.metrics.IncOperation("clear")
	e.persist(ctx)
}

// ApplyPromoCode validates the code against the catalog and current
// subtotal. The first failing check wins, records the user-facing message,
// and returns false; success replaces any previously applied promo.
func (e *Engine) ApplyPromoCode(ctx context.Context, code string) bool {
	e.promoError = ""

	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return e.rejectPromo(ctx, "empty", msgPromoEmpty)
	}

	entry := e.catalog.FindActive(trimmed)
	if entry == nil {
		return e.rejectPromo(ctx, "unknown", msgPromoInvalid)
	}
	if entry.Expired(e.now()) {
		return e.rejectPromo(ctx, "expired", msgPromoExpired)
	}
	subtotal := ComputeTotals(e.items, nil, e.pricing).Subtotal
	if !entry.MeetsMinimum(subtotal) {
		return e.rejectPromo(ctx, "below_minimum", msgPromoMinimum(entry.MinOrderAmount))
	}

	e.applied = entry
	e.notify(ctx, enums.NotificationSeveritySuccess, "Promo applied", entry.Description)
	e.metrics.IncPromoOutcome("applied")
	e.persist(ctx)
	return true
}

func (e *Engine) rejectPromo(ctx context.Context, outcome, message string) bool {
	e.promoError = message
	e.notify(ctx, enums.NotificationSeverityError, "Promo code", message)
	e.metrics.IncPromoOutcome(outcome)
	return false
}

// RemovePromoCode clears the applied promo and any pending promo error.
func (e *Engine) RemovePromoCode(ctx context.Context) {
	e.applied = nil
	e.promoError = ""

	e.notify(ctx, enums.NotificationSeverityInfo, "Promo removed",
		"Promo code removed from your cart")
	e.metrics.IncOperation("remove_promo")
	e.persist(ctx)
}

// Items returns a copy of the current rows in insertion order.
func (e *Engine) Items() []LineItem {
	items := make([]LineItem, len(e.items))
	copy(items, e.items)
	return items
}

// AppliedPromo returns a copy of the applied promo, or nil.
func (e *Engine) AppliedPromo() *PromoCode {
	if e.applied == nil {
		return nil
	}
	promo := *e.applied
	return &promo
}

// PromoError returns the pending promo validation message, if any.
func (e *Engine) PromoError() string {
	return e.promoError
}

// Totals recomputes the derived monetary breakdown for the current state.
func (e *Engine) Totals() Totals {
	return ComputeTotals(e.items, e.applied, e.pricing)
}

// persist writes the line items through the store. The in-memory cart stays
// authoritative when the write fails; the user just gets a warning.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, e.items); err != nil {
		e.notify(ctx, enums.NotificationSeverityError, "Cart not saved",
			"Your cart could not be saved and may reset when this session ends.")
	}
}

func (e *Engine) notify(ctx context.Context, severity enums.NotificationSeverity, title, description string) {
	e.notifier.Notify(ctx, Notification{
		Title:       title,
		Description: description,
		Severity:    severity,
	})
}
