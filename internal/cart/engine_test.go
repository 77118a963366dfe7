package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/savorbowl/storefront-backend/pkg/enums"
)

type stubStore struct {
	items     []LineItem
	loadErr   error
	saveErr   error
	saveCount int
	saved     []LineItem
}

func (s *stubStore) Load(ctx context.Context) ([]LineItem, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.items, nil
}

func (s *stubStore) Save(ctx context.Context, items []LineItem) error {
	s.saveCount++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = items
	return nil
}

type recordingNotifier struct {
	notes []Notification
}

func (n *recordingNotifier) Notify(ctx context.Context, note Notification) {
	n.notes = append(n.notes, note)
}

func (n *recordingNotifier) last(t *testing.T) Notification {
	t.Helper()
	if len(n.notes) == 0 {
		t.Fatal("expected at least one notification")
	}
	return n.notes[len(n.notes)-1]
}

func newTestEngine(t *testing.T, store *stubStore, notifier *recordingNotifier) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), EngineParams{
		Catalog:  DefaultCatalog(),
		Store:    store,
		Notifier: notifier,
		Pricing:  DefaultPricing(),
	})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func plainItem(id, name, price string, quantity int) LineItem {
	return LineItem{
		ID:        id,
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	if _, err := NewEngine(context.Background(), EngineParams{
		Notifier: &recordingNotifier{},
		Pricing:  DefaultPricing(),
	}); err == nil {
		t.Fatal("expected error without store")
	}
	if _, err := NewEngine(context.Background(), EngineParams{
		Store:   &stubStore{},
		Pricing: DefaultPricing(),
	}); err == nil {
		t.Fatal("expected error without notifier")
	}
}

func TestNewEngineHydratesFromStore(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "8.99", 2)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	items := engine.Items()
	if len(items) != 1 || items[0].ID != "burger" || items[0].Quantity != 2 {
		t.Fatalf("unexpected hydrated items %+v", items)
	}
}

func TestNewEngineLoadFailureStartsEmpty(t *testing.T) {
	store := &stubStore{loadErr: errors.New("redis down")}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	if len(engine.Items()) != 0 {
		t.Fatalf("expected empty cart, got %+v", engine.Items())
	}
	note := notifier.last(t)
	if note.Severity != enums.NotificationSeverityError || note.Title != "Cart unavailable" {
		t.Fatalf("unexpected notification %+v", note)
	}
}

func TestAddItemMergesUncustomizedRows(t *testing.T) {
	store := &stubStore{}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "8.99", 1)); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "8.99", 2)); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items := engine.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged row, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", items[0].Quantity)
	}
	note := notifier.last(t)
	if note.Description != "Burger (x3)" {
		t.Fatalf("unexpected merge notification %q", note.Description)
	}
	if store.saveCount != 2 {
		t.Fatalf("expected save after each add, got %d", store.saveCount)
	}
}

func TestAddItemCustomizedRowsNeverMerge(t *testing.T) {
	engine := newTestEngine(t, &stubStore{}, &recordingNotifier{})

	custom := plainItem("burger", "Burger", "8.99", 1)
	custom.Customizations = []Customization{{Name: "Cheese", Value: "extra"}}

	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "8.99", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := engine.AddItem(context.Background(), custom); err != nil {
		t.Fatalf("customized add failed: %v", err)
	}
	if err := engine.AddItem(context.Background(), custom); err != nil {
		t.Fatalf("second customized add failed: %v", err)
	}

	items := engine.Items()
	if len(items) != 3 {
		t.Fatalf("expected three rows, got %d", len(items))
	}
}

func TestAddItemMergeSkipsCustomizedExistingRow(t *testing.T) {
	custom := plainItem("burger", "Burger", "8.99", 1)
	custom.Customizations = []Customization{{Name: "Cheese", Value: "extra"}}
	store := &stubStore{items: []LineItem{custom}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "8.99", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items := engine.Items()
	if len(items) != 2 {
		t.Fatalf("expected separate row next to customized one, got %d", len(items))
	}
}

func TestAddItemRejectsMalformedInput(t *testing.T) {
	engine := newTestEngine(t, &stubStore{}, &recordingNotifier{})

	if err := engine.AddItem(context.Background(), plainItem("", "Burger", "8.99", 1)); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "8.99", 0)); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "-1.00", 1)); err == nil {
		t.Fatal("expected error for negative price")
	}
	if len(engine.Items()) != 0 {
		t.Fatalf("rejected adds must not mutate the cart: %+v", engine.Items())
	}
}

func TestRemoveItemDropsEveryMatchingRow(t *testing.T) {
	custom := plainItem("burger", "Burger", "8.99", 1)
	custom.Customizations = []Customization{{Name: "Cheese", Value: "extra"}}
	store := &stubStore{items: []LineItem{
		plainItem("burger", "Burger", "8.99", 2),
		custom,
		plainItem("fries", "Fries", "3.49", 1),
	}}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	engine.RemoveItem(context.Background(), "burger")

	items := engine.Items()
	if len(items) != 1 || items[0].ID != "fries" {
		t.Fatalf("expected only fries to remain, got %+v", items)
	}
	note := notifier.last(t)
	if note.Title != "Removed from cart" {
		t.Fatalf("unexpected notification %+v", note)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := &stubStore{items: []LineItem{
		plainItem("burger", "Burger", "8.99", 1),
		plainItem("fries", "Fries", "3.49", 1),
	}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	engine.RemoveItem(context.Background(), "burger")
	after := engine.Items()
	engine.RemoveItem(context.Background(), "burger")

	if len(engine.Items()) != len(after) {
		t.Fatalf("second removal must be a no-op, got %+v", engine.Items())
	}
}

func TestRemoveItemAbsentIDIsSilent(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("fries", "Fries", "3.49", 1)}}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	engine.RemoveItem(context.Background(), "burger")

	if len(engine.Items()) != 1 {
		t.Fatalf("cart must be untouched, got %+v", engine.Items())
	}
	if len(notifier.notes) != 0 {
		t.Fatalf("expected no notification, got %+v", notifier.notes)
	}
	if store.saveCount != 0 {
		t.Fatalf("expected no save, got %d", store.saveCount)
	}
}

func TestUpdateQuantityOverwritesEveryMatchingRow(t *testing.T) {
	custom := plainItem("burger", "Burger", "8.99", 1)
	custom.Customizations = []Customization{{Name: "Cheese", Value: "extra"}}
	store := &stubStore{items: []LineItem{
		plainItem("burger", "Burger", "8.99", 2),
		custom,
	}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	engine.UpdateQuantity(context.Background(), "burger", 5)

	for _, item := range engine.Items() {
		if item.Quantity != 5 {
			t.Fatalf("every burger row should be set to 5, got %+v", item)
		}
	}
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "8.99", 2)}}
		engine := newTestEngine(t, store, &recordingNotifier{})

		engine.UpdateQuantity(context.Background(), "burger", quantity)

		if len(engine.Items()) != 0 {
			t.Fatalf("quantity %d: expected empty cart, got %+v", quantity, engine.Items())
		}
	}
}

func TestUpdateQuantityUnknownIDIsSilent(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("fries", "Fries", "3.49", 1)}}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	engine.UpdateQuantity(context.Background(), "burger", 4)

	if len(notifier.notes) != 0 {
		t.Fatalf("expected no notification, got %+v", notifier.notes)
	}
	if store.saveCount != 0 {
		t.Fatalf("expected no save, got %d", store.saveCount)
	}
}

func TestClearResetsItemsAndPromoState(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "25.00", 2)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if !engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("expected promo to apply")
	}
	engine.ApplyPromoCode(context.Background(), "NOPE")
	engine.Clear(context.Background())

	if len(engine.Items()) != 0 {
		t.Fatalf("expected empty cart, got %+v", engine.Items())
	}
	if engine.AppliedPromo() != nil {
		t.Fatal("expected promo cleared")
	}
	if engine.PromoError() != "" {
		t.Fatalf("expected promo error cleared, got %q", engine.PromoError())
	}
}

func TestApplyPromoCodeEmpty(t *testing.T) {
	engine := newTestEngine(t, &stubStore{}, &recordingNotifier{})

	if engine.ApplyPromoCode(context.Background(), "   ") {
		t.Fatal("expected rejection")
	}
	if engine.PromoError() != "Please enter a promo code" {
		t.Fatalf("unexpected message %q", engine.PromoError())
	}
}

func TestApplyPromoCodeUnknown(t *testing.T) {
	engine := newTestEngine(t, &stubStore{}, &recordingNotifier{})

	if engine.ApplyPromoCode(context.Background(), "BOGUS") {
		t.Fatal("expected rejection")
	}
	if engine.PromoError() != "Invalid promo code" {
		t.Fatalf("unexpected message %q", engine.PromoError())
	}
}

func TestApplyPromoCodeExpired(t *testing.T) {
	expiry := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	catalog := Catalog{{
		Code:        "OLD",
		Kind:        enums.PromoKindPercentage,
		Value:       decimal.NewFromInt(10),
		Description: "10% off",
		IsActive:    true,
		ExpiresAt:   &expiry,
	}}
	engine, err := NewEngine(context.Background(), EngineParams{
		Catalog:  catalog,
		Store:    &stubStore{items: []LineItem{plainItem("burger", "Burger", "30.00", 1)}},
		Notifier: &recordingNotifier{},
		Pricing:  DefaultPricing(),
		Now:      func() time.Time { return expiry.Add(time.Hour) },
	})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if engine.ApplyPromoCode(context.Background(), "OLD") {
		t.Fatal("expected rejection")
	}
	if engine.PromoError() != "This promo code has expired" {
		t.Fatalf("unexpected message %q", engine.PromoError())
	}
}

func TestApplyPromoCodeBelowMinimum(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("fries", "Fries", "3.49", 1)}}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	if engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("expected rejection")
	}
	if engine.PromoError() != "Minimum order amount is $20.00" {
		t.Fatalf("unexpected message %q", engine.PromoError())
	}
	if engine.AppliedPromo() != nil {
		t.Fatal("rejected promo must not be applied")
	}
	note := notifier.last(t)
	if note.Severity != enums.NotificationSeverityError {
		t.Fatalf("expected error notification, got %+v", note)
	}
}

func TestApplyPromoCodeThresholdRoundTrip(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "19.00", 1)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("expected rejection below $20")
	}

	if err := engine.AddItem(context.Background(), plainItem("soda", "Soda", "1.50", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("expected promo to apply at $20.50")
	}
	if engine.PromoError() != "" {
		t.Fatalf("expected promo error cleared, got %q", engine.PromoError())
	}
	promo := engine.AppliedPromo()
	if promo == nil || promo.Code != "WELCOME10" {
		t.Fatalf("unexpected applied promo %+v", promo)
	}
}

func TestApplyPromoCodeCaseInsensitive(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "25.00", 1)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if !engine.ApplyPromoCode(context.Background(), "  welcome10  ") {
		t.Fatal("expected case-insensitive match")
	}
}

func TestApplyPromoCodeReplacesPrevious(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "40.00", 1)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if !engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("first promo should apply")
	}
	if !engine.ApplyPromoCode(context.Background(), "FREESHIP") {
		t.Fatal("second promo should apply")
	}
	promo := engine.AppliedPromo()
	if promo == nil || promo.Code != "FREESHIP" {
		t.Fatalf("expected FREESHIP to replace WELCOME10, got %+v", promo)
	}
}

func TestFailedApplyKeepsExistingPromo(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "40.00", 1)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if !engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("promo should apply")
	}
	if engine.ApplyPromoCode(context.Background(), "BOGUS") {
		t.Fatal("expected rejection")
	}

	promo := engine.AppliedPromo()
	if promo == nil || promo.Code != "WELCOME10" {
		t.Fatalf("existing promo must survive a failed apply, got %+v", promo)
	}
	if engine.PromoError() != "Invalid promo code" {
		t.Fatalf("unexpected message %q", engine.PromoError())
	}
}

func TestRemovePromoCode(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "25.00", 1)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if !engine.ApplyPromoCode(context.Background(), "WELCOME10") {
		t.Fatal("promo should apply")
	}
	engine.RemovePromoCode(context.Background())

	if engine.AppliedPromo() != nil {
		t.Fatal("expected promo removed")
	}
	if engine.PromoError() != "" {
		t.Fatalf("expected promo error cleared, got %q", engine.PromoError())
	}
}

func TestFreeShippingRevertsWhenCartShrinks(t *testing.T) {
	store := &stubStore{items: []LineItem{
		plainItem("burger", "Burger", "20.00", 1),
		plainItem("fries", "Fries", "15.00", 1),
	}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	if !engine.ApplyPromoCode(context.Background(), "FREESHIP") {
		t.Fatal("promo should apply at $35")
	}
	engine.RemoveItem(context.Background(), "fries")

	totals := engine.Totals()
	if !totals.ShippingFee.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("shipping must revert below the minimum, got %s", totals.ShippingFee)
	}
	if engine.AppliedPromo() == nil {
		t.Fatal("promo stays applied; only its effect is suspended")
	}
}

func TestPersistFailureDoesNotPropagate(t *testing.T) {
	store := &stubStore{saveErr: errors.New("redis down")}
	notifier := &recordingNotifier{}
	engine := newTestEngine(t, store, notifier)

	if err := engine.AddItem(context.Background(), plainItem("burger", "Burger", "8.99", 1)); err != nil {
		t.Fatalf("add must succeed despite save failure: %v", err)
	}
	if len(engine.Items()) != 1 {
		t.Fatalf("in-memory cart stays authoritative, got %+v", engine.Items())
	}
	note := notifier.last(t)
	if note.Title != "Cart not saved" || note.Severity != enums.NotificationSeverityError {
		t.Fatalf("unexpected notification %+v", note)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	store := &stubStore{items: []LineItem{plainItem("burger", "Burger", "8.99", 1)}}
	engine := newTestEngine(t, store, &recordingNotifier{})

	items := engine.Items()
	items[0].Quantity = 99

	if engine.Items()[0].Quantity != 1 {
		t.Fatal("mutating the returned slice must not touch engine state")
	}
}
