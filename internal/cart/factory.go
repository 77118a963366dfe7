package cart

import (
	"context"
	"strings"

	pkgerrors "github.com/savorbowl/storefront-backend/pkg/errors"
	"github.com/savorbowl/storefront-backend/pkg/metrics"
)

// StoreProvider yields the session-scoped storage collaborator.
type StoreProvider interface {
	ForSession(sessionID string) Store
}

// Factory builds a hydrated, session-scoped engine per request.
type Factory struct {
	catalog  Catalog
	stores   StoreProvider
	notifier Notifier
	metrics  *metrics.CartMetrics
	pricing  Pricing
}

// FactoryParams bundles the shared collaborators engines are built from.
type FactoryParams struct {
	Catalog  Catalog
	Stores   StoreProvider
	Notifier Notifier
	Metrics  *metrics.CartMetrics
	Pricing  Pricing
}

// NewFactory validates the shared stack once so per-request construction
// only has to check the session.
func NewFactory(params FactoryParams) (*Factory, error) {
	if params.Stores == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store provider required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifier required")
	}
	if params.Pricing.TaxRate.IsNegative() || params.Pricing.ShippingFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "pricing rates must be non-negative")
	}
	return &Factory{
		catalog:  params.Catalog,
		stores:   params.Stores,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		pricing:  params.Pricing,
	}, nil
}

// ForSession hydrates an engine for the session's stored cart.
func (f *Factory) ForSession(ctx context.Context, sessionID string) (*Engine, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return NewEngine(ctx, EngineParams{
		Catalog:  f.catalog,
		Store:    f.stores.ForSession(sessionID),
		Notifier: f.notifier,
		Metrics:  f.metrics,
		Pricing:  f.pricing,
	})
}
