package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savorbowl/storefront-backend/api/middleware"
	"github.com/savorbowl/storefront-backend/api/responses"
	"github.com/savorbowl/storefront-backend/api/validators"
	cartsvc "github.com/savorbowl/storefront-backend/internal/cart"
	pkgerrors "github.com/savorbowl/storefront-backend/pkg/errors"
	"github.com/savorbowl/storefront-backend/pkg/logger"
)

// CartFetch returns the session's cart with freshly computed totals.
func CartFetch(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartPayload(engine))
	}
}

// CartAddItem appends or merges a row into the session cart.
func CartAddItem(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := payload.toLineItem()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.AddItem(r.Context(), item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartPayload(engine))
	}
}

// CartUpdateQuantity sets the quantity for every row with the item id;
// non-positive quantities remove the item.
func CartUpdateQuantity(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.UpdateQuantity(r.Context(), itemID, payload.Quantity)
		responses.WriteSuccess(w, newCartPayload(engine))
	}
}

// CartRemoveItem drops every row with the item id, customized rows included.
func CartRemoveItem(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		engine.RemoveItem(r.Context(), itemID)
		responses.WriteSuccess(w, newCartPayload(engine))
	}
}

// CartClear empties the session cart.
func CartClear(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.Clear(r.Context())
		responses.WriteSuccess(w, newCartPayload(engine))
	}
}

// CartApplyPromo attempts a promo code; rejections are part of cart state,
// not transport errors, so the response is always 200 with the outcome.
func CartApplyPromo(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ApplyPromoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		applied := engine.ApplyPromoCode(r.Context(), payload.Code)
		responses.WriteSuccess(w, ApplyPromoPayload{
			Applied: applied,
			Cart:    newCartPayload(engine),
		})
	}
}

// CartRemovePromo drops the applied promo code.
func CartRemovePromo(factory *cartsvc.Factory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := engineForRequest(factory, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.RemovePromoCode(r.Context())
		responses.WriteSuccess(w, newCartPayload(engine))
	}
}

func engineForRequest(factory *cartsvc.Factory, r *http.Request) (*cartsvc.Engine, error) {
	if factory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart factory unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return factory.ForSession(r.Context(), sessionID)
}
