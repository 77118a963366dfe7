package controllers

import (
	"net/http"

	"github.com/savorbowl/storefront-backend/api/responses"
	"github.com/savorbowl/storefront-backend/pkg/config"
	pkgerrors "github.com/savorbowl/storefront-backend/pkg/errors"
	"github.com/savorbowl/storefront-backend/pkg/logger"
	"github.com/savorbowl/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Savorbowl-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the cart store dependency before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Savorbowl-Env", cfg.App.Env)

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
