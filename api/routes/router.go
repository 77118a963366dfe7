package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/savorbowl/storefront-backend/api/controllers"
	cartcontrollers "github.com/savorbowl/storefront-backend/api/controllers/cart"
	"github.com/savorbowl/storefront-backend/api/middleware"
	cartsvc "github.com/savorbowl/storefront-backend/internal/cart"
	"github.com/savorbowl/storefront-backend/pkg/config"
	"github.com/savorbowl/storefront-backend/pkg/logger"
	"github.com/savorbowl/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cache redis.Pinger,
	cartFactory *cartsvc.Factory,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Get("/ping", controllers.SessionPing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartFactory, logg))
			r.Delete("/", cartcontrollers.CartClear(cartFactory, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartFactory, logg))
			r.Patch("/items/{itemID}", cartcontrollers.CartUpdateQuantity(cartFactory, logg))
			r.Delete("/items/{itemID}", cartcontrollers.CartRemoveItem(cartFactory, logg))
			r.Post("/promo", cartcontrollers.CartApplyPromo(cartFactory, logg))
			r.Delete("/promo", cartcontrollers.CartRemovePromo(cartFactory, logg))
		})
	})

	return r
}
