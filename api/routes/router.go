package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborlight/storefront-backend/api/controllers"
	"github.com/harborlight/storefront-backend/api/middleware"
	"github.com/harborlight/storefront-backend/internal/catalog"
	"github.com/harborlight/storefront-backend/internal/images"
	"github.com/harborlight/storefront-backend/internal/sheets"
	"github.com/harborlight/storefront-backend/pkg/config"
	"github.com/harborlight/storefront-backend/pkg/db"
	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/harborlight/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	catalogService catalog.Service,
	imageService *images.Service,
	sheetService *sheets.Service,
	registry *prometheus.Registry,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg, cfg.Catalog.DefaultPageSize))
			r.Get("/search", controllers.SearchProducts(catalogService, logg, cfg.Catalog.DefaultPageSize))
			r.Get("/featured", controllers.FeaturedProducts(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
			r.Get("/{productId}/image", controllers.ProductImage(catalogService, imageService, logg))
		})

		r.Get("/store", controllers.StoreInfo(cfg))
		r.Get("/categories", controllers.Categories(catalogService, sheetService, logg))
		r.Get("/locations", controllers.Locations(sheetService, logg))
		r.Get("/faqs", controllers.FAQs(sheetService, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/cache", controllers.CatalogCacheInfo(catalogService, imageService, logg))
			r.Post("/refresh", controllers.CatalogRefresh(catalogService, logg))
		})
	})

	return r
}
