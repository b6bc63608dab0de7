package controllers

import (
	"net/http"

	"github.com/harborlight/storefront-backend/api/responses"
	"github.com/harborlight/storefront-backend/internal/catalog"
	"github.com/harborlight/storefront-backend/internal/images"
	"github.com/harborlight/storefront-backend/pkg/logger"
)

// CatalogCacheInfo reports on the catalog and image caches.
func CatalogCacheInfo(svc catalog.Service, imageSvc *images.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		payload := map[string]any{
			"catalog": svc.CacheInfo(ctx),
		}
		if stats, err := imageSvc.Stats(ctx); err != nil {
			logg.Error(ctx, "read image cache stats", err)
		} else {
			payload["images"] = stats
		}
		responses.WriteSuccess(w, payload)
	}
}

// CatalogRefresh drops the cached catalog and reloads it from the feed.
func CatalogRefresh(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		products, err := svc.Refresh(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"product_count": len(products),
			"cache":         svc.CacheInfo(ctx),
		})
	}
}
