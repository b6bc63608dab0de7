package controllers

import (
	"net/http"

	"github.com/harborlight/storefront-backend/api/responses"
	"github.com/harborlight/storefront-backend/internal/catalog"
	"github.com/harborlight/storefront-backend/internal/sheets"
	"github.com/harborlight/storefront-backend/pkg/config"
	"github.com/harborlight/storefront-backend/pkg/logger"
)

// StoreInfo serves the deployed store's identity for storefront headers.
func StoreInfo(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"name":        cfg.Store.Name,
			"tagline":     cfg.Store.Tagline,
			"location_id": cfg.Store.LocationID,
		})
	}
}

// Categories lists the storefront category tiles. Curated sheet content wins
// when present; otherwise the listing is derived from the live catalog.
func Categories(catalogSvc catalog.Service, sheetSvc *sheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if curated := sheetSvc.Categories(ctx); len(curated) > 0 {
			responses.WriteSuccess(w, curated)
			return
		}

		derived, err := catalogSvc.Categories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		out := make([]sheets.Category, 0, len(derived))
		for _, info := range derived {
			out = append(out, sheets.Category{
				ID:   string(info.ID),
				Name: info.Name,
				Icon: info.Icon,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// Locations lists the physical stores.
func Locations(sheetSvc *sheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sheetSvc.Locations(r.Context()))
	}
}

// FAQs lists the help content.
func FAQs(sheetSvc *sheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sheetSvc.FAQs(r.Context()))
	}
}
