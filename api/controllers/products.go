package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harborlight/storefront-backend/api/responses"
	"github.com/harborlight/storefront-backend/api/validators"
	"github.com/harborlight/storefront-backend/internal/catalog"
	"github.com/harborlight/storefront-backend/internal/images"
	"github.com/harborlight/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborlight/storefront-backend/pkg/errors"
	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/harborlight/storefront-backend/pkg/pagination"
)

func parsePageParams(r *http.Request, defaultPageSize int) (page, pageSize int, err error) {
	if defaultPageSize <= 0 {
		defaultPageSize = pagination.DefaultPageSize
	}
	page, err = validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = validators.ParseQueryInt(r, "page_size", defaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

// ListProducts serves one page of a category's products.
func ListProducts(svc catalog.Service, logg *logger.Logger, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category query parameter is required"))
			return
		}
		page, pageSize, err := parsePageParams(r, defaultPageSize)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.ProductsByCategory(ctx, enums.NormalizeCategory(category), page, pageSize)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SearchProducts serves one page of search matches.
func SearchProducts(svc catalog.Service, logg *logger.Logger, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, pageSize, err := parsePageParams(r, defaultPageSize)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.SearchProducts(ctx, r.URL.Query().Get("q"), page, pageSize)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// FeaturedProducts serves the rotating storefront selection.
func FeaturedProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		featured, err := svc.FeaturedProducts(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, featured)
	}
}

// ProductDetail serves a single product by catalog ID.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID := chi.URLParam(r, "productId")
		product, err := svc.ProductByID(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if product == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductImage serves the best image URL currently available for a product.
// The first request for an unknown barcode returns the category fallback
// while the real lookup completes in the background.
func ProductImage(svc catalog.Service, imageSvc *images.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID := chi.URLParam(r, "productId")
		product, err := svc.ProductByID(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if product == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		imageURL := imageSvc.GetProductImage(ctx, product.Code, product.Category, nil)
		responses.WriteSuccess(w, map[string]string{
			"product_id": product.ID,
			"image":      imageURL,
		})
	}
}
