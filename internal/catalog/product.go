package catalog

import (
	"time"

	"github.com/harborlight/storefront-backend/pkg/enums"
)

// Product is one catalog item derived from the inventory feed. Instances are
// immutable once built; queries that decorate products (featured selection)
// work on copies.
type Product struct {
	ID                string                `json:"id"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	Category          enums.ProductCategory `json:"category"`
	Subcategory       string                `json:"subcategory"`
	Brand             string                `json:"brand"`
	Size              string                `json:"size"`
	Price             float64               `json:"price"`
	Image             string                `json:"image"`
	Description       string                `json:"description"`
	Locations         []string              `json:"locations"`
	IsTouristFavorite bool                  `json:"is_tourist_favorite"`
}

// CacheInfo describes the current catalog cache entry.
type CacheInfo struct {
	IsValid      bool       `json:"is_valid"`
	Timestamp    *time.Time `json:"timestamp"`
	ProductCount int        `json:"product_count"`
}
