package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/harborlight/storefront-backend/pkg/enums"
	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/harborlight/storefront-backend/pkg/metrics"
	"github.com/harborlight/storefront-backend/pkg/pagination"
	"golang.org/x/sync/singleflight"
)

// Service exposes the catalog query operations.
type Service interface {
	LoadProducts(ctx context.Context) ([]Product, error)
	ProductsByCategory(ctx context.Context, category enums.ProductCategory, page, pageSize int) (pagination.Result[Product], error)
	AllProductsByCategory(ctx context.Context, category enums.ProductCategory) ([]Product, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int) (pagination.Result[Product], error)
	SearchAllProducts(ctx context.Context, query string) ([]Product, error)
	ProductByID(ctx context.Context, productID string) (*Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]Product, error)
	Categories(ctx context.Context) ([]enums.CategoryInfo, error)
	Refresh(ctx context.Context) ([]Product, error)
	ClearCache(ctx context.Context) error
	CacheInfo(ctx context.Context) CacheInfo
}

// imageEvictor trims image cache entries whose product codes left the feed.
type imageEvictor interface {
	EvictStale(ctx context.Context, activeCodes []string) (int, error)
}

type service struct {
	store         *Store
	feed          *FeedClient
	logg          *logger.Logger
	met           *metrics.CatalogMetrics
	evictor       imageEvictor
	locationID    string
	featuredLimit int

	flight singleflight.Group

	rngMu sync.Mutex
	rng   *rand.Rand
}

// ServiceOption configures optional service behavior.
type ServiceOption func(*service)

// WithMetrics wires catalog metrics into the service.
func WithMetrics(met *metrics.CatalogMetrics) ServiceOption {
	return func(s *service) { s.met = met }
}

// WithImageEvictor runs image cache eviction after each fresh catalog load.
func WithImageEvictor(evictor imageEvictor) ServiceOption {
	return func(s *service) { s.evictor = evictor }
}

// WithFeaturedLimit overrides the default featured product count.
func WithFeaturedLimit(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.featuredLimit = limit
		}
	}
}

// WithRandSource seeds the featured product selection. Tests pass a fixed
// source to make picks deterministic.
func WithRandSource(src rand.Source) ServiceOption {
	return func(s *service) {
		if src != nil {
			s.rng = rand.New(src)
		}
	}
}

// NewService builds the catalog service.
func NewService(store *Store, feed *FeedClient, locationID string, logg *logger.Logger, opts ...ServiceOption) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if feed == nil {
		return nil, fmt.Errorf("feed client required")
	}
	if locationID == "" {
		return nil, fmt.Errorf("location id required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	svc := &service{
		store:         store,
		feed:          feed,
		logg:          logg,
		locationID:    locationID,
		featuredLimit: 8,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// LoadProducts returns the full catalog, serving from the cache when fresh
// and reloading from the feed otherwise. Concurrent reloads collapse into a
// single feed fetch.
func (s *service) LoadProducts(ctx context.Context) ([]Product, error) {
	if products, ok := s.store.Get(ctx); ok && len(products) > 0 {
		s.met.IncCacheHit()
		return products, nil
	}
	s.met.IncCacheMiss()
	return s.loadFresh(ctx)
}

func (s *service) loadFresh(ctx context.Context) ([]Product, error) {
	result, err, _ := s.flight.Do("catalog-load", func() (any, error) {
		start := time.Now()
		csvContent := s.feed.Fetch(ctx)
		products := ParseProducts(csvContent, s.locationID)

		// An empty parse is never cached; the next call retries the feed.
		if len(products) > 0 {
			s.store.Set(ctx, products)
			s.evictStaleImages(ctx, products)
		}

		s.met.ObserveLoadDuration(time.Since(start))
		s.logg.Info(s.logg.WithField(ctx, "product_count", len(products)), "catalog loaded from feed")
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Product), nil
}

func (s *service) evictStaleImages(ctx context.Context, products []Product) {
	if s.evictor == nil {
		return
	}
	codes := make([]string, 0, len(products))
	for _, p := range products {
		if p.Code != "" {
			codes = append(codes, p.Code)
		}
	}
	evicted, err := s.evictor.EvictStale(ctx, codes)
	if err != nil {
		s.logg.Error(ctx, "evict stale image cache entries", err)
		return
	}
	s.met.AddImagesEvicted(evicted)
}

// ProductsByCategory returns one page of the category's products.
func (s *service) ProductsByCategory(ctx context.Context, category enums.ProductCategory, page, pageSize int) (pagination.Result[Product], error) {
	products, err := s.AllProductsByCategory(ctx, category)
	if err != nil {
		return pagination.Result[Product]{}, err
	}
	return pagination.Paginate(products, page, pageSize), nil
}

// AllProductsByCategory returns every product in the category.
func (s *service) AllProductsByCategory(ctx context.Context, category enums.ProductCategory) ([]Product, error) {
	products, err := s.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Product, 0)
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// SearchProducts returns one page of search matches.
func (s *service) SearchProducts(ctx context.Context, query string, page, pageSize int) (pagination.Result[Product], error) {
	matches, err := s.SearchAllProducts(ctx, query)
	if err != nil {
		return pagination.Result[Product]{}, err
	}
	return pagination.Paginate(matches, page, pageSize), nil
}

// SearchAllProducts matches products where every whitespace-separated query
// term appears in the combined name, brand, category, subcategory, and
// description text. A blank query returns the full catalog.
func (s *service) SearchAllProducts(ctx context.Context, query string) ([]Product, error) {
	products, err := s.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return products, nil
	}

	terms := strings.Fields(strings.ToLower(query))
	matches := make([]Product, 0)
	for _, p := range products {
		haystack := strings.ToLower(strings.Join([]string{
			p.Name, p.Brand, string(p.Category), p.Subcategory, p.Description,
		}, " "))
		if matchesAllTerms(haystack, terms) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func matchesAllTerms(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// ProductByID finds a product by its catalog ID. A missing product returns
// nil without an error.
func (s *service) ProductByID(ctx context.Context, productID string) (*Product, error) {
	products, err := s.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			product := products[i]
			return &product, nil
		}
	}
	return nil, nil
}

// FeaturedProducts builds a rotating storefront selection: categories take
// turns in first-seen order and each turn contributes one random product not
// already picked. Returned products are copies flagged as tourist favorites;
// the catalog itself is never mutated.
func (s *service) FeaturedProducts(ctx context.Context, limit int) ([]Product, error) {
	products, err := s.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.featuredLimit
	}

	groups := make(map[enums.ProductCategory][]Product)
	order := make([]enums.ProductCategory, 0)
	for _, p := range products {
		if _, seen := groups[p.Category]; !seen {
			order = append(order, p.Category)
		}
		groups[p.Category] = append(groups[p.Category], p)
	}

	featured := make([]Product, 0, limit)
	remaining := len(order)
	for turn := 0; len(featured) < limit && remaining > 0; turn++ {
		category := order[turn%len(order)]
		pool := groups[category]
		if len(pool) == 0 {
			continue
		}

		s.rngMu.Lock()
		idx := s.rng.Intn(len(pool))
		s.rngMu.Unlock()

		pick := pool[idx]
		pick.IsTouristFavorite = true
		featured = append(featured, pick)

		pool = append(pool[:idx], pool[idx+1:]...)
		groups[category] = pool
		if len(pool) == 0 {
			remaining--
		}
	}
	return featured, nil
}

// Categories returns the curated categories that currently have products.
// Pharmacy and dairy stay listed even when the feed carries none.
func (s *service) Categories(ctx context.Context) ([]enums.CategoryInfo, error) {
	products, err := s.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	present := make(map[enums.ProductCategory]struct{}, len(products))
	for _, p := range products {
		present[p.Category] = struct{}{}
	}

	out := make([]enums.CategoryInfo, 0)
	for _, info := range enums.KnownCategories() {
		_, has := present[info.ID]
		if has || info.ID == enums.ProductCategoryPharmacy || info.ID == enums.ProductCategoryDairy {
			out = append(out, info)
		}
	}
	return out, nil
}

// Refresh drops the cache record and reloads the catalog from the feed.
func (s *service) Refresh(ctx context.Context) ([]Product, error) {
	if err := s.store.Clear(ctx); err != nil {
		s.logg.Error(ctx, "clear catalog cache before refresh", err)
	}
	return s.loadFresh(ctx)
}

// ClearCache removes the cached catalog record.
func (s *service) ClearCache(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// CacheInfo reports on the current cache record.
func (s *service) CacheInfo(ctx context.Context) CacheInfo {
	return s.store.Info(ctx)
}
