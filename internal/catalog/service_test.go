package catalog

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harborlight/storefront-backend/pkg/enums"
)

type evictRecorder struct {
	calls [][]string
	count int
}

func (e *evictRecorder) EvictStale(_ context.Context, codes []string) (int, error) {
	e.calls = append(e.calls, codes)
	return e.count, nil
}

type serviceFixture struct {
	svc     Service
	backend *memoryBackend
	fetches *atomic.Int64
	evictor *evictRecorder
}

func newServiceFixture(t *testing.T, feedBody string, opts ...ServiceOption) *serviceFixture {
	t.Helper()

	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/inventory-categorized.csv" {
			fetches.Add(1)
			_, _ = w.Write([]byte(feedBody))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	logg := testLogger()
	feed, err := NewFeedClient(server.URL, logg)
	if err != nil {
		t.Fatalf("new feed client: %v", err)
	}

	backend := newMemoryBackend()
	store, err := NewStore(backend, "sf:catalog:test", time.Hour, logg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	evictor := &evictRecorder{}
	base := []ServiceOption{
		WithRandSource(rand.NewSource(1)),
		WithImageEvictor(evictor),
	}
	svc, err := NewService(store, feed, "main-store", logg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return &serviceFixture{svc: svc, backend: backend, fetches: &fetches, evictor: evictor}
}

func TestLoadProductsCachesResult(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	first, err := fx.svc.LoadProducts(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 products, got %d", len(first))
	}

	if _, err := fx.svc.LoadProducts(ctx); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := fx.fetches.Load(); got != 1 {
		t.Fatalf("expected one feed fetch, got %d", got)
	}
}

func TestLoadProductsDoesNotCacheEmptyFeed(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, EmptyFeed)

	for i := 0; i < 2; i++ {
		products, err := fx.svc.LoadProducts(ctx)
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if len(products) != 0 {
			t.Fatalf("expected empty catalog, got %d", len(products))
		}
	}
	if got := fx.fetches.Load(); got != 2 {
		t.Fatalf("empty results must not be cached, got %d fetches", got)
	}
	if len(fx.evictor.calls) != 0 {
		t.Fatal("eviction must not run for an empty load")
	}
}

func TestLoadProductsCollapsesConcurrentLoads(t *testing.T) {
	ctx := context.Background()

	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(server.Close)

	logg := testLogger()
	feed, err := NewFeedClient(server.URL, logg)
	if err != nil {
		t.Fatalf("new feed client: %v", err)
	}
	store, err := NewStore(newMemoryBackend(), "sf:catalog:test", time.Hour, logg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(store, feed, "main-store", logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fx := &serviceFixture{svc: svc, fetches: &fetches}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fx.svc.LoadProducts(ctx); err != nil {
				t.Errorf("concurrent load: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := fx.fetches.Load(); got != 1 {
		t.Fatalf("expected concurrent loads to collapse into one fetch, got %d", got)
	}
}

func TestLoadProductsEvictsStaleImages(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	if _, err := fx.svc.LoadProducts(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fx.evictor.calls) != 1 {
		t.Fatalf("expected one eviction pass, got %d", len(fx.evictor.calls))
	}
	if got := len(fx.evictor.calls[0]); got != 3 {
		t.Fatalf("expected 3 active codes, got %d", got)
	}
}

func TestProductsByCategory(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	page, err := fx.svc.ProductsByCategory(ctx, enums.ProductCategoryVodka, 1, 24)
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("expected single vodka product, got %+v", page)
	}
	if page.Items[0].Category != enums.ProductCategoryVodka {
		t.Fatalf("wrong category: %q", page.Items[0].Category)
	}

	empty, err := fx.svc.ProductsByCategory(ctx, enums.ProductCategoryBeer, 1, 24)
	if err != nil {
		t.Fatalf("empty category: %v", err)
	}
	if empty.Total != 0 || empty.HasMore {
		t.Fatalf("expected empty page, got %+v", empty)
	}
}

func TestSearchProductsMatchesAllTerms(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	matches, err := fx.svc.SearchAllProducts(ctx, "bourbon kentucky")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}

	none, err := fx.svc.SearchAllProducts(ctx, "bourbon vodka")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("terms spanning products must not match, got %d", len(none))
	}

	all, err := fx.svc.SearchAllProducts(ctx, "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("blank query returns the catalog, got %d", len(all))
	}
}

func TestSearchMatchesSubcategoryAndBrand(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	// "premium" only appears in the inferred subcategory.
	matches, err := fx.svc.SearchAllProducts(ctx, "premium")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Code != "12345678" {
		t.Fatalf("expected subcategory match, got %v", matches)
	}
}

func TestProductByID(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	product, err := fx.svc.ProductByID(ctx, "vodka-12345678")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if product == nil || product.Code != "12345678" {
		t.Fatalf("expected vodka product, got %v", product)
	}

	missing, err := fx.svc.ProductByID(ctx, "wine-00000000")
	if err != nil {
		t.Fatalf("missing id: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing product must be nil, got %v", missing)
	}
}

func TestFeaturedProducts(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	featured, err := fx.svc.FeaturedProducts(ctx, 3)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 3 {
		t.Fatalf("expected 3 featured, got %d", len(featured))
	}

	seen := make(map[enums.ProductCategory]bool)
	for _, p := range featured {
		if !p.IsTouristFavorite {
			t.Fatalf("featured product %s not flagged", p.ID)
		}
		if seen[p.Category] {
			t.Fatalf("category %s picked twice before rotation completed", p.Category)
		}
		seen[p.Category] = true
	}

	// The underlying catalog keeps its flags unset.
	products, err := fx.svc.LoadProducts(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, p := range products {
		if p.IsTouristFavorite {
			t.Fatalf("catalog product %s was mutated", p.ID)
		}
	}
}

func TestFeaturedProductsLimitBeyondCatalog(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	featured, err := fx.svc.FeaturedProducts(ctx, 50)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 3 {
		t.Fatalf("selection exhausts the catalog, got %d", len(featured))
	}
}

func TestCategoriesIncludePharmacyAndDairy(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	cats, err := fx.svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}

	ids := make(map[enums.ProductCategory]bool, len(cats))
	for _, c := range cats {
		ids[c.ID] = true
	}
	for _, want := range []enums.ProductCategory{
		enums.ProductCategoryVodka,
		enums.ProductCategoryWhiskey,
		enums.ProductCategoryWine,
		enums.ProductCategoryPharmacy,
		enums.ProductCategoryDairy,
	} {
		if !ids[want] {
			t.Errorf("expected category %s in listing", want)
		}
	}
	if ids[enums.ProductCategoryBeer] {
		t.Error("beer has no products and is not pinned")
	}
}

func TestRefreshReloadsFromFeed(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	if _, err := fx.svc.LoadProducts(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := fx.svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := fx.fetches.Load(); got != 2 {
		t.Fatalf("refresh must bypass the cache, got %d fetches", got)
	}

	info := fx.svc.CacheInfo(ctx)
	if !info.IsValid || info.ProductCount != 3 {
		t.Fatalf("refresh must repopulate the cache, got %+v", info)
	}
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, sampleFeed)

	if _, err := fx.svc.LoadProducts(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := fx.svc.ClearCache(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if info := fx.svc.CacheInfo(ctx); info.IsValid || info.ProductCount != 0 {
		t.Fatalf("expected empty cache info, got %+v", info)
	}
}
