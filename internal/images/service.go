package images

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harborlight/storefront-backend/pkg/enums"
	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/harborlight/storefront-backend/pkg/metrics"
)

// Service resolves product images in two phases: callers get a category
// fallback (or cached result) immediately, and unknown codes are looked up
// in the background so the next request is served from the cache.
type Service struct {
	repo   *Repository
	lookup *LookupClient
	logg   *logger.Logger
	met    *metrics.CatalogMetrics

	wg sync.WaitGroup
}

// ServiceOption configures optional service behavior.
type ServiceOption func(*Service)

// WithMetrics wires catalog metrics into the service.
func WithMetrics(met *metrics.CatalogMetrics) ServiceOption {
	return func(s *Service) { s.met = met }
}

// NewService builds the image service.
func NewService(repo *Repository, lookup *LookupClient, logg *logger.Logger, opts ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("image repository required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("lookup client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &Service{repo: repo, lookup: lookup, logg: logg}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// GetProductImage returns the best image URL available right now. A cached
// hit returns the real packshot; everything else returns the category
// fallback. When the code has never been looked up, a background resolution
// starts and onResolved fires with the real URL once found, unless the
// request context has already been canceled by then.
func (s *Service) GetProductImage(ctx context.Context, code string, category enums.ProductCategory, onResolved func(imageURL string)) string {
	fallback := category.FallbackImage()
	if code == "" {
		return fallback
	}

	entry, err := s.repo.Get(ctx, code)
	if err != nil {
		s.logg.Error(ctx, "read image cache entry", err)
		return fallback
	}
	if entry != nil {
		if entry.Found && entry.ImageURL != nil && *entry.ImageURL != "" {
			return *entry.ImageURL
		}
		return fallback
	}

	s.wg.Add(1)
	go s.resolve(ctx, code, onResolved)
	return fallback
}

// resolve performs the background lookup and caches the outcome, found or
// not, so each code is queried at most once.
func (s *Service) resolve(requestCtx context.Context, code string, onResolved func(string)) {
	defer s.wg.Done()

	// The lookup must outlive the request that triggered it.
	ctx := context.WithoutCancel(requestCtx)

	imageURL, err := s.lookup.Lookup(ctx, code)
	switch {
	case errors.Is(err, ErrUnsupportedCode):
		s.met.IncImageLookup("skipped")
	case err != nil:
		s.met.IncImageLookup("not_found")
		s.logg.Error(s.logg.WithProductCode(ctx, code), "image lookup failed", err)
	case imageURL == "":
		s.met.IncImageLookup("not_found")
	default:
		s.met.IncImageLookup("found")
	}

	entry := &CacheEntry{Code: code, Found: imageURL != ""}
	if imageURL != "" {
		entry.ImageURL = &imageURL
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		s.logg.Error(s.logg.WithProductCode(ctx, code), "write image cache entry", err)
	}

	if imageURL != "" && onResolved != nil && requestCtx.Err() == nil {
		onResolved(imageURL)
	}
}

// EvictStale removes cached entries whose codes left the inventory and
// returns how many were dropped.
func (s *Service) EvictStale(ctx context.Context, activeCodes []string) (int, error) {
	evicted, err := s.repo.EvictNotIn(ctx, activeCodes)
	if err != nil {
		return 0, err
	}
	if evicted > 0 {
		s.logg.Info(s.logg.WithField(ctx, "evicted", evicted), "evicted stale image cache entries")
	}
	return evicted, nil
}

// Stats reports image cache contents.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// Clear drops every cached image entry.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Wait blocks until in-flight background resolutions finish. Called during
// shutdown so lookups are not cut off mid-write.
func (s *Service) Wait() {
	s.wg.Wait()
}
