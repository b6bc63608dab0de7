package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/harborlight/storefront-backend/pkg/errors"
	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/harborlight/storefront-backend/pkg/redis"
)

// cacheBackend is the slice of the redis client the catalog store needs.
type cacheBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// cachedCatalog is the stored cache record. Validity is judged against the
// embedded timestamp rather than a redis TTL so a stale record can still be
// inspected and reported before it is replaced.
type cachedCatalog struct {
	Products  []Product `json:"products"`
	Timestamp int64     `json:"timestamp"`
}

// Store persists the full product catalog as a single cache record that is
// replaced wholesale on every reload.
type Store struct {
	backend cacheBackend
	key     string
	ttl     time.Duration
	logg    *logger.Logger
	now     func() time.Time
}

// NewStore builds the catalog cache store. A non-positive ttl falls back to
// one hour.
func NewStore(backend cacheBackend, key string, ttl time.Duration, logg *logger.Logger) (*Store, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cache backend is required")
	}
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cache key is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		backend: backend,
		key:     key,
		ttl:     ttl,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Get returns the cached products when a record exists and is still fresh.
func (s *Store) Get(ctx context.Context) ([]Product, bool) {
	record, ok := s.load(ctx)
	if !ok || !s.isFresh(record) {
		return nil, false
	}
	return record.Products, true
}

// Set replaces the cache record with the provided products stamped at the
// current time. Write failures are logged and swallowed; the catalog keeps
// serving from memory even when the cache is unavailable.
func (s *Store) Set(ctx context.Context, products []Product) {
	record := cachedCatalog{
		Products:  products,
		Timestamp: s.now().UnixMilli(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		s.logg.Error(ctx, "marshal catalog cache record", err)
		return
	}
	// Redis expiry at twice the validity window is a janitor; freshness is
	// still judged from the embedded timestamp so stale records stay
	// inspectable until then.
	if err := s.backend.Set(ctx, s.key, string(payload), 2*s.ttl); err != nil {
		s.logg.Error(ctx, "write catalog cache record", err)
	}
}

// Clear removes the cache record.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Del(ctx, s.key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear catalog cache")
	}
	return nil
}

// Info reports on the current cache record, fresh or stale.
func (s *Store) Info(ctx context.Context) CacheInfo {
	record, ok := s.load(ctx)
	if !ok {
		return CacheInfo{}
	}
	stamp := time.UnixMilli(record.Timestamp)
	return CacheInfo{
		IsValid:      s.isFresh(record),
		Timestamp:    &stamp,
		ProductCount: len(record.Products),
	}
}

func (s *Store) load(ctx context.Context) (cachedCatalog, bool) {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			s.logg.Error(ctx, "read catalog cache record", err)
		}
		return cachedCatalog{}, false
	}
	var record cachedCatalog
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logg.Error(ctx, "decode catalog cache record", err)
		return cachedCatalog{}, false
	}
	return record, true
}

func (s *Store) isFresh(record cachedCatalog) bool {
	age := s.now().UnixMilli() - record.Timestamp
	return age >= 0 && age < s.ttl.Milliseconds()
}
