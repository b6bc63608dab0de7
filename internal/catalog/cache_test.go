package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harborlight/storefront-backend/pkg/redis"
)

type memoryBackend struct {
	values  map[string]string
	setErr  error
	getErr  error
	deleted int
	lastTTL time.Duration
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{values: map[string]string{}}
}

func (m *memoryBackend) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return value, nil
}

func (m *memoryBackend) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value.(string)
	m.lastTTL = ttl
	return nil
}

func (m *memoryBackend) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		m.deleted++
	}
	return nil
}

func newTestStore(t *testing.T, backend cacheBackend) *Store {
	t.Helper()
	store, err := NewStore(backend, "sf:catalog:test", time.Hour, testLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func testProducts() []Product {
	return ParseProducts(sampleFeed, "main-store")
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newMemoryBackend())

	if _, ok := store.Get(ctx); ok {
		t.Fatal("expected miss on empty cache")
	}

	store.Set(ctx, testProducts())
	got, ok := store.Get(ctx)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 products, got %d", len(got))
	}

	info := store.Info(ctx)
	if !info.IsValid || info.ProductCount != 3 || info.Timestamp == nil {
		t.Fatalf("unexpected cache info: %+v", info)
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newMemoryBackend())

	current := time.Now()
	store.now = func() time.Time { return current }
	store.Set(ctx, testProducts())

	current = current.Add(59 * time.Minute)
	if _, ok := store.Get(ctx); !ok {
		t.Fatal("expected hit inside ttl window")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get(ctx); ok {
		t.Fatal("expected miss after ttl elapsed")
	}

	// The stale record is still reported by Info until replaced.
	info := store.Info(ctx)
	if info.IsValid {
		t.Fatal("expired record must not be valid")
	}
	if info.ProductCount != 3 {
		t.Fatalf("stale record still counts products, got %d", info.ProductCount)
	}
}

func TestStoreSetJanitorTTL(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend()
	store := newTestStore(t, backend)

	store.Set(ctx, testProducts())
	// The backend expiry runs at twice the freshness window so Info can
	// still report a stale record before redis drops it.
	if backend.lastTTL != 2*time.Hour {
		t.Fatalf("expected 2h backend ttl, got %s", backend.lastTTL)
	}
}

func TestStoreSetFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend()
	backend.setErr = errors.New("connection refused")
	store := newTestStore(t, backend)

	store.Set(ctx, testProducts())
	if _, ok := store.Get(ctx); ok {
		t.Fatal("failed write must leave the cache empty")
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend()
	store := newTestStore(t, backend)

	store.Set(ctx, testProducts())
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Get(ctx); ok {
		t.Fatal("expected miss after clear")
	}
	if backend.deleted != 1 {
		t.Fatalf("expected one deletion, got %d", backend.deleted)
	}
}

func TestStoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend()
	backend.values["sf:catalog:test"] = "{not json"
	store := newTestStore(t, backend)

	if _, ok := store.Get(ctx); ok {
		t.Fatal("corrupt record must read as a miss")
	}
	if info := store.Info(ctx); info.IsValid || info.ProductCount != 0 {
		t.Fatalf("corrupt record must report empty info, got %+v", info)
	}
}
