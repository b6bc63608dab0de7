package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records cache and feed behavior for the catalog service.
type CatalogMetrics struct {
	loadDuration  prometheus.Histogram
	cacheOutcome  *prometheus.CounterVec
	imageLookups  *prometheus.CounterVec
	imagesEvicted prometheus.Counter
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	loadDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of full catalog loads (fetch, parse, cache write).",
		Buckets: prometheus.DefBuckets,
	})
	cacheOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_requests_total",
		Help: "Catalog cache lookups by outcome.",
	}, []string{"outcome"})
	imageLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "image_lookups_total",
		Help: "Barcode image lookups by outcome.",
	}, []string{"outcome"})
	imagesEvicted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_cache_evictions_total",
		Help: "Image cache entries evicted after catalog reloads.",
	})
	reg.MustRegister(loadDuration, cacheOutcome, imageLookups, imagesEvicted)
	return &CatalogMetrics{
		loadDuration:  loadDuration,
		cacheOutcome:  cacheOutcome,
		imageLookups:  imageLookups,
		imagesEvicted: imagesEvicted,
	}
}

// ObserveLoadDuration records the wall time of a full catalog load.
func (c *CatalogMetrics) ObserveLoadDuration(duration time.Duration) {
	if c == nil || c.loadDuration == nil {
		return
	}
	c.loadDuration.Observe(duration.Seconds())
}

// IncCacheHit counts a catalog served from the cache store.
func (c *CatalogMetrics) IncCacheHit() {
	c.incCacheOutcome("hit")
}

// IncCacheMiss counts a catalog load forced by an absent or expired entry.
func (c *CatalogMetrics) IncCacheMiss() {
	c.incCacheOutcome("miss")
}

func (c *CatalogMetrics) incCacheOutcome(outcome string) {
	if c == nil || c.cacheOutcome == nil {
		return
	}
	c.cacheOutcome.WithLabelValues(outcome).Inc()
}

// IncImageLookup counts one barcode lookup with its outcome label
// (found, not_found, skipped).
func (c *CatalogMetrics) IncImageLookup(outcome string) {
	if c == nil || c.imageLookups == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	c.imageLookups.WithLabelValues(outcome).Inc()
}

// AddImagesEvicted counts image cache entries dropped by an eviction pass.
func (c *CatalogMetrics) AddImagesEvicted(count int) {
	if c == nil || c.imagesEvicted == nil || count <= 0 {
		return
	}
	c.imagesEvicted.Add(float64(count))
}
