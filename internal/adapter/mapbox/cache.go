package mapbox

import (
	"context"

	"github.com/couchcryptid/disaster-atlas/internal/cache"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *cache.LRU[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   cache.NewLRU[string, domain.GeocodingResult](maxEntries),
		metrics: metrics,
	}
}

// ForwardGeocode serves repeated lookups from the cache. Entries are keyed by
// the normalized place query, so "Sindh province" and "Sindh" share one.
func (c *CachedGeocoder) ForwardGeocode(ctx context.Context, location, country string) (domain.GeocodingResult, error) {
	key := placeQuery(location, country)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ForwardGeocode(ctx, location, country)
	if err != nil {
		return result, err
	}
	// Only cache found results so "not found" responses can be retried.
	if result.Found() {
		c.cache.Put(key, result)
	}
	return result, nil
}
