package applicant

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/thaiaddress"
)

// NewAddressCache returns the cache used by CachedExtractor.
func NewAddressCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, 2*ttl)
}

// CachedExtractor memoizes legacy address extraction and counts the rule that matched.
// Extraction is deterministic, so cached results never go stale.
func CachedExtractor(c *cache.Cache, m *metrics.Metrics) AddressExtractor {
	return func(raw string) thaiaddress.Address {
		if v, found := c.Get(raw); found {
			if addr, ok := v.(thaiaddress.Address); ok {
				return addr
			}
		}

		addr, method := thaiaddress.ExtractWith(raw)
		m.IncrementAddressExtraction(string(method))
		c.Set(raw, addr, cache.DefaultExpiration)
		return addr
	}
}
