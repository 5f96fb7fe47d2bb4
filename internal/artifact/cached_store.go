package artifact

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheConfig sizes the read cache.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// DefaultCacheConfig returns the cache settings used by the CLI.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        5 * time.Minute,
		MaxEntries: 64,
	}
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits        uint64
	Misses      uint64
	OriginReads uint64
	OriginErr   uint64
}

// CachedStore memoizes successful reads of another store.
type CachedStore struct {
	origin Store
	cache  *expirable.LRU[string, []byte]

	hits        atomic.Uint64
	misses      atomic.Uint64
	originReads atomic.Uint64
	originErr   atomic.Uint64
}

// NewCachedStore wraps origin. Zero config fields take their defaults.
func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &CachedStore{
		origin: origin,
		cache:  expirable.NewLRU[string, []byte](cfg.MaxEntries, nil, cfg.TTL),
	}
}

// Get serves name from the cache or reads it from the origin. Errors are not
// cached.
func (s *CachedStore) Get(ctx context.Context, name string) ([]byte, error) {
	if raw, ok := s.cache.Get(name); ok {
		s.hits.Add(1)
		return append([]byte(nil), raw...), nil
	}
	s.misses.Add(1)

	s.originReads.Add(1)
	data, err := s.origin.Get(ctx, name)
	if err != nil {
		s.originErr.Add(1)
		return nil, err
	}
	s.cache.Add(name, append([]byte(nil), data...))
	return data, nil
}

// Stats returns the current counters.
func (s *CachedStore) Stats() CacheStats {
	return CacheStats{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		OriginReads: s.originReads.Load(),
		OriginErr:   s.originErr.Load(),
	}
}
