package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/platform/metrics"
)

// quoteStore is the storage behind a RateCache. Implementations must be safe
// for concurrent use.
type quoteStore interface {
	Get(key domain.CurrencyPair) (domain.RateQuote, bool)
	Add(key domain.CurrencyPair, quote domain.RateQuote)
	Len() int
}

// mapStore never evicts. Entries live as long as the process.
type mapStore struct {
	mu     sync.RWMutex
	quotes map[domain.CurrencyPair]domain.RateQuote
}

func newMapStore() *mapStore {
	return &mapStore{quotes: make(map[domain.CurrencyPair]domain.RateQuote)}
}

func (m *mapStore) Get(key domain.CurrencyPair) (domain.RateQuote, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quotes[key]
	return q, ok
}

func (m *mapStore) Add(key domain.CurrencyPair, quote domain.RateQuote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[key] = quote
}

func (m *mapStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.quotes)
}

// lruStore adapts lru.Cache, which does its own locking.
type lruStore struct {
	cache *lru.Cache[domain.CurrencyPair, domain.RateQuote]
}

func (l lruStore) Get(key domain.CurrencyPair) (domain.RateQuote, bool) { return l.cache.Get(key) }
func (l lruStore) Add(key domain.CurrencyPair, quote domain.RateQuote)  { l.cache.Add(key, quote) }
func (l lruStore) Len() int                                             { return l.cache.Len() }

// RateCache keeps fetched quotes for the life of the process, keyed by the
// ordered (base, target) pair. There is no expiry. Concurrent misses on the
// same key are not coalesced; each one reaches the fetcher.
type RateCache struct {
	BaseService
	fetcher portssvc.RateProvider
	store   quoteStore
}

// NewRateCache creates a cache that fills misses from fetcher. With
// maxEntries == 0 the cache is unbounded; a positive value evicts the least
// recently used pair once the bound is reached.
func NewRateCache(fetcher portssvc.RateProvider, maxEntries int) (*RateCache, error) {
	if maxEntries < 0 {
		return nil, fmt.Errorf("rate cache size must not be negative, got %d", maxEntries)
	}

	var store quoteStore = newMapStore()
	if maxEntries > 0 {
		cache, err := lru.New[domain.CurrencyPair, domain.RateQuote](maxEntries)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate cache: %w", err)
		}
		store = lruStore{cache: cache}
	}

	return &RateCache{fetcher: fetcher, store: store}, nil
}

var _ portssvc.RateCache = (*RateCache)(nil)

// Get returns the quote for (base, target), calling the fetcher on a miss.
// Failed fetches are not cached.
func (c *RateCache) Get(ctx context.Context, base, target domain.CurrencyCode) (domain.RateQuote, error) {
	key := domain.CurrencyPair{Base: base, Target: target}
	if quote, ok := c.store.Get(key); ok {
		metrics.RateCacheLookupsTotal.WithLabelValues("hit").Inc()
		return quote, nil
	}
	metrics.RateCacheLookupsTotal.WithLabelValues("miss").Inc()

	c.LogDebug(ctx, "Rate cache miss", slog.String("pair", key.String()))
	quote, err := c.fetcher.Fetch(ctx, base, target)
	if err != nil {
		return domain.RateQuote{}, err
	}

	c.Set(base, target, quote)
	return quote, nil
}

// Set stores quote under (base, target).
func (c *RateCache) Set(base, target domain.CurrencyCode, quote domain.RateQuote) {
	c.store.Add(domain.CurrencyPair{Base: base, Target: target}, quote)
}

// Len returns the number of cached pairs.
func (c *RateCache) Len() int {
	return c.store.Len()
}
