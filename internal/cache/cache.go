package cache

import (
	"context"
	"sync"
	"time"

	"github.com/angelcm/hogdash-go/internal/obs"
)

type entry struct {
	payload   []string
	fetchedAt time.Time
}

type FetchFunc func(ctx context.Context) ([]string, error)

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrFetch devuelve el payload cacheado si la entrada aún es válida;
// si no, ejecuta fetch y guarda el resultado. Los errores no se cachean.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) ([]string, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		obs.CacheHits.Inc()
		return e.payload, nil
	}
	c.mu.Unlock()

	obs.CacheMisses.Inc()
	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = entry{payload: payload, fetchedAt: c.now()}
	c.mu.Unlock()
	return payload, nil
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
