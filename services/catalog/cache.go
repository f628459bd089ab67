// Package catalog holds the bookable-service list. The live list comes from
// the backend API; when that fetch fails the cache swaps to a fixed
// placeholder list so the wizard stays browsable, and records the mode so
// the submission path can refuse placeholder services.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"recoveryoffice/models"
)

// Mode says where the current entries came from.
type Mode string

const (
	ModeUnloaded Mode = "unloaded"
	ModeLive     Mode = "live"
	ModeFallback Mode = "fallback"
)

// ServicesFetcher is the slice of the backend client the cache needs.
type ServicesFetcher interface {
	FetchServices(ctx context.Context) ([]models.ServiceCatalogEntry, error)
}

// Cache memoizes one catalog load per process session. A failed live fetch
// is not retried until the next session; callers get the fallback list.
type Cache struct {
	Fetcher ServicesFetcher
	Logger  *zap.Logger

	once    sync.Once
	mu      sync.RWMutex
	entries []models.ServiceCatalogEntry
	mode    Mode
}

// NewCache creates an unloaded catalog cache.
func NewCache(fetcher ServicesFetcher, logger *zap.Logger) *Cache {
	return &Cache{
		Fetcher: fetcher,
		Logger:  logger,
		mode:    ModeUnloaded,
	}
}

// Load returns the catalog, fetching it on first call. Subsequent calls
// return the memoized result whatever mode it landed in.
func (c *Cache) Load(ctx context.Context) ([]models.ServiceCatalogEntry, Mode) {
	c.once.Do(func() {
		entries, err := c.Fetcher.FetchServices(ctx)
		if err != nil || len(entries) == 0 {
			c.Logger.Warn("Service catalog fetch failed, switching to fallback list",
				zap.Error(err),
				zap.Int("fallbackCount", len(FallbackServices)))
			c.setEntries(FallbackServices, ModeFallback)
			return
		}
		c.Logger.Info("Service catalog loaded", zap.Int("count", len(entries)))
		c.setEntries(entries, ModeLive)
	})
	return c.Entries(), c.Mode()
}

// Entries returns the current catalog without triggering a load.
func (c *Cache) Entries() []models.ServiceCatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ServiceCatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Mode reports whether the cache serves live or fallback data.
func (c *Cache) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// FindByID looks an entry up in the current catalog.
func (c *Cache) FindByID(id string) (models.ServiceCatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, entry := range c.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.ServiceCatalogEntry{}, false
}

func (c *Cache) setEntries(entries []models.ServiceCatalogEntry, mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.mode = mode
}
