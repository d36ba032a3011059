// Package cache holds the in-process TTL caches for query results. The
// backing table changes rarely, so geographic and indicator lookups keep for
// a day while spatial payloads and summaries refresh more often.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	geographicTTL = 24 * time.Hour
	spatialTTL    = 6 * time.Hour
	summaryTTL    = time.Hour

	cleanupInterval = 48 * time.Hour
)

// Cache groups the per-datatype caches behind one handle.
type Cache struct {
	geographic *gocache.Cache
	spatial    *gocache.Cache
	summary    *gocache.Cache
}

func New() *Cache {
	return &Cache{
		geographic: gocache.New(geographicTTL, cleanupInterval),
		spatial:    gocache.New(spatialTTL, cleanupInterval),
		summary:    gocache.New(summaryTTL, cleanupInterval),
	}
}

// Key builds a cache key from a prefix and the query parameters.
func Key(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}

func (c *Cache) GetGeographic(key string) (interface{}, bool) { return c.geographic.Get(key) }
func (c *Cache) SetGeographic(key string, v interface{})      { c.geographic.SetDefault(key, v) }

func (c *Cache) GetSpatial(key string) (interface{}, bool) { return c.spatial.Get(key) }
func (c *Cache) SetSpatial(key string, v interface{})      { c.spatial.SetDefault(key, v) }

func (c *Cache) GetSummary(key string) (interface{}, bool) { return c.summary.Get(key) }
func (c *Cache) SetSummary(key string, v interface{})      { c.summary.SetDefault(key, v) }

// Flush drops everything; wired to the admin endpoint for use after the
// external loader refreshes the table.
func (c *Cache) Flush() {
	c.geographic.Flush()
	c.spatial.Flush()
	c.summary.Flush()
}
