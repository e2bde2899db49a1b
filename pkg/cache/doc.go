// Package cache provides a generic in-memory LRU with optional expiry.
//
//	c := cache.NewLRU[string, []string](64, cache.WithTTL[string, []string](5*time.Minute))
//	c.Put("borough", codes)
//	codes, ok := c.Get("borough")
//
// The taxonomy package uses it to keep reference data close to the
// validators while the source of truth stays in Redis.
package cache
