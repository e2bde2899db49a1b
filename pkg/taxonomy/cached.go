package taxonomy

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/cache"
)

// Cached keeps recently used groups of another source in memory. Concurrent
// misses on one group share a single load.
type Cached struct {
	source Source
	lru    *cache.LRU[Group, []string]
	loads  singleflight.Group
}

// NewCached caches up to size groups for ttl; a zero ttl never expires.
func NewCached(source Source, size int, ttl time.Duration) *Cached {
	if source == nil {
		panic("taxonomy: source cannot be nil")
	}
	return &Cached{
		source: source,
		lru:    cache.NewLRU(size, cache.WithTTL[Group, []string](ttl)),
	}
}

func (c *Cached) Codes(ctx context.Context, group Group) ([]string, error) {
	if codes, ok := c.lru.Get(group); ok {
		return slices.Clone(codes), nil
	}

	// shared by every waiter, not bound to the first caller
	loadCtx := context.WithoutCancel(ctx)
	ch := c.loads.DoChan(string(group), func() (any, error) {
		codes, err := c.source.Codes(loadCtx, group)
		if err != nil {
			return nil, err
		}
		c.lru.Put(group, codes)
		return codes, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]string)), nil
	}
}

// Invalidate drops the given groups, or every group when none is given.
func (c *Cached) Invalidate(groups ...Group) {
	if len(groups) == 0 {
		c.lru.Clear()
		return
	}
	for _, g := range groups {
		c.lru.Remove(g)
	}
}
