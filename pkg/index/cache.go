package index

import (
	"container/list"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/observability"
)

// DefaultMaxEntries bounds a cache created without WithMaxEntries.
const DefaultMaxEntries = 128

// Cache holds at most one full index per graph identity and at most
// MaxEntries graphs in total, evicting the least recently used.
//
// Builds for the same graph are coalesced: the first caller runs Build and
// every concurrent caller for that graph receives the same result.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element // graph id -> element holding *entry
	lru        *list.List               // front is most recently used
	maxEntries int

	flight    singleflight.Group
	builds    atomic.Int64
	evictions atomic.Int64
	logger    *log.Logger
}

type entry struct {
	graphID string
	idx     *Index
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxEntries bounds the number of cached graphs. Values below one are
// ignored.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: DefaultMaxEntries,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the full index for src, building it on first use or when
// refresh is true. A failed build leaves any previously cached index in place.
func (c *Cache) Get(ctx context.Context, src asset.RelationshipSource, refresh bool) (*Index, error) {
	if err := asset.CheckCapability(src); err != nil {
		return nil, err
	}
	id := src.ID()

	if !refresh {
		if idx, ok := c.lookup(id); ok {
			observability.Visualize().OnIndexReuse(ctx, id)
			return idx, nil
		}
	}

	v, err, shared := c.flight.Do(id, func() (any, error) {
		// A build that finished between the lookup above and this flight
		// already holds the answer.
		if !refresh {
			if idx, ok := c.lookup(id); ok {
				return idx, nil
			}
		}
		start := time.Now()
		idx, err := Build(src, nil)
		elapsed := time.Since(start)

		count := 0
		if idx != nil {
			count = idx.Len()
		}
		observability.Visualize().OnIndexBuild(ctx, id, count, elapsed, err)
		if err != nil {
			return nil, err
		}
		c.builds.Add(1)
		c.store(id, idx)
		c.logger.Debug("index built", "graph", id, "assets", count, "took", elapsed)
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("index build shared", "graph", id)
	}
	return v.(*Index), nil
}

// GetRestricted returns an index limited to ids, derived from the cached full
// index. The allow-list is validated before any cache or graph access.
func (c *Cache) GetRestricted(ctx context.Context, src asset.RelationshipSource, ids []string, refresh bool) (*Index, error) {
	if err := asset.CheckCapability(src); err != nil {
		return nil, err
	}
	if err := ValidateIDs(ids); err != nil {
		return nil, err
	}
	full, err := c.Get(ctx, src, refresh)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return full, nil
	}
	return full.Restrict(ids), nil
}

// Invalidate drops the cached index for graphID. The next Get rebuilds.
func (c *Cache) Invalidate(graphID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[graphID]; ok {
		c.lru.Remove(el)
		delete(c.entries, graphID)
	}
}

// Len returns the number of cached indices.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Builds returns how many successful builds the cache has performed.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Evictions returns how many indices were dropped to stay within the bound.
func (c *Cache) Evictions() int64 { return c.evictions.Load() }

func (c *Cache) lookup(id string) (*Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(*entry).idx, true
}

func (c *Cache) store(id string, idx *Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[id]; ok {
		el.Value.(*entry).idx = idx
		c.lru.MoveToFront(el)
		return
	}
	c.entries[id] = c.lru.PushFront(&entry{graphID: id, idx: idx})
	for c.lru.Len() > c.maxEntries {
		oldest := c.lru.Back()
		e := oldest.Value.(*entry)
		c.lru.Remove(oldest)
		delete(c.entries, e.graphID)
		c.evictions.Add(1)
		c.logger.Debug("index evicted", "graph", e.graphID)
	}
}
