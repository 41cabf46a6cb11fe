// Package index derives per-asset relationship indices from an asset graph
// and caches them per graph instance.
//
// # Index
//
// An [Index] maps asset id → relationship type → relationships, so renderers
// can look up "all sector links of X" without scanning the whole graph. It
// reflects the graph at the moment it was built; there is no change
// detection, and callers request a rebuild explicitly.
//
// [Build] validates its inputs (graph capability first, then the optional
// allow-list of ids) and never fails on degenerate input: an empty graph or an
// empty allow-list yields an empty index.
//
// # Cache
//
// A [Cache] holds at most one full index per graph identity. Concurrent
// requests for the same graph share one in-flight build through
// golang.org/x/sync/singleflight, and no lock is held while the build runs.
// A built index is immutable, so any number of readers share it. The cache
// keeps the most recently used graphs and evicts the rest once it holds
// more than its bound (see [WithMaxEntries]).
//
//	c := index.NewCache()
//	idx, err := c.Get(ctx, g, false) // build or reuse
//	idx, err = c.Get(ctx, g, true)   // explicit refresh after mutation
package index
