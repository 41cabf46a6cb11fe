// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about index builds, layout computation, input validation
// and figure cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetVisualizeHooks(&myVisualizeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Visualize().OnLayoutStart(ctx, "spring", 3, nodeCount)
//	// ... compute positions ...
//	observability.Visualize().OnLayoutComplete(ctx, "spring", 3, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Visualize Hooks
// =============================================================================

// VisualizeHooks receives events from the visualization core.
type VisualizeHooks interface {
	// Index events
	OnIndexBuild(ctx context.Context, graphID string, assetCount int, duration time.Duration, err error)
	OnIndexReuse(ctx context.Context, graphID string)

	// Layout events
	OnLayoutStart(ctx context.Context, layout string, dims, nodeCount int)
	OnLayoutComplete(ctx context.Context, layout string, dims int, duration time.Duration, err error)

	// OnValidationFailure records input rejected before rendering.
	OnValidationFailure(ctx context.Context, field string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from figure cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopVisualizeHooks is a no-op implementation of VisualizeHooks.
type NoopVisualizeHooks struct{}

func (NoopVisualizeHooks) OnIndexBuild(context.Context, string, int, time.Duration, error) {}
func (NoopVisualizeHooks) OnIndexReuse(context.Context, string)                            {}
func (NoopVisualizeHooks) OnLayoutStart(context.Context, string, int, int)                 {}
func (NoopVisualizeHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopVisualizeHooks) OnValidationFailure(context.Context, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	visualizeHooks VisualizeHooks = NoopVisualizeHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetVisualizeHooks registers custom visualization hooks.
// This should be called once at application startup before any visualization.
func SetVisualizeHooks(h VisualizeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		visualizeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Visualize returns the registered visualization hooks.
func Visualize() VisualizeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return visualizeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	visualizeHooks = NoopVisualizeHooks{}
	cacheHooks = NoopCacheHooks{}
}
