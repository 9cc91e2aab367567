// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; by default every
// hook is a no-op. A program registers its own implementations at startup
// to count, time, or export those events without the libraries depending
// on any particular backend.
//
//	func main() {
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Compile().OnCompileStart(ctx, root, env)
//	// ... run the compiler ...
//	observability.Compile().OnCompileComplete(ctx, root, env, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Driver Hooks
// =============================================================================

// DriverHooks receives one event pair per package root rendered.
type DriverHooks interface {
	OnRootStart(ctx context.Context, view, root string)
	OnRootComplete(ctx context.Context, view, root string, duration time.Duration, err error)
}

// =============================================================================
// Compile Hooks
// =============================================================================

// CompileHooks receives events for each compiler invocation, one per
// environment attempted.
type CompileHooks interface {
	OnCompileStart(ctx context.Context, root, env string)
	OnCompileComplete(ctx context.Context, root, env string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
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

// NoopDriverHooks is a no-op implementation of DriverHooks.
type NoopDriverHooks struct{}

func (NoopDriverHooks) OnRootStart(context.Context, string, string) {}
func (NoopDriverHooks) OnRootComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCompileHooks is a no-op implementation of CompileHooks.
type NoopCompileHooks struct{}

func (NoopCompileHooks) OnCompileStart(context.Context, string, string) {}
func (NoopCompileHooks) OnCompileComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	driverHooks  DriverHooks  = NoopDriverHooks{}
	compileHooks CompileHooks = NoopCompileHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetDriverHooks registers custom driver hooks.
func SetDriverHooks(h DriverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		driverHooks = h
	}
}

// SetCompileHooks registers custom compile hooks.
func SetCompileHooks(h CompileHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compileHooks = h
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

// Driver returns the registered driver hooks.
func Driver() DriverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return driverHooks
}

// Compile returns the registered compile hooks.
func Compile() CompileHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compileHooks
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
	driverHooks = NoopDriverHooks{}
	compileHooks = NoopCompileHooks{}
	cacheHooks = NoopCacheHooks{}
}
