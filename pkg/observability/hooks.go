// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about scenegraph writes, layout passes, pipeline stages,
// cache operations and HTTP requests.
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
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnPass(ctx, pass, changed)
//	observability.Scene().OnRejected(nodeID, field, writer, reason)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from the scenegraph geometry engine.
//
// Scenegraph writes are synchronous and never block, so these hooks carry no
// context.
type SceneHooks interface {
	// OnRejected records a rejected write. Reason is the error code
	// (e.g. "OWNERSHIP_CONFLICT", "INVALID_NUMBER").
	OnRejected(nodeID, field, writer, reason string)

	// OnBackfill records an undefined translation component fixed to zero
	// while resolving a reference frame.
	OnBackfill(nodeID, field string)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout driver.
type LayoutHooks interface {
	// OnPass records the end of one fixpoint pass over the element tree.
	OnPass(ctx context.Context, pass int, changed bool)

	// OnConverged records the end of a layout run.
	OnConverged(ctx context.Context, passes int, duration time.Duration, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the document pipeline.
type PipelineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnRejected(string, string, string, string) {}
func (NoopSceneHooks) OnBackfill(string, string)                 {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPass(context.Context, int, bool)                      {}
func (NoopLayoutHooks) OnConverged(context.Context, int, time.Duration, error) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks    SceneHooks    = NoopSceneHooks{}
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetSceneHooks registers custom scenegraph hooks.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetLayoutHooks registers custom layout driver hooks.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Scene returns the registered scenegraph hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sceneHooks = NoopSceneHooks{}
	layoutHooks = NoopLayoutHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
