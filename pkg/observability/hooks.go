// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; the binary decides
// what receives them. Every hook defaults to a no-op, so the solver packages
// carry no dependency on a particular backend.
//
// Register hooks once at startup:
//
//	observability.SetSolveHooks(observability.NewLogHooks(logger))
//
// and emit events from library code:
//
//	observability.Solve().OnSampleStart(ctx, name, iterations)
package observability

import (
	"context"
	"sync"
	"time"
)

// SolveHooks receives events from the solving pipeline.
type SolveHooks interface {
	// OnPreprocess reports the precedence closure and setup summaries.
	OnPreprocess(ctx context.Context, instance string, n int, duration time.Duration, err error)

	// OnBounds reports the computed lower bounds.
	OnBounds(ctx context.Context, instance string, best int, duration time.Duration)

	// OnSampleStart and OnSampleComplete bracket heuristic sampling.
	OnSampleStart(ctx context.Context, instance string, iterations int)
	OnSampleComplete(ctx context.Context, instance string, stations int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "bounds" or
// "solve".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API. route is the matched route
// pattern, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopSolveHooks ignores every event.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnPreprocess(context.Context, string, int, time.Duration, error)     {}
func (NoopSolveHooks) OnBounds(context.Context, string, int, time.Duration)                {}
func (NoopSolveHooks) OnSampleStart(context.Context, string, int)                          {}
func (NoopSolveHooks) OnSampleComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers solve hooks. A nil h is ignored.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
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

// Reset restores the no-op defaults. Tests use it to isolate registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
