// Package observability provides hook interfaces for instrumenting
// dependency resolution without coupling the core packages to any
// particular metrics or tracing backend.
//
// All hooks default to no-op implementations. Applications install
// their own via SetResolutionHooks, typically once at startup:
//
//	observability.SetResolutionHooks(myMetrics{})
package observability

import (
	"context"
	"sync"
	"time"
)

// ResolutionHooks receives callbacks around dependency tree queries
// and full resolution runs. Implementations must be safe for
// concurrent use.
type ResolutionHooks interface {
	// OnQueryStart is called before the tree source is invoked for dir.
	OnQueryStart(ctx context.Context, dir string)

	// OnQueryComplete is called after the tree source returns. size is
	// the length of the raw output in bytes; err is non-nil when the
	// source was unavailable.
	OnQueryComplete(ctx context.Context, dir string, size int, duration time.Duration, err error)

	// OnResolveComplete is called once per Resolve call with the final
	// path count. err is non-nil when resolution failed.
	OnResolveComplete(ctx context.Context, dir string, paths int, duration time.Duration, err error)
}

// NoopResolutionHooks is a ResolutionHooks that does nothing.
type NoopResolutionHooks struct{}

func (NoopResolutionHooks) OnQueryStart(context.Context, string) {}
func (NoopResolutionHooks) OnQueryComplete(context.Context, string, int, time.Duration, error) {}
func (NoopResolutionHooks) OnResolveComplete(context.Context, string, int, time.Duration, error) {}

var (
	mu         sync.RWMutex
	resolution ResolutionHooks = NoopResolutionHooks{}
)

// SetResolutionHooks installs hooks for resolution events. Passing nil
// restores the no-op implementation.
func SetResolutionHooks(h ResolutionHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopResolutionHooks{}
	}
	resolution = h
}

// Resolution returns the currently installed resolution hooks.
func Resolution() ResolutionHooks {
	mu.RLock()
	defer mu.RUnlock()
	return resolution
}

// Reset restores all hooks to their no-op defaults. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resolution = NoopResolutionHooks{}
}
