// Package observability provides hook points for instrumenting the
// pipeline, cache, and HTTP layers without coupling them to a metrics
// or tracing backend. All hooks default to no-ops.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes the extract, build, and render stages.
type PipelineHooks interface {
	OnExtractStart(ctx context.Context, issueCount int)
	OnExtractComplete(ctx context.Context, issueCount, relationCount int, duration time.Duration, err error)
	OnBuildStart(ctx context.Context, nodeCount int)
	OnBuildComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, bytes int, duration time.Duration, err error)
}

// CacheHooks observes cache operations. keyType identifies the
// backend ("file", "redis").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes outbound API requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, url string)
	OnResponse(ctx context.Context, method, url string, status int, duration time.Duration)
	OnError(ctx context.Context, method, url string, err error)
}

// NoopPipelineHooks implements PipelineHooks with no-ops.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnExtractStart(context.Context, int) {}
func (NoopPipelineHooks) OnExtractComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnBuildStart(context.Context, int) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks implements CacheHooks with no-ops.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks implements HTTPHooks with no-ops.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error) {}

var (
	mu            sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks installs pipeline hooks. Passing nil restores no-ops.
func SetPipelineHooks(h PipelineHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopPipelineHooks{}
	}
	pipelineHooks = h
}

// SetCacheHooks installs cache hooks. Passing nil restores no-ops.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// SetHTTPHooks installs HTTP hooks. Passing nil restores no-ops.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopHTTPHooks{}
	}
	httpHooks = h
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return pipelineHooks
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to no-ops.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
