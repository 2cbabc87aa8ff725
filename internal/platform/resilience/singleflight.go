package resilience

import (
	"context"
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent calls for the same key into one
// execution. The zero value is ready to use.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key among concurrent callers. shared reports whether
// the result came from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	return g.DoContext(context.Background(), key, fn)
}

// DoContext is Do with a cancellable wait. The leader always runs fn to
// completion; only followers stop waiting when ctx ends.
func (g *SingleFlight) DoContext(ctx context.Context, key string, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err, true
		case <-ctx.Done():
			return nil, ctx.Err(), true
		}
	}
	if g.inflight == nil {
		g.inflight = make(map[string]*flight)
	}
	f := &flight{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	g.lead(key, f, fn)
	return f.val, f.err, false
}

func (g *SingleFlight) lead(key string, f *flight, fn func() (any, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			f.err = fmt.Errorf("singleflight %q panicked: %v", key, rec)
		}
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
		close(f.done)
	}()
	f.val, f.err = fn()
}
