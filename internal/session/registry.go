// Package session keeps live views addressable by id and tears down the ones
// that sit idle.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-mentor/internal/observability"
)

// DefaultIdleTTL is how long a view may go untouched before it is evicted.
const DefaultIdleTTL = 30 * time.Minute

// Closer is a view that owns background work to cancel on teardown.
type Closer interface {
	Close()
}

// Options configures a Registry.
type Options struct {
	Kind          string        // metrics label, e.g. "chat"
	IdleTTL       time.Duration // defaults to DefaultIdleTTL
	SweepInterval time.Duration // 0 disables the background sweeper
}

type entry[T Closer] struct {
	view       T
	lastAccess time.Time
}

// Registry maps view ids to views. Views never share state; the registry
// only owns their lifetime.
type Registry[T Closer] struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry[T]
	kind    string
	ttl     time.Duration
	now     func() time.Time

	sweepTicker *time.Ticker
	sweepStop   chan struct{}
	stopOnce    sync.Once
}

// New creates a registry and starts its sweeper when an interval is set.
func New[T Closer](opts Options) *Registry[T] {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}

	r := &Registry[T]{
		entries: make(map[uuid.UUID]*entry[T]),
		kind:    opts.Kind,
		ttl:     opts.IdleTTL,
		now:     time.Now,
	}

	if opts.SweepInterval > 0 {
		r.sweepTicker = time.NewTicker(opts.SweepInterval)
		r.sweepStop = make(chan struct{})
		go r.sweepLoop()
	}
	return r
}

// Create registers view under a fresh id.
func (r *Registry[T]) Create(view T) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	r.entries[id] = &entry[T]{view: view, lastAccess: r.now()}
	n := len(r.entries)
	r.mu.Unlock()

	r.report(n)
	return id
}

// Get returns the view for id and marks it as used.
func (r *Registry[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastAccess = r.now()
	return e.view, true
}

// Delete removes the view and closes it. Reports whether it existed.
func (r *Registry[T]) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	n := len(r.entries)
	r.mu.Unlock()

	if !ok {
		return false
	}
	e.view.Close()
	r.report(n)
	return true
}

// Len returns the number of live views.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep closes and removes views idle for longer than the TTL.
// Returns the number evicted.
func (r *Registry[T]) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var idle []T
	for id, e := range r.entries {
		if e.lastAccess.Before(cutoff) {
			idle = append(idle, e.view)
			delete(r.entries, id)
		}
	}
	n := len(r.entries)
	r.mu.Unlock()

	for _, v := range idle {
		v.Close()
	}
	if len(idle) > 0 {
		r.report(n)
	}
	return len(idle)
}

func (r *Registry[T]) sweepLoop() {
	for {
		select {
		case <-r.sweepTicker.C:
			r.Sweep()
		case <-r.sweepStop:
			return
		}
	}
}

// Stop halts the sweeper and closes every remaining view.
func (r *Registry[T]) Stop() {
	r.stopOnce.Do(func() {
		if r.sweepTicker != nil {
			r.sweepTicker.Stop()
			close(r.sweepStop)
		}

		r.mu.Lock()
		views := make([]T, 0, len(r.entries))
		for id, e := range r.entries {
			views = append(views, e.view)
			delete(r.entries, id)
		}
		r.mu.Unlock()

		for _, v := range views {
			v.Close()
		}
		r.report(0)
	})
}

func (r *Registry[T]) report(n int) {
	if r.kind != "" {
		observability.ActiveViews.WithLabelValues(r.kind).Set(float64(n))
	}
}
