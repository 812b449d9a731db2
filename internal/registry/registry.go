// Package registry implements the intrinsic call table: a name→handler
// mapping populated at store creation with the standard library and
// extensible by the host before queries begin (spec §4.4).
package registry

import (
	"sync"

	"github.com/vtc-lang/vtc/internal/value"
)

// Handler is the signature every intrinsic — standard library or
// host-registered — must implement. args are already fully resolved
// (spec §4.4 "Handlers receive resolved values only").
type Handler func(args []value.Value) (value.Value, error)

// Registry is a name→Handler table, grounded on the teacher's
// getBuiltin(name) dispatch (internal/eval/builtin.go) generalized from a
// fixed switch to an open, host-extensible map.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds or replaces the handler for name. Safe to call at any
// time; registering after a query has begun has no retroactive effect on
// that query's memoized results (spec §4.4).
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Lookup returns the handler for name, or (nil, false) if unregistered.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns every registered intrinsic name, in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	return out
}
