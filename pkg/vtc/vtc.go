// Package vtc provides the public API for the VTC configuration language:
// a Store loads source text and a typed Query surface resolves bindings
// against it, the way the teacher's pkg/losp wraps internal/eval behind a
// small Runtime (spec §4.5).
package vtc

import (
	"io"
	"os"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/stdlib"
	"github.com/vtc-lang/vtc/internal/store"
)

// Store is the public handle over a loaded VTC namespace store. The zero
// value is not usable; construct one with New.
type Store struct {
	store     *store.Store
	registry  *registry.Registry
	evaluator *eval.Evaluator
}

// New creates an empty Store with the standard intrinsic library
// installed, then applies opts.
func New(opts ...Option) *Store {
	s := &Store{
		store:    store.New(),
		registry: registry.New(),
	}

	cfg := config{withStdlib: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.withStdlib {
		stdlib.Install(s.registry)
	}
	for name, h := range cfg.intrinsics {
		s.registry.Register(name, h)
	}

	s.evaluator = eval.New(s.store, eval.WithRegistry(s.registry))
	return s
}

// Load parses src and merges it into the Store. A failing parse leaves
// the Store unchanged (spec §7 "Partial load is rejected").
func (s *Store) Load(src string) error {
	return s.store.Load(src)
}

// LoadReader reads all of r and loads it.
func (s *Store) LoadReader(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return &eval.IoError{Path: "<reader>", Err: err}
	}
	return s.Load(string(b))
}

// LoadFile reads and loads the file at path (spec §5's only blocking I/O).
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &eval.IoError{Path: path, Err: err}
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return &eval.IoError{Path: path, Err: err}
	}
	return s.Load(string(b))
}

// Registry exposes the intrinsic table for host-side introspection or
// post-construction registration (spec §4.4 "Registration after any
// query is allowed").
func (s *Store) Registry() *registry.Registry { return s.registry }

// ListNamespaces returns namespace names in insertion order. It never
// evaluates (spec §4.5).
func (s *Store) ListNamespaces() []string { return s.store.ListNamespaces() }

// ListVariables returns variable names within namespace, in insertion
// order, or (nil, false) if namespace does not exist.
func (s *Store) ListVariables(namespace string) ([]string, bool) {
	return s.store.ListVariables(namespace)
}
