// Package store holds the in-memory namespace/binding container VTC loads
// source text into. A Store is append-only during Load; queries never
// mutate it (spec §3, §4.2).
package store

import (
	"sync"

	"github.com/vtc-lang/vtc/internal/parser"
	"github.com/vtc-lang/vtc/internal/value"
)

// Binding is an immutable name→expression pair.
type Binding struct {
	Name string
	Expr value.Value
}

// Namespace is an insertion-ordered mapping of binding name to Binding.
// Re-declaring a variable replaces its expression but keeps its original
// position (spec §3 "Namespace" invariant).
type Namespace struct {
	Name     string
	bindings []*Binding
	index    map[string]int
}

func newNamespace(name string) *Namespace {
	return &Namespace{Name: name, index: make(map[string]int)}
}

// put inserts or replaces a binding, preserving first-insertion order.
func (n *Namespace) put(name string, expr value.Value) {
	if i, ok := n.index[name]; ok {
		n.bindings[i] = &Binding{Name: name, Expr: expr}
		return
	}
	n.index[name] = len(n.bindings)
	n.bindings = append(n.bindings, &Binding{Name: name, Expr: expr})
}

// Get returns the binding's expression and whether it exists.
func (n *Namespace) Get(name string) (value.Value, bool) {
	i, ok := n.index[name]
	if !ok {
		return value.Value{}, false
	}
	return n.bindings[i].Expr, true
}

// Variables returns variable names in insertion order.
func (n *Namespace) Variables() []string {
	out := make([]string, len(n.bindings))
	for i, b := range n.bindings {
		out[i] = b.Name
	}
	return out
}

// Store is the insertion-ordered mapping of namespace name → Namespace
// produced by Load. It is safe for concurrent reads; per spec §5 it is not
// required to support concurrent mutation.
type Store struct {
	mu         sync.RWMutex
	namespaces []*Namespace
	index      map[string]int
}

// New creates an empty Store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Load parses src and transactionally merges it into the Store: parsing
// happens in full before anything is committed, so a failing load leaves
// the Store unchanged (spec §7).
func (s *Store) Load(src string, opts ...parser.Option) error {
	f, err := parser.ParseString(src, opts...)
	if err != nil {
		return err
	}
	s.commit(f)
	return nil
}

// commit merges a fully-parsed File into the Store (last-write-wins on
// both namespace and binding names, per spec §3).
func (s *Store) commit(f parser.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pn := range f.Namespaces {
		ns := s.namespaceForWrite(pn.Name)
		for _, b := range pn.Bindings {
			ns.put(b.Name, b.Expr)
		}
	}
}

func (s *Store) namespaceForWrite(name string) *Namespace {
	if i, ok := s.index[name]; ok {
		return s.namespaces[i]
	}
	ns := newNamespace(name)
	s.index[name] = len(s.namespaces)
	s.namespaces = append(s.namespaces, ns)
	return ns
}

// GetBinding returns the unevaluated expression bound to (namespace,
// variable), mirroring spec §4.2's get_binding.
func (s *Store) GetBinding(namespace, variable string) (value.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.namespace(namespace)
	if !ok {
		return value.Value{}, false
	}
	return ns.Get(variable)
}

func (s *Store) namespace(name string) (*Namespace, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.namespaces[i], true
}

// ListNamespaces returns namespace names in insertion order.
func (s *Store) ListNamespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.namespaces))
	for i, ns := range s.namespaces {
		out[i] = ns.Name
	}
	return out
}

// ListVariables returns variable names within namespace, in insertion
// order, or (nil, false) if the namespace does not exist.
func (s *Store) ListVariables(namespace string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.namespace(namespace)
	if !ok {
		return nil, false
	}
	return ns.Variables(), true
}

// HasNamespace reports whether namespace exists.
func (s *Store) HasNamespace(namespace string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.namespace(namespace)
	return ok
}
