// Package eval implements the VTC evaluator: it reduces a stored
// expression to a resolved Value, dereferencing References, applying
// Accessors, and dispatching Intrinsic calls through a Registry, while
// detecting reference cycles (spec §4.3).
package eval

import (
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/store"
	"github.com/vtc-lang/vtc/internal/value"
)

// Binder is the subset of *store.Store the Evaluator depends on, so tests
// can substitute a fake without spinning up a full Store.
type Binder interface {
	GetBinding(namespace, variable string) (value.Value, bool)
}

var _ Binder = (*store.Store)(nil)

// Evaluator resolves stored expressions against a Binder and an Intrinsic
// Registry.
type Evaluator struct {
	store    Binder
	registry *registry.Registry
}

// Option configures an Evaluator, mirroring the teacher's functional
// options pattern (internal/eval/eval.go's WithStore/WithProvider).
type Option func(*Evaluator)

// WithRegistry sets the Intrinsic Registry used to dispatch calls.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Evaluator) { e.registry = r }
}

// New creates an Evaluator bound to s. By default its registry is empty;
// callers typically pass WithRegistry(populated) from pkg/vtc.
func New(s Binder, opts ...Option) *Evaluator {
	e := &Evaluator{store: s, registry: registry.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// refKey identifies a binding under resolution for cycle detection
// (spec §4.3 "context carries ... a cycle-detection set of
// (namespace, variable)").
type refKey struct {
	namespace string
	variable  string
}

// query holds the per-top-level-query state: a cycle-detection set and a
// memo of already-resolved bindings. Neither persists across queries
// (spec §4.3 "Memoization").
type query struct {
	visiting map[refKey]bool
	memo     map[refKey]value.Value
}

func newQuery() *query {
	return &query{visiting: make(map[refKey]bool), memo: make(map[refKey]value.Value)}
}

// Resolve fully evaluates the expression bound to (namespace, variable),
// starting a fresh per-query cycle-detection set and memo.
func (e *Evaluator) Resolve(namespace, variable string) (value.Value, error) {
	q := newQuery()
	return e.resolveBinding(namespace, variable, q)
}

// resolveBinding fetches and resolves the expression bound to
// (namespace, variable), consulting/populating q's memo and cycle set.
func (e *Evaluator) resolveBinding(namespace, variable string, q *query) (value.Value, error) {
	key := refKey{namespace, variable}
	if v, ok := q.memo[key]; ok {
		return v, nil
	}
	if q.visiting[key] {
		return value.Value{}, &CyclicReferenceError{Namespace: namespace, Variable: variable}
	}
	expr, ok := e.store.GetBinding(namespace, variable)
	if !ok {
		return value.Value{}, &UnresolvedReferenceError{Namespace: namespace, Variable: variable}
	}
	q.visiting[key] = true
	resolved, err := e.eval(expr, namespace, q)
	delete(q.visiting, key)
	if err != nil {
		return value.Value{}, err
	}
	q.memo[key] = resolved
	return resolved, nil
}

// eval resolves v (spec §4.3 steps 1-4). currentNamespace is the namespace
// owning the binding whose expression is being resolved — the "current
// namespace" context threaded through recursion (spec §9 "Reference
// context"), not the call site's namespace.
func (e *Evaluator) eval(v value.Value, currentNamespace string, q *query) (value.Value, error) {
	switch v.Kind() {
	case value.NilKind, value.StringKind, value.IntKind, value.FloatKind, value.BoolKind:
		return v, nil

	case value.ListKind:
		lst, _ := v.AsList()
		elems := lst.Elements()
		out := make([]value.Value, len(elems))
		for i, el := range elems {
			resolved, err := e.eval(el, currentNamespace, q)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = resolved
		}
		return value.List(out), nil

	case value.ReferenceKind:
		return e.evalReference(v, currentNamespace, q)

	case value.IntrinsicKind:
		return e.evalIntrinsic(v, currentNamespace, q)
	}
	return value.Value{}, &TypeMismatchError{Expected: "resolvable expression", Got: v.Kind().String()}
}

func (e *Evaluator) evalReference(v value.Value, currentNamespace string, q *query) (value.Value, error) {
	ref, _ := v.AsReference()

	ns := ref.Namespace
	if ns == "" {
		if ref.Scope != value.Local {
			return value.Value{}, &UnresolvedReferenceError{Variable: ref.Variable}
		}
		ns = currentNamespace
	}

	base, err := e.resolveBinding(ns, ref.Variable, q)
	if err != nil {
		return value.Value{}, err
	}

	result := base
	for _, acc := range ref.Accessors {
		result, err = applyAccessor(result, acc)
		if err != nil {
			return value.Value{}, err
		}
	}
	return result, nil
}

func (e *Evaluator) evalIntrinsic(v value.Value, currentNamespace string, q *query) (value.Value, error) {
	call, _ := v.AsIntrinsic()

	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		resolved, err := e.eval(a, currentNamespace, q)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = resolved
	}

	handler, ok := e.registry.Lookup(call.Name)
	if !ok {
		return value.Value{}, &UnknownIntrinsicError{Name: call.Name}
	}
	result, err := handler(args)
	if err != nil {
		return value.Value{}, err
	}
	return result, nil
}
