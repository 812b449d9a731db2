package vtc

import (
	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/value"
)

// GetString resolves (namespace, name) and requires a String result.
func (s *Store) GetString(namespace, name string) (string, error) {
	v, err := s.evaluator.Resolve(namespace, name)
	if err != nil {
		return "", err
	}
	str, ok := v.AsString()
	if !ok {
		return "", &eval.TypeMismatchError{Expected: "String", Got: v.Kind().String()}
	}
	return str, nil
}

// GetInteger resolves (namespace, name) and requires an Integer result;
// Float is not auto-coerced (spec §4.5).
func (s *Store) GetInteger(namespace, name string) (int64, error) {
	v, err := s.evaluator.Resolve(namespace, name)
	if err != nil {
		return 0, err
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, &eval.TypeMismatchError{Expected: "Integer", Got: v.Kind().String()}
	}
	return n, nil
}

// GetFloat resolves (namespace, name), accepting either Float or Integer
// (promoted).
func (s *Store) GetFloat(namespace, name string) (float64, error) {
	v, err := s.evaluator.Resolve(namespace, name)
	if err != nil {
		return 0, err
	}
	f, ok := v.NumberAsFloat()
	if !ok {
		return 0, &eval.TypeMismatchError{Expected: "Float or Integer", Got: v.Kind().String()}
	}
	return f, nil
}

// GetBoolean resolves (namespace, name) and requires a Boolean result.
func (s *Store) GetBoolean(namespace, name string) (bool, error) {
	v, err := s.evaluator.Resolve(namespace, name)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, &eval.TypeMismatchError{Expected: "Boolean", Got: v.Kind().String()}
	}
	return b, nil
}

// GetList resolves (namespace, name) and requires a List result; elements
// are returned fully resolved.
func (s *Store) GetList(namespace, name string) ([]value.Value, error) {
	v, err := s.evaluator.Resolve(namespace, name)
	if err != nil {
		return nil, err
	}
	lst, ok := v.AsList()
	if !ok {
		return nil, &eval.TypeMismatchError{Expected: "List", Got: v.Kind().String()}
	}
	return lst.Elements(), nil
}

// GetValue resolves (namespace, name) to its raw resolved Value, then
// applies any trailing accessors in order.
func (s *Store) GetValue(namespace, name string, accessors ...value.Accessor) (value.Value, error) {
	v, err := s.evaluator.Resolve(namespace, name)
	if err != nil {
		return value.Value{}, err
	}
	for _, acc := range accessors {
		v, err = s.evaluator.ApplyAccessor(v, acc)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

// FlattenList resolves (namespace, name) to a List, recursively
// descending into any List elements; non-list elements are preserved in
// order (spec §4.5).
func (s *Store) FlattenList(namespace, name string) ([]value.Value, error) {
	elems, err := s.GetList(namespace, name)
	if err != nil {
		return nil, err
	}
	return flatten(elems), nil
}

func flatten(elems []value.Value) []value.Value {
	out := make([]value.Value, 0, len(elems))
	for _, e := range elems {
		if lst, ok := e.AsList(); ok {
			out = append(out, flatten(lst.Elements())...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// AsDict interprets (namespace, name) as a list of `[key: String, value]`
// pairs, last-write-wins on duplicate keys. A malformed entry (wrong
// arity, non-list element, or non-String key) is BadDictShape.
func (s *Store) AsDict(namespace, name string) (map[string]value.Value, error) {
	elems, err := s.GetList(namespace, name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]value.Value, len(elems))
	for _, e := range elems {
		pair, ok := e.AsList()
		if !ok || pair.Len() != 2 {
			return nil, &eval.BadDictShapeError{Reason: "entry is not a 2-element list"}
		}
		key, ok := pair.At(0).AsString()
		if !ok {
			return nil, &eval.BadDictShapeError{Reason: "entry key is not a String"}
		}
		out[key] = pair.At(1)
	}
	return out, nil
}
