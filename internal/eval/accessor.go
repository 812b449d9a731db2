package eval

import "github.com/vtc-lang/vtc/internal/value"

// ApplyAccessor applies a single Index or Range accessor to an already
// resolved List or String value. It is exposed for callers (the public
// Query API's GetValue) that supply accessors outside of a stored
// Reference's own chain.
func (e *Evaluator) ApplyAccessor(v value.Value, acc value.Accessor) (value.Value, error) {
	return applyAccessor(v, acc)
}

// applyAccessor applies a single Index or Range accessor to a resolved
// List or String value (spec §4.3 "Accessor semantics").
func applyAccessor(v value.Value, acc value.Accessor) (value.Value, error) {
	switch v.Kind() {
	case value.ListKind:
		lst, _ := v.AsList()
		if acc.IsRange() {
			start, end := clampRange(acc, lst.Len())
			if start > end {
				return value.List(nil), nil
			}
			return lst.Slice(start, end), nil
		}
		i, ok := clampIndex(acc.IndexValue(), lst.Len())
		if !ok {
			return value.Value{}, &BadAccessorError{Reason: "index out of bounds"}
		}
		return lst.At(i), nil

	case value.StringKind:
		s, _ := v.AsString()
		if acc.IsRange() {
			start, end := clampRange(acc, len(s))
			if start > end {
				return value.String(""), nil
			}
			return value.String(s[start:end]), nil
		}
		i, ok := clampIndex(acc.IndexValue(), len(s))
		if !ok {
			return value.Value{}, &BadAccessorError{Reason: "index out of bounds"}
		}
		return value.String(s[i : i+1]), nil

	default:
		return value.Value{}, &BadAccessorError{Reason: "accessor applied to non-indexable value " + v.Kind().String()}
	}
}

// clampIndex rewrites a negative index by counting from the end, then
// bounds-checks it against length.
func clampIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}

// clampRange resolves a Range accessor's optional, possibly-negative
// bounds into a clamped [start, end] pair within [0, length].
func clampRange(acc value.Accessor, length int) (start, end int) {
	startPtr, endPtr := acc.Bounds()

	start = 0
	if startPtr != nil {
		start = wrapAndClamp(*startPtr, length)
	}
	end = length
	if endPtr != nil {
		end = wrapAndClamp(*endPtr, length)
	}
	return start, end
}

func wrapAndClamp(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 {
		return 0
	}
	if i > int64(length) {
		return length
	}
	return int(i)
}
