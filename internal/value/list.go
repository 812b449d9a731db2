package value

// list is the shared-ownership backing of a List value: a window
// (off, length) onto a reference-counted backing array, so that slicing a
// reference (spec: "Reference + Range is cheap") never copies elements.
// Go's garbage collector already keeps the backing array alive for as long
// as any window references it, which is the reference-counting guarantee
// the spec asks for without needing manual refcounts.
type list struct {
	data   *listData
	off    int
	length int
}

type listData struct {
	items []Value
}

func newList(elems []Value) list {
	return list{data: &listData{items: elems}, off: 0, length: len(elems)}
}

// Len returns the number of elements visible through this window.
func (l list) Len() int { return l.length }

// At returns the i'th element visible through this window.
func (l list) At(i int) Value { return l.data.items[l.off+i] }

// Slice returns a new window over the same backing array; no elements are
// copied. start and end are already clamped and ordered by the caller.
func (l list) Slice(start, end int) list {
	return list{data: l.data, off: l.off + start, length: end - start}
}

// ListView is the public read-only view over a List value's elements,
// returned by Value.AsList.
type ListView struct {
	l list
}

// Len returns the element count.
func (v ListView) Len() int { return v.l.Len() }

// At returns the element at index i (0 <= i < Len()).
func (v ListView) At(i int) Value { return v.l.At(i) }

// Slice returns the half-open window [start, end) as a new List value,
// sharing backing storage with v.
func (v ListView) Slice(start, end int) Value {
	return Value{kind: ListKind, list: v.l.Slice(start, end)}
}

// Elements materializes the view into a fresh, independent slice.
func (v ListView) Elements() []Value {
	out := make([]Value, v.l.Len())
	for i := range out {
		out[i] = v.l.At(i)
	}
	return out
}
