// Package value defines the VTC value model: the tagged union of concrete
// values plus the reference-counted list primitive that lets large list
// literals be shared and sliced cheaply.
//
// A Value doubles as both the unevaluated expression tree stored in a
// Binding (spec: "expressions are stored exactly as parsed") and the fully
// resolved runtime value handed back by the evaluator. Reference and
// Intrinsic variants only ever appear in the unevaluated form; a "resolved"
// Value is one of String, Int, Float, Bool, Nil, or a List whose elements
// are themselves resolved.
package value

import (
	"fmt"
	"math"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	NilKind Kind = iota
	StringKind
	IntKind
	FloatKind
	BoolKind
	ListKind
	ReferenceKind
	IntrinsicKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "Nil"
	case StringKind:
		return "String"
	case IntKind:
		return "Integer"
	case FloatKind:
		return "Float"
	case BoolKind:
		return "Boolean"
	case ListKind:
		return "List"
	case ReferenceKind:
		return "Reference"
	case IntrinsicKind:
		return "Intrinsic"
	}
	return "Unknown"
}

// Value is the VTC tagged-union value. The zero Value is Nil.
type Value struct {
	kind Kind

	str  string
	i    int64
	f    float64
	b    bool
	list list

	ref       *ReferenceSpec
	intrinsic *Intrinsic
}

// Nil returns the Nil value.
func Nil() Value { return Value{kind: NilKind} }

// String constructs a String value.
func String(s string) Value { return Value{kind: StringKind, str: s} }

// Int constructs an Integer value.
func Int(i int64) Value { return Value{kind: IntKind, i: i} }

// Float constructs a Float value.
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Reference constructs a Reference value.
func Reference(spec ReferenceSpec) Value { return Value{kind: ReferenceKind, ref: &spec} }

// IntrinsicCall constructs an unresolved intrinsic-call value.
func IntrinsicCall(name string, args []Value) Value {
	return Value{kind: IntrinsicKind, intrinsic: &Intrinsic{Name: name, Args: args}}
}

// List constructs a List value from a freshly-owned slice of elements. The
// slice becomes the shared backing storage; callers must not mutate it
// afterwards.
func List(elems []Value) Value {
	return Value{kind: ListKind, list: newList(elems)}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsResolved reports whether v contains no References or Intrinsics,
// recursively through any List elements.
func (v Value) IsResolved() bool {
	switch v.kind {
	case ReferenceKind, IntrinsicKind:
		return false
	case ListKind:
		for i := 0; i < v.list.Len(); i++ {
			if !v.list.At(i).IsResolved() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// AsString returns the String payload and whether v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.str, true
}

// AsInt returns the Integer payload and whether v is an Integer.
func (v Value) AsInt() (int64, bool) {
	if v.kind != IntKind {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the Float payload and whether v is a Float.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != FloatKind {
		return 0, false
	}
	return v.f, true
}

// AsBool returns the Boolean payload and whether v is a Boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != BoolKind {
		return false, false
	}
	return v.b, true
}

// AsList returns the list view and whether v is a List.
func (v Value) AsList() (ListView, bool) {
	if v.kind != ListKind {
		return ListView{}, false
	}
	return ListView{v.list}, true
}

// AsReference returns the ReferenceSpec and whether v is a Reference.
func (v Value) AsReference() (ReferenceSpec, bool) {
	if v.kind != ReferenceKind {
		return ReferenceSpec{}, false
	}
	return *v.ref, true
}

// AsIntrinsic returns the Intrinsic call and whether v is an Intrinsic.
func (v Value) AsIntrinsic() (Intrinsic, bool) {
	if v.kind != IntrinsicKind {
		return Intrinsic{}, false
	}
	return *v.intrinsic, true
}

// Len returns the element count of a List value, or 0 otherwise.
func (v Value) Len() int {
	if v.kind != ListKind {
		return 0
	}
	return v.list.Len()
}

// NumberAsFloat promotes an Integer or Float value to float64.
func (v Value) NumberAsFloat() (float64, bool) {
	switch v.kind {
	case IntKind:
		return float64(v.i), true
	case FloatKind:
		return v.f, true
	}
	return 0, false
}

// String renders v for diagnostics; it is not a parser of VTC syntax.
func (v Value) String() string {
	switch v.kind {
	case NilKind:
		return `\0`
	case StringKind:
		return fmt.Sprintf("%q", v.str)
	case IntKind:
		return fmt.Sprintf("%d", v.i)
	case FloatKind:
		return fmt.Sprintf("%g", v.f)
	case BoolKind:
		if v.b {
			return "True"
		}
		return "False"
	case ListKind:
		s := "["
		for i := 0; i < v.list.Len(); i++ {
			if i > 0 {
				s += ", "
			}
			s += v.list.At(i).String()
		}
		return s + "]"
	case ReferenceKind:
		return v.ref.String()
	case IntrinsicKind:
		return v.intrinsic.String()
	}
	return "<invalid>"
}

// Equal reports structural equality between two resolved values, per the
// spec's open questions: NaN never equals itself; Nil equals only Nil.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		// Mixed numeric kinds are not auto-equal here; std_eq promotes
		// explicitly before calling Equal when it wants that behavior.
		return false
	}
	switch a.kind {
	case NilKind:
		return true
	case StringKind:
		return a.str == b.str
	case IntKind:
		return a.i == b.i
	case FloatKind:
		if math.IsNaN(a.f) || math.IsNaN(b.f) {
			return false
		}
		return a.f == b.f
	case BoolKind:
		return a.b == b.b
	case ListKind:
		if a.list.Len() != b.list.Len() {
			return false
		}
		for i := 0; i < a.list.Len(); i++ {
			if !Equal(a.list.At(i), b.list.At(i)) {
				return false
			}
		}
		return true
	}
	return false
}

// ReferenceScope distinguishes '%' (Local) from '&' (External) references.
type ReferenceScope int

const (
	Local ReferenceScope = iota
	External
)

// ReferenceSpec is an unresolved pointer to another namespace/variable.
type ReferenceSpec struct {
	Scope     ReferenceScope
	Namespace string // empty when Scope == Local and no namespace was given
	Variable  string
	Accessors []Accessor
}

func (r ReferenceSpec) String() string {
	s := "%"
	if r.Scope == External {
		s = "&"
	}
	if r.Namespace != "" {
		s += r.Namespace + "."
	}
	s += r.Variable
	for _, a := range r.Accessors {
		s += "->" + a.String()
	}
	return s
}

// Accessor is either an Index or a Range, applied to a List or String.
type Accessor struct {
	isRange bool
	index   int64
	start   *int64
	end     *int64
}

// Index constructs an index accessor.
func Index(i int64) Accessor { return Accessor{index: i} }

// RangeAccessor constructs a half-open range accessor; either bound may be nil.
func RangeAccessor(start, end *int64) Accessor {
	return Accessor{isRange: true, start: start, end: end}
}

// IsRange reports whether the accessor is a Range (vs an Index).
func (a Accessor) IsRange() bool { return a.isRange }

// IndexValue returns the index, valid only when !IsRange().
func (a Accessor) IndexValue() int64 { return a.index }

// Bounds returns the (possibly nil) start/end of a Range accessor.
func (a Accessor) Bounds() (start, end *int64) { return a.start, a.end }

func (a Accessor) String() string {
	if !a.isRange {
		return fmt.Sprintf("(%d)", a.index)
	}
	s := "("
	if a.start != nil {
		s += fmt.Sprintf("%d", *a.start)
	}
	s += ".."
	if a.end != nil {
		s += fmt.Sprintf("%d", *a.end)
	}
	return s + ")"
}

// Intrinsic is an unresolved call; arguments may themselves be References
// or nested Intrinsics.
type Intrinsic struct {
	Name string
	Args []Value
}

func (i Intrinsic) String() string {
	s := "[" + i.Name + "!!"
	for _, a := range i.Args {
		s += ", " + a.String()
	}
	return s + "]"
}
