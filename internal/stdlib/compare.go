package stdlib

import (
	"math"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/value"
)

// registerCompare installs std_eq/std_lt/std_gt/std_le/std_ge/std_if.
func registerCompare(r *registry.Registry) {
	r.Register("std_eq", func(args []value.Value) (value.Value, error) {
		if err := arity("std_eq", args, 2); err != nil {
			return value.Value{}, err
		}
		a, b := args[0], args[1]
		if af, aok := a.NumberAsFloat(); aok {
			if bf, bok := b.NumberAsFloat(); bok {
				return value.Bool(af == bf), nil
			}
		}
		return value.Bool(value.Equal(a, b)), nil
	})

	r.Register("std_lt", orderOp("std_lt", func(c int) bool { return c < 0 }))
	r.Register("std_gt", orderOp("std_gt", func(c int) bool { return c > 0 }))
	r.Register("std_le", orderOp("std_le", func(c int) bool { return c <= 0 }))
	r.Register("std_ge", orderOp("std_ge", func(c int) bool { return c >= 0 }))

	r.Register("std_if", func(args []value.Value) (value.Value, error) {
		if err := arity("std_if", args, 3); err != nil {
			return value.Value{}, err
		}
		cond, ok := args[0].AsBool()
		if !ok {
			return value.Value{}, &eval.TypeMismatchError{Expected: "Boolean", Got: args[0].Kind().String()}
		}
		if cond {
			return args[1], nil
		}
		return args[2], nil
	})
}

// orderOp compares two same-typed (or mixed-numeric) values and reports
// whether their three-way comparison satisfies pred.
func orderOp(name string, pred func(cmp int) bool) registry.Handler {
	return func(args []value.Value) (value.Value, error) {
		if err := arity(name, args, 2); err != nil {
			return value.Value{}, err
		}
		a, b := args[0], args[1]

		if af, aok := a.NumberAsFloat(); aok {
			if bf, bok := b.NumberAsFloat(); bok {
				if math.IsNaN(af) || math.IsNaN(bf) {
					return value.Bool(false), nil
				}
				return value.Bool(pred(floatCmp(af, bf))), nil
			}
		}
		if as, aok := a.AsString(); aok {
			if bs, bok := b.AsString(); bok {
				return value.Bool(pred(stringCmp(as, bs))), nil
			}
		}
		return value.Value{}, &eval.IntrinsicError{Name: name, Detail: eval.BadArgument, Msg: "operands are not comparable"}
	}
}

func floatCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func stringCmp(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
