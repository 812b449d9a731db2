package stdlib

import (
	"math"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/value"
)

// registerArith installs the integer/float arithmetic intrinsics, grounded
// on cuelang-cue's pkg/math arithmetic wrappers generalized from CUE's adt
// call convention to VTC's plain []value.Value args.
func registerArith(r *registry.Registry) {
	r.Register("std_add_int", intBinop("std_add_int", func(a, b int64) (int64, bool) {
		sum := a + b
		if (sum > a) != (b > 0) {
			return 0, false
		}
		return sum, true
	}))
	r.Register("std_sub_int", intBinop("std_sub_int", func(a, b int64) (int64, bool) {
		diff := a - b
		if (diff < a) != (b > 0) {
			return 0, false
		}
		return diff, true
	}))
	r.Register("std_mul_int", intBinop("std_mul_int", func(a, b int64) (int64, bool) {
		if a == 0 || b == 0 {
			return 0, true
		}
		prod := a * b
		if prod/b != a {
			return 0, false
		}
		return prod, true
	}))
	r.Register("std_div_int", intDivop("std_div_int", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, &eval.IntrinsicError{Name: "std_div_int", Detail: eval.DivByZero, Msg: "division by zero"}
		}
		if a == math.MinInt64 && b == -1 {
			return 0, &eval.IntrinsicError{Name: "std_div_int", Detail: eval.Overflow, Msg: "quotient overflows int64"}
		}
		return a / b, nil
	}))
	r.Register("std_mod_int", intDivop("std_mod_int", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, &eval.IntrinsicError{Name: "std_mod_int", Detail: eval.DivByZero, Msg: "modulo by zero"}
		}
		if a == math.MinInt64 && b == -1 {
			return 0, &eval.IntrinsicError{Name: "std_mod_int", Detail: eval.Overflow, Msg: "remainder overflows int64"}
		}
		return a % b, nil
	}))

	r.Register("std_add_float", floatBinop("std_add_float", func(a, b float64) float64 { return a + b }))
	r.Register("std_sub_float", floatBinop("std_sub_float", func(a, b float64) float64 { return a - b }))
	r.Register("std_mul_float", floatBinop("std_mul_float", func(a, b float64) float64 { return a * b }))
	r.Register("std_div_float", floatBinop("std_div_float", func(a, b float64) float64 { return a / b }))

	r.Register("std_int_to_float", func(args []value.Value) (value.Value, error) {
		if err := arity("std_int_to_float", args, 1); err != nil {
			return value.Value{}, err
		}
		i, ok := args[0].AsInt()
		if !ok {
			return value.Value{}, typeErr("std_int_to_float", "Integer", args[0])
		}
		return value.Float(float64(i)), nil
	})
	r.Register("std_float_to_int", func(args []value.Value) (value.Value, error) {
		if err := arity("std_float_to_int", args, 1); err != nil {
			return value.Value{}, err
		}
		f, ok := args[0].AsFloat()
		if !ok {
			return value.Value{}, typeErr("std_float_to_int", "Float", args[0])
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
			return value.Value{}, &eval.IntrinsicError{Name: "std_float_to_int", Detail: eval.Overflow, Msg: "float out of int64 range"}
		}
		return value.Int(int64(f)), nil
	})
}

func intBinop(name string, op func(a, b int64) (int64, bool)) registry.Handler {
	return func(args []value.Value) (value.Value, error) {
		if err := arity(name, args, 2); err != nil {
			return value.Value{}, err
		}
		a, ok := args[0].AsInt()
		if !ok {
			return value.Value{}, typeErr(name, "Integer", args[0])
		}
		b, ok := args[1].AsInt()
		if !ok {
			return value.Value{}, typeErr(name, "Integer", args[1])
		}
		res, ok := op(a, b)
		if !ok {
			return value.Value{}, &eval.IntrinsicError{Name: name, Detail: eval.Overflow, Msg: "integer overflow"}
		}
		return value.Int(res), nil
	}
}

func intDivop(name string, op func(a, b int64) (int64, error)) registry.Handler {
	return func(args []value.Value) (value.Value, error) {
		if err := arity(name, args, 2); err != nil {
			return value.Value{}, err
		}
		a, ok := args[0].AsInt()
		if !ok {
			return value.Value{}, typeErr(name, "Integer", args[0])
		}
		b, ok := args[1].AsInt()
		if !ok {
			return value.Value{}, typeErr(name, "Integer", args[1])
		}
		res, err := op(a, b)
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(res), nil
	}
}

func floatBinop(name string, op func(a, b float64) float64) registry.Handler {
	return func(args []value.Value) (value.Value, error) {
		if err := arity(name, args, 2); err != nil {
			return value.Value{}, err
		}
		a, ok := args[0].AsFloat()
		if !ok {
			return value.Value{}, typeErr(name, "Float", args[0])
		}
		b, ok := args[1].AsFloat()
		if !ok {
			return value.Value{}, typeErr(name, "Float", args[1])
		}
		return value.Float(op(a, b)), nil
	}
}
