package stdlib

import (
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/value"
)

// registerBitwise installs the integer-only bitwise intrinsics.
func registerBitwise(r *registry.Registry) {
	r.Register("std_bitwise_and", bitBinop("std_bitwise_and", func(a, b int64) int64 { return a & b }))
	r.Register("std_bitwise_or", bitBinop("std_bitwise_or", func(a, b int64) int64 { return a | b }))
	r.Register("std_bitwise_xor", bitBinop("std_bitwise_xor", func(a, b int64) int64 { return a ^ b }))

	r.Register("std_bitwise_not", func(args []value.Value) (value.Value, error) {
		if err := arity("std_bitwise_not", args, 1); err != nil {
			return value.Value{}, err
		}
		a, ok := args[0].AsInt()
		if !ok {
			return value.Value{}, typeErr("std_bitwise_not", "Integer", args[0])
		}
		return value.Int(^a), nil
	})
}

func bitBinop(name string, op func(a, b int64) int64) registry.Handler {
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
		return value.Int(op(a, b)), nil
	}
}
