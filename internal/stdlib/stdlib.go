// Package stdlib implements the standard intrinsic library VTC pre-registers
// at store creation (spec §4.4), organized by domain the way cuelang-cue
// splits its builtin packages (pkg/math, pkg/crypto, pkg/encoding/base64)
// instead of the teacher's single getBuiltin switch.
package stdlib

import (
	"fmt"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/value"
)

// Install registers every standard intrinsic into r. Hosts call this once
// at store creation, then layer their own handlers on top with
// r.Register, which is free to shadow a standard name.
func Install(r *registry.Registry) {
	registerArith(r)
	registerBitwise(r)
	registerCompare(r)
	registerStringFn(r)
	registerEncoding(r)
}

func arity(name string, args []value.Value, want int) error {
	if len(args) != want {
		return &eval.IntrinsicError{
			Name:   name,
			Detail: eval.Arity,
			Msg:    fmt.Sprintf("expects %d argument(s), got %d", want, len(args)),
		}
	}
	return nil
}

func typeErr(name, expected string, got value.Value) error {
	return &eval.IntrinsicError{
		Name:   name,
		Detail: eval.BadArgument,
		Msg:    fmt.Sprintf("expected %s, got %s", expected, got.Kind()),
	}
}
