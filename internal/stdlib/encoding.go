package stdlib

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/value"
)

// registerEncoding installs std_base64_encode/decode and std_hash, grounded
// on cuelang-cue's pkg/encoding/base64 and pkg/crypto wrappers around the
// same standard library packages.
func registerEncoding(r *registry.Registry) {
	r.Register("std_base64_encode", func(args []value.Value) (value.Value, error) {
		if err := arity("std_base64_encode", args, 1); err != nil {
			return value.Value{}, err
		}
		s, ok := args[0].AsString()
		if !ok {
			return value.Value{}, typeErr("std_base64_encode", "String", args[0])
		}
		return value.String(base64.StdEncoding.EncodeToString([]byte(s))), nil
	})

	r.Register("std_base64_decode", func(args []value.Value) (value.Value, error) {
		if err := arity("std_base64_decode", args, 1); err != nil {
			return value.Value{}, err
		}
		s, ok := args[0].AsString()
		if !ok {
			return value.Value{}, typeErr("std_base64_decode", "String", args[0])
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return value.Value{}, &eval.IntrinsicError{Name: "std_base64_decode", Detail: eval.BadArgument, Msg: err.Error()}
		}
		return value.String(string(decoded)), nil
	})

	r.Register("std_hash", func(args []value.Value) (value.Value, error) {
		if err := arity("std_hash", args, 2); err != nil {
			return value.Value{}, err
		}
		data, ok := args[0].AsString()
		if !ok {
			return value.Value{}, typeErr("std_hash", "String", args[0])
		}
		algo, ok := args[1].AsString()
		if !ok {
			return value.Value{}, typeErr("std_hash", "String", args[1])
		}
		if algo != "sha256" {
			return value.Value{}, &eval.IntrinsicError{Name: "std_hash", Detail: eval.BadArgument, Msg: "unsupported algorithm " + algo}
		}
		sum := sha256.Sum256([]byte(data))
		return value.String(hex.EncodeToString(sum[:])), nil
	})
}
