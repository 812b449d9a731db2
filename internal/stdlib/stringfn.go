package stdlib

import (
	"strings"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/registry"
	"github.com/vtc-lang/vtc/internal/value"
)

// registerStringFn installs the String intrinsics: concat, case folding,
// substring, and replace (spec §4.4).
func registerStringFn(r *registry.Registry) {
	r.Register("std_concat", func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return value.Value{}, &eval.IntrinsicError{Name: "std_concat", Detail: eval.Arity, Msg: "expects at least 1 argument"}
		}
		var b strings.Builder
		for _, a := range args {
			s, ok := a.AsString()
			if !ok {
				return value.Value{}, typeErr("std_concat", "String", a)
			}
			b.WriteString(s)
		}
		return value.String(b.String()), nil
	})

	r.Register("std_to_uppercase", stringUnop("std_to_uppercase", asciiUpper))
	r.Register("std_to_lowercase", stringUnop("std_to_lowercase", asciiLower))

	r.Register("std_substring", func(args []value.Value) (value.Value, error) {
		if err := arity("std_substring", args, 3); err != nil {
			return value.Value{}, err
		}
		s, ok := args[0].AsString()
		if !ok {
			return value.Value{}, typeErr("std_substring", "String", args[0])
		}
		start, ok := args[1].AsInt()
		if !ok {
			return value.Value{}, typeErr("std_substring", "Integer", args[1])
		}
		end, ok := args[2].AsInt()
		if !ok {
			return value.Value{}, typeErr("std_substring", "Integer", args[2])
		}
		if start < 0 || end < start || end > int64(len(s)) {
			return value.Value{}, &eval.IntrinsicError{Name: "std_substring", Detail: eval.BadArgument, Msg: "start/end out of bounds"}
		}
		return value.String(s[start:end]), nil
	})

	r.Register("std_replace", func(args []value.Value) (value.Value, error) {
		if err := arity("std_replace", args, 3); err != nil {
			return value.Value{}, err
		}
		haystack, ok := args[0].AsString()
		if !ok {
			return value.Value{}, typeErr("std_replace", "String", args[0])
		}
		needle, ok := args[1].AsString()
		if !ok {
			return value.Value{}, typeErr("std_replace", "String", args[1])
		}
		replacement, ok := args[2].AsString()
		if !ok {
			return value.Value{}, typeErr("std_replace", "String", args[2])
		}
		return value.String(strings.ReplaceAll(haystack, needle, replacement)), nil
	})
}

func stringUnop(name string, op func(string) string) registry.Handler {
	return func(args []value.Value) (value.Value, error) {
		if err := arity(name, args, 1); err != nil {
			return value.Value{}, err
		}
		s, ok := args[0].AsString()
		if !ok {
			return value.Value{}, typeErr(name, "String", args[0])
		}
		return value.String(op(s)), nil
	}
}

// asciiUpper/asciiLower fold only the ASCII range, per spec §4.4
// "ASCII-only case fold".
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
