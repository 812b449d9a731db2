package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtc-lang/vtc/internal/parser"
	"github.com/vtc-lang/vtc/internal/value"
)

func TestParseSimpleBinding(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $x := 1
`)
	require.NoError(t, err)
	require.Len(t, f.Namespaces, 1)
	require.Equal(t, "a", f.Namespaces[0].Name)
	require.Equal(t, "x", f.Namespaces[0].Bindings[0].Name)
	n, ok := f.Namespaces[0].Bindings[0].Expr.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(1), n)
}

func TestParseListLiteral(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $xs := [1, 2, 3]
`)
	require.NoError(t, err)
	lst, ok := f.Namespaces[0].Bindings[0].Expr.AsList()
	require.True(t, ok)
	require.Equal(t, 3, lst.Len())
}

func TestParseEmptyListLiteral(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $xs := []
`)
	require.NoError(t, err)
	lst, ok := f.Namespaces[0].Bindings[0].Expr.AsList()
	require.True(t, ok)
	require.Equal(t, 0, lst.Len())
}

func TestParseIntrinsicCallDisambiguatedFromList(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $y := [std_add_int!!, 1, 2]
`)
	require.NoError(t, err)
	call, ok := f.Namespaces[0].Bindings[0].Expr.AsIntrinsic()
	require.True(t, ok)
	require.Equal(t, "std_add_int", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseLocalReferenceWithAccessor(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $xs := [10, 20, 30, 40]
  $s := %xs->(1..3)
`)
	require.NoError(t, err)
	ref, ok := f.Namespaces[0].Bindings[1].Expr.AsReference()
	require.True(t, ok)
	require.Equal(t, value.Local, ref.Scope)
	require.Equal(t, "xs", ref.Variable)
	require.Len(t, ref.Accessors, 1)
	require.True(t, ref.Accessors[0].IsRange())
}

func TestParseExternalReferenceRequiresNamespace(t *testing.T) {
	_, err := parser.ParseString(`@a:
  $x := &y
`)
	require.Error(t, err)
}

func TestParseExternalReferenceWithNamespace(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $x := &b.y
`)
	require.NoError(t, err)
	ref, ok := f.Namespaces[0].Bindings[0].Expr.AsReference()
	require.True(t, ok)
	require.Equal(t, value.External, ref.Scope)
	require.Equal(t, "b", ref.Namespace)
	require.Equal(t, "y", ref.Variable)
}

func TestParseLocalReferenceWithExplicitNamespace(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $x := %a.y
  $y := %a.x
`)
	require.NoError(t, err)
	ref, ok := f.Namespaces[0].Bindings[0].Expr.AsReference()
	require.True(t, ok)
	require.Equal(t, value.Local, ref.Scope)
	require.Equal(t, "a", ref.Namespace)
}

func TestParseRedeclarationLastWriteWinsPreservesOrder(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $x := 1
  $y := 2
  $x := 3
`)
	require.NoError(t, err)
	bindings := f.Namespaces[0].Bindings
	require.Len(t, bindings, 2)
	require.Equal(t, "x", bindings[0].Name)
	require.Equal(t, "y", bindings[1].Name)
	n, _ := bindings[0].Expr.AsInt()
	require.Equal(t, int64(3), n)
}

func TestParseMergesRepeatedNamespaceHeader(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $x := 1
@a:
  $y := 2
`)
	require.NoError(t, err)
	require.Len(t, f.Namespaces, 1)
	require.Len(t, f.Namespaces[0].Bindings, 2)
}

func TestParseNegativeIndexAccessor(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $x := %xs->(-1)
`)
	require.NoError(t, err)
	ref, _ := f.Namespaces[0].Bindings[0].Expr.AsReference()
	require.False(t, ref.Accessors[0].IsRange())
	require.Equal(t, int64(-1), ref.Accessors[0].IndexValue())
}

func TestParseMalformedExpressionFails(t *testing.T) {
	_, err := parser.ParseString(`@a:
  $x :=
`)
	require.Error(t, err)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseMultiErrorRecovery(t *testing.T) {
	_, err := parser.ParseString(`@a:
  $x :=
@b:
  $y := 1
`, parser.WithMultiError())
	require.Error(t, err)
	var merr *parser.MultiError
	require.ErrorAs(t, err, &merr)
}

func TestParseHexAndBinaryIntLiterals(t *testing.T) {
	f, err := parser.ParseString(`@a:
  $h := 0xFF
  $b := 0b1010
`)
	require.NoError(t, err)
	n, _ := f.Namespaces[0].Bindings[0].Expr.AsInt()
	require.Equal(t, int64(255), n)
	n, _ = f.Namespaces[0].Bindings[1].Expr.AsInt()
	require.Equal(t, int64(10), n)
}
