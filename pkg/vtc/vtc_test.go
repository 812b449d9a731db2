package vtc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtc-lang/vtc/internal/eval"
	"github.com/vtc-lang/vtc/internal/value"
	"github.com/vtc-lang/vtc/pkg/vtc"
)

func TestLoadAndGetString(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $name := "world"
  $greeting := [std_concat!!, "hello ", %name]
`))
	v, err := s.GetString("a", "greeting")
	require.NoError(t, err)
	require.Equal(t, "hello world", v)
}

func TestGetIntegerDoesNotCoerceFloat(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $x := 1.5
`))
	_, err := s.GetInteger("a", "x")
	require.Error(t, err)
	var tm *eval.TypeMismatchError
	require.True(t, errors.As(err, &tm))
}

func TestGetFloatPromotesInteger(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $x := 4
`))
	f, err := s.GetFloat("a", "x")
	require.NoError(t, err)
	require.Equal(t, 4.0, f)
}

func TestGetListAndFlattenList(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $xs := [1, [2, 3], 4]
`))
	lst, err := s.GetList("a", "xs")
	require.NoError(t, err)
	require.Len(t, lst, 3)

	flat, err := s.FlattenList("a", "xs")
	require.NoError(t, err)
	require.Len(t, flat, 4)
}

func TestAsDictLastWriteWins(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $pairs := [["k", 1], ["k", 2], ["other", 3]]
`))
	d, err := s.AsDict("a", "pairs")
	require.NoError(t, err)
	n, _ := d["k"].AsInt()
	require.Equal(t, int64(2), n)
	n, _ = d["other"].AsInt()
	require.Equal(t, int64(3), n)
}

func TestAsDictBadShape(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $pairs := [1, 2, 3]
`))
	_, err := s.AsDict("a", "pairs")
	require.Error(t, err)
	var bd *eval.BadDictShapeError
	require.True(t, errors.As(err, &bd))
}

func TestGetValueWithAccessor(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $xs := [10, 20, 30]
`))
	v, err := s.GetValue("a", "xs", value.Index(1))
	require.NoError(t, err)
	n, _ := v.AsInt()
	require.Equal(t, int64(20), n)
}

func TestWithoutStdlibRejectsStandardIntrinsic(t *testing.T) {
	s := vtc.New(vtc.WithoutStdlib())
	require.NoError(t, s.Load(`@a:
  $x := [std_add_int!!, 1, 2]
`))
	_, err := s.GetInteger("a", "x")
	require.Error(t, err)
	var ui *eval.UnknownIntrinsicError
	require.True(t, errors.As(err, &ui))
}

func TestWithIntrinsicOverridesStandard(t *testing.T) {
	s := vtc.New(vtc.WithIntrinsic("std_add_int", func(args []value.Value) (value.Value, error) {
		return value.Int(1000), nil
	}))
	require.NoError(t, s.Load(`@a:
  $x := [std_add_int!!, 1, 2]
`))
	n, err := s.GetInteger("a", "x")
	require.NoError(t, err)
	require.Equal(t, int64(1000), n)
}

func TestListNamespacesAndVariables(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a:
  $x := 1
  $y := 2
@b:
  $z := 3
`))
	require.Equal(t, []string{"a", "b"}, s.ListNamespaces())
	vars, ok := s.ListVariables("a")
	require.True(t, ok)
	require.Equal(t, []string{"x", "y"}, vars)
}

func TestLoadFailureLeavesStoreUsable(t *testing.T) {
	s := vtc.New()
	require.NoError(t, s.Load(`@a: $x := 1`))
	require.Error(t, s.Load(`@a: $y := `))

	n, err := s.GetInteger("a", "x")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}
