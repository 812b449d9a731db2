package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtc-lang/vtc/internal/token"
)

func TestKindStringKnown(t *testing.T) {
	require.Equal(t, "->", token.ARROW.String())
	require.Equal(t, ":=", token.ASSIGN.String())
	require.Equal(t, `\0`, token.NIL.String())
}

func TestKindStringUnknown(t *testing.T) {
	require.Equal(t, "UNKNOWN", token.Kind(9999).String())
}

func TestKeywordsMapping(t *testing.T) {
	k, ok := token.Keywords["True"]
	require.True(t, ok)
	require.Equal(t, token.TRUE, k)

	_, ok = token.Keywords["true"]
	require.False(t, ok)
}
