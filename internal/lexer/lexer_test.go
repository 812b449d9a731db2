package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtc-lang/vtc/internal/lexer"
	"github.com/vtc-lang/vtc/internal/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.NewFromString(src)
	var out []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexNamespaceHeader(t *testing.T) {
	toks := allTokens(t, "@a:")
	require.Equal(t, []token.Kind{token.AT, token.IDENT, token.COLON, token.EOF}, kinds(toks))
}

func TestLexBindingAssignment(t *testing.T) {
	toks := allTokens(t, "$x := 1")
	require.Equal(t, []token.Kind{token.DOLLAR, token.IDENT, token.ASSIGN, token.INT, token.EOF}, kinds(toks))
}

func TestLexStringEscapes(t *testing.T) {
	toks := allTokens(t, `"a\nb\tc\"d\\e"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "a\nb\tc\"d\\e", toks[0].Text)
}

func TestLexNilLiteral(t *testing.T) {
	toks := allTokens(t, `\0`)
	require.Equal(t, token.NIL, toks[0].Kind)
}

func TestLexNegativeInt(t *testing.T) {
	toks := allTokens(t, "-42")
	require.Equal(t, token.INT, toks[0].Kind)
	require.Equal(t, "-42", toks[0].Text)
}

func TestLexFloat(t *testing.T) {
	toks := allTokens(t, "3.14")
	require.Equal(t, token.FLOAT, toks[0].Kind)
	require.Equal(t, "3.14", toks[0].Text)
}

func TestLexRangeDotsNotConfusedWithFloat(t *testing.T) {
	toks := allTokens(t, "1..3")
	require.Equal(t, []token.Kind{token.INT, token.DOTDOT, token.INT, token.EOF}, kinds(toks))
	require.Equal(t, "1", toks[0].Text)
	require.Equal(t, "3", toks[2].Text)
}

func TestLexHexAndBinaryInt(t *testing.T) {
	toks := allTokens(t, "0xFF 0b1010")
	require.Equal(t, token.INT, toks[0].Kind)
	require.Equal(t, "0xFF", toks[0].Text)
	require.Equal(t, token.INT, toks[1].Kind)
	require.Equal(t, "0b1010", toks[1].Text)
}

func TestLexArrowAndAccessorPunctuation(t *testing.T) {
	toks := allTokens(t, "%xs->(1..3)")
	require.Equal(t, []token.Kind{
		token.PERCENT, token.IDENT, token.ARROW, token.LPAREN,
		token.INT, token.DOTDOT, token.INT, token.RPAREN, token.EOF,
	}, kinds(toks))
}

func TestLexIntrinsicMarker(t *testing.T) {
	toks := allTokens(t, "[std_add_int!!, 1, 2]")
	require.Equal(t, []token.Kind{
		token.LBRACKET, token.IDENT, token.BANGBANG, token.COMMA,
		token.INT, token.COMMA, token.INT, token.RBRACKET, token.EOF,
	}, kinds(toks))
}

func TestLexCommentsAreIgnored(t *testing.T) {
	toks := allTokens(t, "# a comment\n$x := 1")
	require.Equal(t, []token.Kind{token.DOLLAR, token.IDENT, token.ASSIGN, token.INT, token.EOF}, kinds(toks))
}

func TestLexKeywords(t *testing.T) {
	toks := allTokens(t, "True False")
	require.Equal(t, []token.Kind{token.TRUE, token.FALSE, token.EOF}, kinds(toks))
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	l := lexer.NewFromString(`"abc`)
	_, err := l.Next()
	require.Error(t, err)
	var lerr *lexer.LexError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, lexer.ReasonUnterminatedString, lerr.Reason)
}

func TestLexBadEscapeIsError(t *testing.T) {
	l := lexer.NewFromString(`"\q"`)
	_, err := l.Next()
	require.Error(t, err)
	var lerr *lexer.LexError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, lexer.ReasonBadEscape, lerr.Reason)
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	l := lexer.NewFromString("$x")
	first, err := l.Peek()
	require.NoError(t, err)
	require.Equal(t, token.DOLLAR, first.Kind)

	second, err := l.Peek()
	require.NoError(t, err)
	require.Equal(t, token.DOLLAR, second.Kind)

	third, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.DOLLAR, third.Kind)

	fourth, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.IDENT, fourth.Kind)
}
