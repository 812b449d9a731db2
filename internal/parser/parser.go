// Package parser turns VTC source text into an ordered list of namespaces,
// each a list of variable bindings whose right-hand side is an unevaluated
// value.Value. The parser never resolves references or evaluates
// intrinsics (spec §4.1).
package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/vtc-lang/vtc/internal/lexer"
	"github.com/vtc-lang/vtc/internal/token"
	"github.com/vtc-lang/vtc/internal/value"
)

// Binding is a parsed '$name := expression' pair.
type Binding struct {
	Name string
	Expr value.Value
}

// Namespace is a parsed '@name: {binding}' block.
type Namespace struct {
	Name     string
	Bindings []Binding
}

// File is the parsed result of an entire source text: an ordered sequence
// of namespaces.
type File struct {
	Namespaces []Namespace
}

// Option configures a Parser.
type Option func(*Parser)

// WithMultiError enables recovery to statement boundaries so multiple
// errors can be collected and returned together as a *MultiError, instead
// of the default fail-fast-on-first-error behavior.
func WithMultiError() Option {
	return func(p *Parser) { p.recover = true }
}

// Parser is a recursive-descent parser over a token stream.
type Parser struct {
	lex     *lexer.Lexer
	buf     []token.Token
	recover bool
	errs    []*ParseError
}

// New creates a Parser reading from r.
func New(r io.Reader, opts ...Option) *Parser {
	p := &Parser{lex: lexer.New(r)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses VTC source held in a string.
func ParseString(src string, opts ...Option) (File, error) {
	return New(strings.NewReader(src), opts...).Parse()
}

// ParseReader parses VTC source read from r.
func ParseReader(r io.Reader, opts ...Option) (File, error) {
	return New(r, opts...).Parse()
}

// Parse consumes the entire token stream and returns the parsed File. In
// fail-fast mode (the default) it returns the first *ParseError
// encountered; in multi-error mode it returns a *MultiError holding every
// error found while resynchronizing to the next '@' namespace header.
func (p *Parser) Parse() (File, error) {
	var f File
	for {
		t, err := p.peek()
		if err != nil {
			return File{}, p.fail(err)
		}
		if t.Kind == token.EOF {
			break
		}
		if t.Kind != token.AT {
			perr := p.errorAt(t, UnexpectedToken, "expected '@' to start a namespace")
			if !p.recordOrFail(perr, &f) {
				return File{}, perr
			}
			continue
		}
		ns, err := p.parseNamespace()
		if err != nil {
			if perr, ok := err.(*ParseError); ok && p.recover {
				p.errs = append(p.errs, perr)
				p.resyncToNamespace()
				continue
			}
			return File{}, err
		}
		mergeNamespace(&f, ns)
	}
	if p.recover && len(p.errs) > 0 {
		return File{}, &MultiError{Errors: p.errs}
	}
	return f, nil
}

// recordOrFail records perr when in recovery mode (returning true so the
// caller should continue), or returns false so the caller propagates it.
func (p *Parser) recordOrFail(perr *ParseError, f *File) bool {
	if !p.recover {
		return false
	}
	p.errs = append(p.errs, perr)
	p.resyncToNamespace()
	return true
}

// resyncToNamespace discards tokens until the next '@' or EOF.
func (p *Parser) resyncToNamespace() {
	for {
		t, err := p.peek()
		if err != nil || t.Kind == token.EOF || t.Kind == token.AT {
			return
		}
		p.next()
	}
}

func mergeNamespace(f *File, ns Namespace) {
	for i := range f.Namespaces {
		if f.Namespaces[i].Name == ns.Name {
			f.Namespaces[i].Bindings = mergeBindings(f.Namespaces[i].Bindings, ns.Bindings)
			return
		}
	}
	f.Namespaces = append(f.Namespaces, ns)
}

func mergeBindings(existing, incoming []Binding) []Binding {
	index := make(map[string]int, len(existing))
	for i, b := range existing {
		index[b.Name] = i
	}
	for _, b := range incoming {
		if i, ok := index[b.Name]; ok {
			existing[i] = b
			continue
		}
		index[b.Name] = len(existing)
		existing = append(existing, b)
	}
	return existing
}

func (p *Parser) parseNamespace() (Namespace, error) {
	if _, err := p.expect(token.AT); err != nil {
		return Namespace{}, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return Namespace{}, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return Namespace{}, err
	}
	ns := Namespace{Name: name.Text}
	for {
		t, err := p.peek()
		if err != nil {
			return Namespace{}, p.fail(err)
		}
		if t.Kind != token.DOLLAR {
			break
		}
		b, err := p.parseBinding()
		if err != nil {
			return Namespace{}, err
		}
		ns.Bindings = mergeBindings(ns.Bindings, []Binding{b})
	}
	return ns, nil
}

func (p *Parser) parseBinding() (Binding, error) {
	if _, err := p.expect(token.DOLLAR); err != nil {
		return Binding{}, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return Binding{}, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return Binding{}, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return Binding{}, err
	}
	return Binding{Name: name.Text, Expr: expr}, nil
}

func (p *Parser) parseExpression() (value.Value, error) {
	t, err := p.peek()
	if err != nil {
		return value.Value{}, p.fail(err)
	}
	switch t.Kind {
	case token.STRING:
		p.next()
		return value.String(t.Text), nil
	case token.INT:
		p.next()
		return p.parseIntLiteral(t)
	case token.FLOAT:
		p.next()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return value.Value{}, p.errorAt(t, BadNumber, "bad float literal: "+t.Text)
		}
		return value.Float(f), nil
	case token.TRUE:
		p.next()
		return value.Bool(true), nil
	case token.FALSE:
		p.next()
		return value.Bool(false), nil
	case token.NIL:
		p.next()
		return value.Nil(), nil
	case token.PERCENT, token.AMP:
		return p.parseReference()
	case token.LBRACKET:
		return p.parseBracketed()
	}
	return value.Value{}, p.errorAt(t, UnexpectedToken, "expected an expression")
}

func (p *Parser) parseIntLiteral(t token.Token) (value.Value, error) {
	text := t.Text
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	var (
		n   int64
		err error
	)
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		n, err = strconv.ParseInt(text[2:], 16, 64)
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		n, err = strconv.ParseInt(text[2:], 2, 64)
	default:
		n, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		return value.Value{}, p.errorAt(t, BadNumber, "bad integer literal: "+t.Text)
	}
	if neg {
		n = -n
	}
	return value.Int(n), nil
}

// parseBracketed disambiguates an intrinsic call from a list literal: both
// start with '[', but an intrinsic call's first token is an identifier
// immediately followed by '!!'.
func (p *Parser) parseBracketed() (value.Value, error) {
	open, err := p.expect(token.LBRACKET)
	if err != nil {
		return value.Value{}, err
	}

	first, err := p.peek()
	if err != nil {
		return value.Value{}, p.fail(err)
	}
	if first.Kind == token.IDENT {
		second, err := p.peek2()
		if err != nil {
			return value.Value{}, p.fail(err)
		}
		if second.Kind == token.BANGBANG {
			return p.parseIntrinsicCall(open)
		}
	}
	return p.parseListLiteral(open)
}

func (p *Parser) parseIntrinsicCall(open token.Token) (value.Value, error) {
	name, err := p.expect(token.IDENT)
	if err != nil {
		return value.Value{}, err
	}
	if _, err := p.expect(token.BANGBANG); err != nil {
		return value.Value{}, err
	}
	var args []value.Value
	for {
		t, err := p.peek()
		if err != nil {
			return value.Value{}, p.fail(err)
		}
		if t.Kind == token.RBRACKET {
			p.next()
			break
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return value.Value{}, err
		}
		// Allow a trailing comma before ']'.
		t, err = p.peek()
		if err != nil {
			return value.Value{}, p.fail(err)
		}
		if t.Kind == token.RBRACKET {
			p.next()
			break
		}
		arg, err := p.parseExpression()
		if err != nil {
			return value.Value{}, err
		}
		args = append(args, arg)
	}
	return value.IntrinsicCall(name.Text, args), nil
}

func (p *Parser) parseListLiteral(open token.Token) (value.Value, error) {
	var elems []value.Value
	t, err := p.peek()
	if err != nil {
		return value.Value{}, p.fail(err)
	}
	if t.Kind == token.RBRACKET {
		p.next()
		return value.List(nil), nil
	}
	for {
		elem, err := p.parseExpression()
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, elem)

		t, err := p.peek()
		if err != nil {
			return value.Value{}, p.fail(err)
		}
		if t.Kind == token.COMMA {
			p.next()
			t2, err := p.peek()
			if err != nil {
				return value.Value{}, p.fail(err)
			}
			if t2.Kind == token.RBRACKET {
				p.next()
				break
			}
			continue
		}
		if t.Kind == token.RBRACKET {
			p.next()
			break
		}
		return value.Value{}, p.errorAt(t, UnexpectedToken, "expected ',' or ']' in list literal")
	}
	return value.List(elems), nil
}

func (p *Parser) parseReference() (value.Value, error) {
	scopeTok, err := p.next()
	if err != nil {
		return value.Value{}, p.fail(err)
	}
	scope := value.Local
	if scopeTok.Kind == token.AMP {
		scope = value.External
	}

	first, err := p.expect(token.IDENT)
	if err != nil {
		return value.Value{}, err
	}

	ns := ""
	varName := first.Text
	t, err := p.peek()
	if err != nil {
		return value.Value{}, p.fail(err)
	}
	if t.Kind == token.DOT {
		p.next()
		second, err := p.expect(token.IDENT)
		if err != nil {
			return value.Value{}, err
		}
		ns = first.Text
		varName = second.Text
	}
	if scope == value.External && ns == "" {
		return value.Value{}, p.errorAt(scopeTok, UnexpectedToken, "external reference '&' requires namespace.variable")
	}

	var accessors []value.Accessor
	for {
		t, err := p.peek()
		if err != nil {
			return value.Value{}, p.fail(err)
		}
		if t.Kind != token.ARROW {
			break
		}
		p.next()
		acc, err := p.parseAccessor()
		if err != nil {
			return value.Value{}, err
		}
		accessors = append(accessors, acc)
	}

	return value.Reference(value.ReferenceSpec{
		Scope:     scope,
		Namespace: ns,
		Variable:  varName,
		Accessors: accessors,
	}), nil
}

func (p *Parser) parseAccessor() (value.Accessor, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return value.Accessor{}, err
	}

	t, err := p.peek()
	if err != nil {
		return value.Accessor{}, p.fail(err)
	}

	if t.Kind == token.DOTDOT {
		p.next()
		end, hasEnd, err := p.maybeParseSignedInt()
		if err != nil {
			return value.Accessor{}, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return value.Accessor{}, err
		}
		if hasEnd {
			return value.RangeAccessor(nil, &end), nil
		}
		return value.RangeAccessor(nil, nil), nil
	}

	if t.Kind != token.INT {
		return value.Accessor{}, p.errorAt(t, UnexpectedToken, "expected integer in accessor")
	}
	n, err := p.parseSignedInt()
	if err != nil {
		return value.Accessor{}, err
	}

	t, err = p.peek()
	if err != nil {
		return value.Accessor{}, p.fail(err)
	}
	if t.Kind == token.DOTDOT {
		p.next()
		end, hasEnd, err := p.maybeParseSignedInt()
		if err != nil {
			return value.Accessor{}, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return value.Accessor{}, err
		}
		if hasEnd {
			return value.RangeAccessor(&n, &end), nil
		}
		return value.RangeAccessor(&n, nil), nil
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return value.Accessor{}, err
	}
	return value.Index(n), nil
}

// maybeParseSignedInt parses an optional integer (used for the open end of
// a '..' range) and reports whether one was present.
func (p *Parser) maybeParseSignedInt() (int64, bool, error) {
	t, err := p.peek()
	if err != nil {
		return 0, false, p.fail(err)
	}
	if t.Kind != token.INT {
		return 0, false, nil
	}
	n, err := p.parseSignedInt()
	return n, true, err
}

func (p *Parser) parseSignedInt() (int64, error) {
	t, err := p.expect(token.INT)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return 0, p.errorAt(t, BadNumber, "bad integer: "+t.Text)
	}
	return n, nil
}

// --- token-stream plumbing ---

func (p *Parser) fill(n int) error {
	for len(p.buf) <= n {
		t, err := p.lex.Next()
		if err != nil {
			return err
		}
		p.buf = append(p.buf, t)
	}
	return nil
}

func (p *Parser) peek() (token.Token, error) {
	if err := p.fill(0); err != nil {
		return token.Token{}, err
	}
	return p.buf[0], nil
}

func (p *Parser) peek2() (token.Token, error) {
	if err := p.fill(1); err != nil {
		return token.Token{}, err
	}
	return p.buf[1], nil
}

func (p *Parser) next() (token.Token, error) {
	if err := p.fill(0); err != nil {
		return token.Token{}, err
	}
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t, nil
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	t, err := p.next()
	if err != nil {
		return t, p.fail(err)
	}
	if t.Kind != k {
		if t.Kind == token.EOF {
			return t, p.errorAt(t, UnexpectedEof, "expected "+k.String()+", got EOF")
		}
		return t, p.errorAt(t, UnexpectedToken, "expected "+k.String()+", got "+t.Kind.String())
	}
	return t, nil
}

func (p *Parser) errorAt(t token.Token, kind ErrorKind, msg string) *ParseError {
	return &ParseError{Line: t.Line, Col: t.Col, Kind: kind, Msg: msg}
}

// fail converts a lexer error (or io.EOF) into a *ParseError.
func (p *Parser) fail(err error) *ParseError {
	if err == io.EOF {
		return &ParseError{Kind: UnexpectedEof, Msg: "unexpected end of file"}
	}
	if lerr, ok := err.(*lexer.LexError); ok {
		var kind ErrorKind
		switch lerr.Reason {
		case lexer.ReasonUnterminatedString:
			kind = UnterminatedString
		case lexer.ReasonBadEscape:
			kind = BadEscape
		case lexer.ReasonBadNumber:
			kind = BadNumber
		default:
			kind = UnexpectedToken
		}
		return &ParseError{Line: lerr.Line, Col: lerr.Col, Kind: kind, Msg: lerr.Msg}
	}
	return &ParseError{Kind: UnexpectedToken, Msg: err.Error()}
}
