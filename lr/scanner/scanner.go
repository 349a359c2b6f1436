/*
Package scanner defines the tokenizer interface parsers of package lr/lalr
rely on to receive their input.

Tokens produced for a grammar are categorized by the grammar's terminal
codes: a scanner for grammar g emits tokens t with t.TokType() being the
code of the matched terminal, and parzival.EOF (= code 0, the $end marker)
at the end of input. Two implementations are provided: an adapter for
lexmachine, compiling the terminal inventory of a grammar into a DFA, and a
trivial tokenizer over a fixed sequence of terminal names, which is mainly
useful in tests.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/parzival"
	"github.com/npillmayer/parzival/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parzival.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parzival.scanner")
}

// Tokenizer is the scanner interface: a stream of tokens, terminated by a
// token of category parzival.EOF.
type Tokenizer interface {
	NextToken() parzival.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners.
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// Token is a very unsophisticated token type, used by all tokenizers of this
// package.
type Token struct {
	kind   parzival.TokType
	lexeme string
	Val    interface{}
	span   parzival.Span
}

// MakeToken wraps a terminal code and a lexeme into a token.
func MakeToken(typ parzival.TokType, lexeme string, span parzival.Span) Token {
	return Token{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType returns the terminal code of the token.
func (t Token) TokType() parzival.TokType {
	return t.kind
}

// Value returns the token's payload, if a scanner attached one.
func (t Token) Value() interface{} {
	return t.Val
}

// Lexeme returns the matched input text.
func (t Token) Lexeme() string {
	return t.lexeme
}

// Span returns the input positions the token covers.
func (t Token) Span() parzival.Span {
	return t.span
}

// --- A tokenizer over terminal names ---------------------------------------

// NameTokenizer creates a tokenizer yielding one token per given terminal
// name, in order, followed by the end-of-input token. Names are resolved
// against the grammar's terminal inventory; unknown names surface through
// the error handler and are skipped.
func NameTokenizer(g *lr.Grammar, names ...string) Tokenizer {
	return &nameTokenizer{g: g, names: names, Error: logError}
}

type nameTokenizer struct {
	g     *lr.Grammar
	names []string
	pos   int
	Error func(error)
}

func (nt *nameTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		nt.Error = logError
		return
	}
	nt.Error = h
}

func (nt *nameTokenizer) NextToken() parzival.Token {
	for nt.pos < len(nt.names) {
		name := nt.names[nt.pos]
		at := uint64(nt.pos)
		nt.pos++
		code, ok := nt.g.Terminal(name)
		if !ok {
			nt.Error(fmt.Errorf("input %q is not a terminal of grammar %q", name, nt.g.Name))
			continue
		}
		return MakeToken(parzival.TokType(code), name, parzival.Span{at, at + 1})
	}
	return MakeToken(parzival.EOF, "", parzival.Span{uint64(nt.pos), uint64(nt.pos)})
}
