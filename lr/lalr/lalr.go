/*
Package lalr provides a table-driven LALR(1) parser. Clients have to use the
tools of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("id").End()  // Var  --> Sign id
	b.LHS("Sign").T("+").End()            // Sign --> +
	b.LHS("Sign").T("-").End()            // Sign --> -
	b.LHS("Sign").Epsilon()               // Sign -->
	g, err := b.Grammar()

This grammar is subjected to table generation.

	gen := lr.NewTableGenerator(g)
	if err := gen.CreateTables(); err != nil { ... }  // not LALR(1)

Finally parse some input:

	p := lalr.NewParser(g, gen.ActionTable(), gen.GotoTable())
	accepted, err := p.Parse(scanner.NameTokenizer(g, "+", "id"))

The parser recognizes the input; it does not build a parse tree and performs
no error recovery.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import (
	"fmt"

	"github.com/npillmayer/parzival"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parzival/lr"
	"github.com/npillmayer/parzival/lr/scanner"
)

// tracer traces with key 'parzival.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parzival.lr")
}

// Parser is a LALR(1)-parser type. Create and initialize one with
// lalr.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	stack   []stackitem // parser stack
	actionT *lr.Table   // ACTION table
	gotoT   *lr.Table   // GOTO table
}

// We store triples of state number, symbol code and input span on the parse
// stack.
type stackitem struct {
	state int           // number of a CFA state
	sym   int           // code of a grammar symbol (terminal or non-terminal)
	span  parzival.Span // input span over which this symbol reaches
}

// NewParser creates a LALR(1) parser for a grammar and its emitted tables.
func NewParser(g *lr.Grammar, actionTable, gotoTable *lr.Table) *Parser {
	return &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 512),
		actionT: actionTable,
		gotoT:   gotoTable,
	}
}

// Parse starts a new parse, with the scanner tokenizing the input. The
// parser must have been initialized.
//
// The parser returns true if the input string has been accepted.
func (p *Parser) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.actionT == nil || p.gotoT == nil {
		tracer().Errorf("LALR(1)-parser not initialized")
		return false, fmt.Errorf("LALR(1)-parser not initialized")
	}
	p.stack = p.stack[:0]
	p.stack = append(p.stack, stackitem{state: 0}) // start state
	token := scan.NextToken()
	for {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), token.TokType())
		tos := p.stack[len(p.stack)-1]
		action := p.actionT.At(tos.state, int(token.TokType()))
		tracer().Debugf("action(%d,%d)=%s", tos.state, token.TokType(), lr.ActionString(action))
		if action == lr.NoAction {
			return false, fmt.Errorf("syntax error at %q %v", token.Lexeme(), token.Span())
		}
		if lr.IsShift(action) {
			p.stack = append(p.stack, stackitem{
				state: lr.ShiftDest(action),
				sym:   int(token.TokType()),
				span:  token.Span(),
			})
			token = scan.NextToken()
			continue
		}
		// reduce action
		prod := p.G.Production(lr.ReduceProd(action))
		if prod.Code == 0 { // start production reduced: accept
			tracer().Debugf("accepting input")
			return true, nil
		}
		p.reduce(prod, token)
	}
}

// reduce performs a reduce action for a production
//
//    LHS → X1 … Xn   (with X being terminals or non-terminals)
//
// Symbols X1 … Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) … S1(X1, span_1)  …
//
// which are popped, after which the GOTO table determines the successor
// state pushed for LHS.
func (p *Parser) reduce(prod *lr.Production, lookahead parzival.Token) {
	tracer().Infof("reduce %s", p.G.ProductionString(prod))
	var handlespan parzival.Span
	for i := prod.Len() - 1; i >= 0; i-- {
		tos := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
		if tos.sym != prod.RHS[i] {
			tracer().Errorf("expected %s on top of stack, got %s",
				p.G.SymbolName(prod.RHS[i]), p.G.SymbolName(tos.sym))
		}
		if handlespan.IsNull() {
			handlespan = tos.span
		} else {
			handlespan = handlespan.Extend(tos.span)
		}
	}
	if handlespan.IsNull() { // resulted from an epsilon production
		pos := lookahead.Span().From()
		if pos > 0 {
			handlespan = parzival.Span{pos - 1, pos - 1} // epsilon was just before lookahead
		}
	}
	tos := p.stack[len(p.stack)-1]
	next := p.gotoT.At(tos.state, p.G.NtOrdinal(prod.LHS))
	tracer().Debugf("reduced to next state = %d", next)
	p.stack = append(p.stack, stackitem{
		state: int(next),
		sym:   prod.LHS,
		span:  handlespan,
	})
}
