package scanner

import (
	"strings"

	"github.com/npillmayer/parzival"
	"github.com/npillmayer/parzival/lr"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// LMAdapter drives lexmachine as a scanner for a grammar. The terminal
// inventory of the grammar provides the token categories: every pattern is
// registered under a terminal name and matches produce tokens carrying that
// terminal's code.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter for a grammar. It receives
// a list of literal terminals ('[', ';', …) and a list of keyword terminals
// ("if", "for", …), all of which must be terminal names of g; init may add
// further patterns for composite terminals (identifiers, numbers, …), using
// Match and Skip.
//
// NewLMAdapter will return an error if a name is not a terminal of g, or if
// compiling the DFA failed.
func NewLMAdapter(g *lr.Grammar, init func(*lexmachine.Lexer), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		code, err := terminalCode(g, lit)
		if err != nil {
			return nil, err
		}
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), Match(lit, code))
	}
	for _, name := range keywords {
		code, err := terminalCode(g, name)
		if err != nil {
			return nil, err
		}
		adapter.Lexer.Add([]byte(strings.ToLower(name)), Match(name, code))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func terminalCode(g *lr.Grammar, name string) (int, error) {
	code, ok := g.Terminal(name)
	if !ok {
		return 0, errNotATerminal(g, name)
	}
	return code, nil
}

func errNotATerminal(g *lr.Grammar, name string) error {
	return &unknownTerminal{grammar: g.Name, name: name}
}

type unknownTerminal struct {
	grammar, name string
}

func (u *unknownTerminal) Error() string {
	return "pattern " + u.name + " is not a terminal of grammar " + u.grammar
}

// Scanner creates a scanner for a given input. The scanner will implement
// the Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() parzival.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeToken(parzival.EOF, "", parzival.Span{})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("lexmachine scanned %q as terminal %d", token.Lexeme, token.Type)
	return MakeToken(
		parzival.TokType(token.Type),
		string(token.Lexeme),
		parzival.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Match is a pre-defined action which wraps a scanned match into a token
// with a given terminal code.
func Match(name string, code int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(code, string(m.Bytes), m), nil
	}
}
