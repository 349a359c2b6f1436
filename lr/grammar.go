package lr

import (
	"fmt"
	"strings"
)

// --- Grammar ---------------------------------------------------------------

// Symbols are identified by non-negative integer codes. Codes 0…#T-1 denote
// terminals, with EndToken = 0 reserved for the end-of-input marker $end.
// Codes #T…#symbols-1 denote non-terminals, the first one being the synthetic
// start symbol $start.
const (
	EndToken    = 0 // terminal code of $end
	endName     = "$end"
	startName   = "$start"
	epsilonName = "ε"
)

// Production is a grammar production
//
//    LHS → RHS[0] RHS[1] … RHS[n-1]
//
// with LHS a non-terminal code and RHS a possibly empty sequence of symbol
// codes. Code is the production's ordinal number within the grammar;
// production 0 always is the synthetic start production.
type Production struct {
	Code int
	LHS  int
	RHS  []int
}

// Len returns the length of the right hand side of the production.
func (p *Production) Len() int {
	return len(p.RHS)
}

// IsEpsilon returns true for productions with an empty right hand side.
func (p *Production) IsEpsilon() bool {
	return len(p.RHS) == 0
}

// Grammar is an immutable grammar definition: symbol names and codes, and
// productions grouped by their left hand side. Grammars are created with a
// GrammarBuilder.
type Grammar struct {
	Name      string
	names     []string // symbol names, indexed by symbol code
	termCount int      // terminals occupy codes 0…termCount-1
	prods     []*Production
	prodsFor  []int // non-terminal ordinal n → index of first production with LHS ordinal n
}

// NumTerminals returns the number of terminals, including $end.
func (g *Grammar) NumTerminals() int {
	return g.termCount
}

// NumSymbols returns the total number of symbols, terminals and
// non-terminals alike.
func (g *Grammar) NumSymbols() int {
	return len(g.names)
}

// NumNonterminals returns the number of non-terminals, including $start.
func (g *Grammar) NumNonterminals() int {
	return len(g.names) - g.termCount
}

// IsTerminal returns true if code denotes a terminal symbol.
func (g *Grammar) IsTerminal(code int) bool {
	return code < g.termCount
}

// NtOrdinal returns the dense 0-based ordinal of a non-terminal code
// ($start has ordinal 0).
func (g *Grammar) NtOrdinal(code int) int {
	return code - g.termCount
}

// SymbolName returns the name for a symbol code.
func (g *Grammar) SymbolName(code int) string {
	if code < 0 || code >= len(g.names) {
		panic(fmt.Sprintf("unknown symbol code %d", code))
	}
	return g.names[code]
}

// Terminal looks up the code of a terminal by name.
func (g *Grammar) Terminal(name string) (int, bool) {
	for code := 0; code < g.termCount; code++ {
		if g.names[code] == name {
			return code, true
		}
	}
	return 0, false
}

// NumProductions returns the number of productions, including the synthetic
// start production.
func (g *Grammar) NumProductions() int {
	return len(g.prods)
}

// Production returns production number n.
func (g *Grammar) Production(n int) *Production {
	return g.prods[n]
}

// ProdsFor returns all productions with the given non-terminal as their left
// hand side, in declaration order.
func (g *Grammar) ProdsFor(lhs int) []*Production {
	n := g.NtOrdinal(lhs)
	return g.prods[g.prodsFor[n]:g.prodsFor[n+1]]
}

// EachTerminal calls f for every terminal of the grammar, in code order.
func (g *Grammar) EachTerminal(f func(name string, code int)) {
	for code := 0; code < g.termCount; code++ {
		f(g.names[code], code)
	}
}

// ProductionString returns a production in human readable form,
// e.g. "S → A b".
func (g *Grammar) ProductionString(p *Production) string {
	var b strings.Builder
	b.WriteString(g.names[p.LHS])
	b.WriteString(" →")
	if p.IsEpsilon() {
		b.WriteString(" " + epsilonName)
	}
	for _, sym := range p.RHS {
		b.WriteString(" " + g.names[sym])
	}
	return b.String()
}

// Dump is a debugging helper, tracing all productions of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("Grammar %q:", g.Name)
	for _, p := range g.prods {
		tracer().Debugf("%3d: %s", p.Code, g.ProductionString(p))
	}
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is used to construct a Grammar. Clients add rules and
// finally call Grammar(), which assigns symbol codes and validates the
// result.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()  // S  ->  A a
//    b.LHS("A").T("b").End()         // A  ->  b
//    b.LHS("A").Epsilon()            // A  ->
//    g, err := b.Grammar()
//
// The left hand side of the first rule becomes the start symbol of the
// grammar.
type GrammarBuilder struct {
	name  string
	rules []*builderRule
	err   error
}

type builderRule struct {
	lhs string
	rhs []builderSym
}

type builderSym struct {
	name     string
	terminal bool
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// RuleBuilder is a builder type for a single grammar rule.
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *builderRule
}

// LHS starts a new rule with the given non-terminal on the left hand side.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	r := &builderRule{lhs: name}
	return &RuleBuilder{gb: gb, rule: r}
}

// N appends a non-terminal to the right hand side of the rule under
// construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, builderSym{name: name})
	return rb
}

// T appends a terminal to the right hand side of the rule under construction.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, builderSym{name: name, terminal: true})
	return rb
}

// End finishes a rule and hands it over to the grammar builder.
func (rb *RuleBuilder) End() {
	rb.gb.append(rb.rule)
}

// Epsilon finishes a rule with an empty right hand side.
func (rb *RuleBuilder) Epsilon() {
	rb.rule.rhs = nil
	rb.gb.append(rb.rule)
}

func (gb *GrammarBuilder) append(r *builderRule) {
	if r.lhs == "" {
		gb.fail("rule without left hand side")
		return
	}
	gb.rules = append(gb.rules, r)
}

func (gb *GrammarBuilder) fail(format string, args ...interface{}) {
	if gb.err == nil {
		gb.err = fmt.Errorf(format, args...)
	}
}

// Grammar assigns symbol codes and returns the finished grammar.
//
// Terminals receive codes 1…#T-1 in order of first appearance, code 0 is
// $end. Non-terminals follow, starting with $start at code #T. Productions
// are reordered so they are grouped by their left hand side, with the
// synthetic  $start → S $end  as production 0.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", gb.name)
	}
	termCodes := map[string]int{endName: 0}
	termNames := []string{endName}
	ntSeen := map[string]bool{}
	ntNames := []string{} // user non-terminals, order of first appearance
	seeNt := func(name string) {
		if !ntSeen[name] {
			ntSeen[name] = true
			ntNames = append(ntNames, name)
		}
	}
	for _, r := range gb.rules {
		seeNt(r.lhs)
		for _, sym := range r.rhs {
			if sym.terminal {
				if _, ok := termCodes[sym.name]; !ok {
					termCodes[sym.name] = len(termNames)
					termNames = append(termNames, sym.name)
				}
			} else {
				seeNt(sym.name)
			}
		}
	}
	for _, r := range gb.rules {
		for _, sym := range r.rhs {
			if sym.terminal && ntSeen[sym.name] {
				return nil, fmt.Errorf("symbol %q used both as terminal and non-terminal", sym.name)
			}
		}
	}
	lhsSeen := map[string]bool{}
	for _, r := range gb.rules {
		lhsSeen[r.lhs] = true
	}
	for _, name := range ntNames {
		if !lhsSeen[name] {
			return nil, fmt.Errorf("non-terminal %q has no production", name)
		}
	}
	termCount := len(termNames)
	g := &Grammar{
		Name:      gb.name,
		termCount: termCount,
		names:     append(termNames, startName),
	}
	ntCodes := map[string]int{startName: termCount}
	for _, name := range ntNames {
		ntCodes[name] = len(g.names)
		g.names = append(g.names, name)
	}
	// group productions by non-terminal code, synthetic start rule first
	start := gb.rules[0].lhs
	g.prods = append(g.prods, &Production{
		Code: 0,
		LHS:  termCount,
		RHS:  []int{ntCodes[start], EndToken},
	})
	g.prodsFor = append(g.prodsFor, 0)
	for _, name := range ntNames {
		g.prodsFor = append(g.prodsFor, len(g.prods))
		for _, r := range gb.rules {
			if r.lhs != name {
				continue
			}
			p := &Production{Code: len(g.prods), LHS: ntCodes[name]}
			for _, sym := range r.rhs {
				if sym.terminal {
					p.RHS = append(p.RHS, termCodes[sym.name])
				} else {
					p.RHS = append(p.RHS, ntCodes[sym.name])
				}
			}
			g.prods = append(g.prods, p)
		}
	}
	g.prodsFor = append(g.prodsFor, len(g.prods))
	return g, nil
}
