package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func mustGrammar(t *testing.T, b *GrammarBuilder) *Grammar {
	t.Helper()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar building failed: %v", err)
	}
	return g
}

func TestGrammarBuilderCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G2")
	b.LHS("S").N("A").T("a").End()
	b.LHS("S").T("b").N("A").T("c").End()
	b.LHS("S").T("d").T("x").End()
	b.LHS("A").T("d").End()
	g := mustGrammar(t, b)
	//
	if g.NumTerminals() != 6 { // $end a b c d x
		t.Errorf("expected 6 terminals, got %d", g.NumTerminals())
	}
	if g.NumNonterminals() != 3 { // $start S A
		t.Errorf("expected 3 non-terminals, got %d", g.NumNonterminals())
	}
	if name := g.SymbolName(0); name != "$end" {
		t.Errorf("expected code 0 to be $end, is %q", name)
	}
	if name := g.SymbolName(g.NumTerminals()); name != "$start" {
		t.Errorf("expected code %d to be $start, is %q", g.NumTerminals(), name)
	}
	for i, name := range []string{"a", "b", "c", "d", "x"} {
		if code, ok := g.Terminal(name); !ok || code != i+1 {
			t.Errorf("expected terminal %q to have code %d, got %d", name, i+1, code)
		}
	}
	p0 := g.Production(0)
	if p0.LHS != g.NumTerminals() || p0.Len() != 2 || p0.RHS[1] != EndToken {
		t.Errorf("production 0 is not $start → S $end: %s", g.ProductionString(p0))
	}
	if g.NumProductions() != 5 {
		t.Errorf("expected 5 productions, got %d", g.NumProductions())
	}
}

func TestGrammarProdsFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").Epsilon()
	b.LHS("B").Epsilon()
	b.LHS("B").T("c").End()
	g := mustGrammar(t, b)
	//
	codeB, _ := terminalOrNt(g, "B")
	prods := g.ProdsFor(codeB)
	if len(prods) != 2 {
		t.Fatalf("expected 2 productions for B, got %d", len(prods))
	}
	for _, p := range prods {
		if p.LHS != codeB {
			t.Errorf("production %s grouped under wrong LHS", g.ProductionString(p))
		}
	}
	if !prods[0].IsEpsilon() {
		t.Errorf("expected B's first production to be the epsilon rule")
	}
}

// terminalOrNt finds a symbol code by name, terminals and non-terminals alike.
func terminalOrNt(g *Grammar, name string) (int, bool) {
	for code := 0; code < g.NumSymbols(); code++ {
		if g.SymbolName(code) == name {
			return code, true
		}
	}
	return 0, false
}

func TestGrammarBuilderRejectsMixedUse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("broken")
	b.LHS("S").T("A").End()
	b.LHS("A").T("a").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected mixed terminal/non-terminal use of \"A\" to be rejected")
	}
}

func TestGrammarBuilderRejectsUndefinedNonterminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("broken")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected undefined non-terminal \"A\" to be rejected")
	}
}
