package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The epsilon grammar  S → A B ;  A → ;  B → | c .
func epsilonGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("EPS")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").Epsilon()
	b.LHS("B").Epsilon()
	b.LHS("B").T("c").End()
	return mustGrammar(t, b)
}

func TestNullablePropagation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	g := epsilonGrammar(t)
	nullable := computeNullable(g)
	for _, name := range []string{"S", "A", "B"} {
		code, _ := terminalOrNt(g, name)
		if !nullable.Contains(g.NtOrdinal(code)) {
			t.Errorf("expected %s to be nullable, isn't", name)
		}
	}
	if nullable.Contains(g.NtOrdinal(g.NumTerminals())) {
		t.Errorf("$start must not be nullable (its RHS contains $end)")
	}
}

func TestNullableLeastFixedPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	// S is nullable through A only; B derives terminal strings.
	b := NewGrammarBuilder("G")
	b.LHS("S").N("B").End()
	b.LHS("S").N("A").End()
	b.LHS("A").Epsilon()
	b.LHS("B").T("b").End()
	g := mustGrammar(t, b)
	nullable := computeNullable(g)
	// a non-terminal is nullable iff some production of it has an
	// all-nullable RHS
	for code := g.NumTerminals(); code < g.NumSymbols(); code++ {
		expect := false
		for _, p := range g.ProdsFor(code) {
			all := true
			for _, sym := range p.RHS {
				if g.IsTerminal(sym) || !nullable.Contains(g.NtOrdinal(sym)) {
					all = false
					break
				}
			}
			if all {
				expect = true
			}
		}
		if got := nullable.Contains(g.NtOrdinal(code)); got != expect {
			t.Errorf("nullable(%s) = %v, fixed-point check says %v",
				g.SymbolName(code), got, expect)
		}
	}
	codeB, _ := terminalOrNt(g, "B")
	if nullable.Contains(g.NtOrdinal(codeB)) {
		t.Errorf("B must not be nullable")
	}
}
