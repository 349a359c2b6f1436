package lalr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parzival/lr"
	"github.com/npillmayer/parzival/lr/scanner"
)

func makeParser(t *testing.T, b *lr.GrammarBuilder) (*lr.Grammar, *Parser) {
	t.Helper()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar building failed: %v", err)
	}
	gen := lr.NewTableGenerator(g)
	if err := gen.CreateTables(); err != nil {
		t.Fatalf("table generation failed: %v", err)
	}
	return g, NewParser(g, gen.ActionTable(), gen.GotoTable())
}

func TestParseTrivial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G") // S → a | b
	b.LHS("S").T("a").End()
	b.LHS("S").T("b").End()
	g, p := makeParser(t, b)
	//
	for _, input := range [][]string{{"a"}, {"b"}} {
		accepted, err := p.Parse(scanner.NameTokenizer(g, input...))
		if err != nil {
			t.Errorf("parse of %v failed: %v", input, err)
		} else if !accepted {
			t.Errorf("expected %v to be accepted", input)
		}
	}
	for _, input := range [][]string{{}, {"a", "b"}, {"a", "a"}} {
		if accepted, _ := p.Parse(scanner.NameTokenizer(g, input...)); accepted {
			t.Errorf("expected %v to be rejected", input)
		}
	}
}

func TestParseEpsilonDerivations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("EPS") // S → A B ;  A → ;  B → | c
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").Epsilon()
	b.LHS("B").Epsilon()
	b.LHS("B").T("c").End()
	g, p := makeParser(t, b)
	//
	for _, input := range [][]string{{}, {"c"}} {
		accepted, err := p.Parse(scanner.NameTokenizer(g, input...))
		if err != nil {
			t.Errorf("parse of %v failed: %v", input, err)
		} else if !accepted {
			t.Errorf("expected %v to be accepted", input)
		}
	}
	if accepted, _ := p.Parse(scanner.NameTokenizer(g, "c", "c")); accepted {
		t.Errorf("expected cc to be rejected")
	}
}

func TestParseDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("IfThenElse")
	b.LHS("S").T("if").N("E").T("then").N("S").End()
	b.LHS("S").T("if").N("E").T("then").N("S").T("else").N("S").End()
	b.LHS("S").T("x").End()
	b.LHS("E").T("x").End()
	g, p := makeParser(t, b)
	//
	// shift-wins resolution binds the else to the inner if
	input := []string{"if", "x", "then", "if", "x", "then", "x", "else", "x"}
	accepted, err := p.Parse(scanner.NameTokenizer(g, input...))
	if err != nil {
		t.Errorf("parse failed: %v", err)
	} else if !accepted {
		t.Errorf("expected the nested if/then/else to be accepted")
	}
	if accepted, _ := p.Parse(scanner.NameTokenizer(g, "if", "x", "then")); accepted {
		t.Errorf("expected a truncated conditional to be rejected")
	}
}
