package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// A grammar with a shift/reduce-bearing state which SLR(1) follow sets
// settle:  S → A a | b A c | d x ;  A → d .
// The state { S → d·x, A → d· } shifts on x and reduces on FOLLOW(A) = {a c}.
func slrGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("SLR")
	b.LHS("S").N("A").T("a").End()
	b.LHS("S").T("b").N("A").T("c").End()
	b.LHS("S").T("d").T("x").End()
	b.LHS("A").T("d").End()
	return mustGrammar(t, b)
}

// The classic LALR-but-not-SLR grammar:  S → A a | b A c | d c | b d a ;
// A → d .  FOLLOW(A) = {a c} overlaps the shift terminals of both states
// holding  A → d· , but the exact LALR lookaheads ({a} resp. {c}) do not.
func lalrGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("LALR")
	b.LHS("S").N("A").T("a").End()
	b.LHS("S").T("b").N("A").T("c").End()
	b.LHS("S").T("d").T("c").End()
	b.LHS("S").T("b").T("d").T("a").End()
	b.LHS("A").T("d").End()
	return mustGrammar(t, b)
}

func stagesOf(gen *TableGenerator) map[ResolutionStage]int {
	count := map[ResolutionStage]int{}
	for _, stage := range gen.ResolutionProfile() {
		count[stage]++
	}
	return count
}

func TestLookaheadSLRResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	g := slrGrammar(t)
	gen := NewTableGenerator(g)
	if err := gen.CreateTables(); err != nil {
		t.Fatalf("table generation failed: %v", err)
	}
	if len(gen.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", gen.Diagnostics())
	}
	stages := stagesOf(gen)
	if stages[StageSLR1] != 1 {
		t.Errorf("expected exactly 1 state resolved at stage SLR1, got %d", stages[StageSLR1])
	}
	if stages[StageLALR1] != 0 || stages[StageUnresolved] != 0 {
		t.Errorf("unexpected resolution stages: %v", stages)
	}
	// the conflict state reduces A → d on a and c, and shifts on x
	a, _ := g.Terminal("a")
	c, _ := g.Terminal("c")
	x, _ := g.Terminal("x")
	state := conflictState(t, gen)
	action := gen.ActionTable()
	prodA := prodFor(t, g, "A")
	for _, term := range []int{a, c} {
		if act := action.At(state, term); !IsReduce(act) || ReduceProd(act) != prodA {
			t.Errorf("expected reduce(%d) at (%d,%s), got %s",
				prodA, state, g.SymbolName(term), ActionString(act))
		}
	}
	if act := action.At(state, x); !IsShift(act) {
		t.Errorf("expected shift at (%d,x), got %s", state, ActionString(act))
	}
}

func TestLookaheadLALRResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	g := lalrGrammar(t)
	gen := NewTableGenerator(g)
	if err := gen.CreateTables(); err != nil {
		t.Fatalf("table generation failed: %v", err)
	}
	if len(gen.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", gen.Diagnostics())
	}
	stages := stagesOf(gen)
	if stages[StageLALR1] != 2 {
		t.Errorf("expected 2 states resolved at stage LALR1, got %d", stages[StageLALR1])
	}
	if stages[StageUnresolved] != 0 {
		t.Errorf("expected no unresolved states, got %d", stages[StageUnresolved])
	}
	// the exact lookaheads: A → d· has {a} after d, {c} after b d
	a, _ := g.Terminal("a")
	c, _ := g.Terminal("c")
	prodA := prodFor(t, g, "A")
	action := gen.ActionTable()
	cfa := gen.CFA()
	for n := 0; n < cfa.StateCount(); n++ {
		s := cfa.State(n)
		if !s.IsConflicting() {
			continue
		}
		redA, redC := IsReduce(action.At(n, a)) && ReduceProd(action.At(n, a)) == prodA,
			IsReduce(action.At(n, c)) && ReduceProd(action.At(n, c)) == prodA
		if redA == redC {
			t.Errorf("state %d should reduce A → d on exactly one of a/c", n)
		}
	}
}

func TestLookaheadForcedLALRKeepsTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	plain := NewTableGenerator(lr0Grammar(t))
	if err := plain.CreateTables(); err != nil {
		t.Fatalf("table generation failed: %v", err)
	}
	forced := NewTableGenerator(lr0Grammar(t), ForceLALR())
	if err := forced.CreateTables(); err != nil {
		t.Fatalf("forced table generation failed: %v", err)
	}
	assertTablesEqual(t, plain, forced)
	// the forced run must have exercised the LALR machinery
	if forced.Follow(0) == nil {
		t.Errorf("expected Follow-sets to be computed under ForceLALR")
	}
	if plain.Read(0) != nil {
		t.Errorf("LR(0)-clean grammar must not enter the lookahead stage")
	}
}

func TestLookaheadForcedLALROnConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	plain := NewTableGenerator(slrGrammar(t))
	if err := plain.CreateTables(); err != nil {
		t.Fatalf("table generation failed: %v", err)
	}
	forced := NewTableGenerator(slrGrammar(t), ForceLALR())
	if err := forced.CreateTables(); err != nil {
		t.Fatalf("forced table generation failed: %v", err)
	}
	// LALR(1) narrows the lookahead of A → d· in the conflict state from
	// FOLLOW(A) = {a c} to {a}: the tables differ only at (state, c), where
	// the SLR run reduces and the forced run fails
	state := conflictState(t, forced)
	c, _ := forced.Grammar().Terminal("c")
	pa, fa := plain.ActionTable(), forced.ActionTable()
	for i := 0; i < pa.Rows(); i++ {
		for j := 0; j < pa.Cols(); j++ {
			if i == state && j == c {
				if !IsReduce(pa.At(i, j)) || fa.At(i, j) != NoAction {
					t.Errorf("expected (reduce, fail) at (%d,c) for SLR vs forced LALR, got (%s, %s)",
						i, ActionString(pa.At(i, j)), ActionString(fa.At(i, j)))
				}
			} else if pa.At(i, j) != fa.At(i, j) {
				t.Errorf("ACTION tables differ at (%d,%d): %s vs %s",
					i, j, ActionString(pa.At(i, j)), ActionString(fa.At(i, j)))
			}
		}
	}
	pg, fg := plain.GotoTable(), forced.GotoTable()
	for i := 0; i < pg.Rows(); i++ {
		for j := 0; j < pg.Cols(); j++ {
			if pg.At(i, j) != fg.At(i, j) {
				t.Errorf("GOTO tables differ at (%d,%d): %d vs %d", i, j, pg.At(i, j), fg.At(i, j))
			}
		}
	}
	stages := stagesOf(forced)
	if stages[StageSLR1] != 0 {
		t.Errorf("ForceLALR must skip the SLR pass, but %d states resolved there",
			stages[StageSLR1])
	}
	if stages[StageLALR1] != 1 {
		t.Errorf("expected the conflict state to resolve at stage LALR1, got %v", stages)
	}
}

// --- Test helpers ----------------------------------------------------------

// conflictState returns the number of the single conflict-bearing state of a
// generator's automaton.
func conflictState(t *testing.T, gen *TableGenerator) int {
	t.Helper()
	cfa := gen.CFA()
	state := -1
	for n := 0; n < cfa.StateCount(); n++ {
		if cfa.State(n).IsConflicting() {
			if state >= 0 {
				t.Fatalf("expected a single conflict state, found %d and %d", state, n)
			}
			state = n
		}
	}
	if state < 0 {
		t.Fatalf("expected a conflict state, found none")
	}
	return state
}

// prodFor returns the code of the single production of a non-terminal.
func prodFor(t *testing.T, g *Grammar, name string) int {
	t.Helper()
	code, ok := terminalOrNt(g, name)
	if !ok {
		t.Fatalf("no symbol %q in grammar", name)
	}
	prods := g.ProdsFor(code)
	if len(prods) != 1 {
		t.Fatalf("expected a single production for %s, got %d", name, len(prods))
	}
	return prods[0].Code
}

func assertTablesEqual(t *testing.T, gen1, gen2 *TableGenerator) {
	t.Helper()
	a1, a2 := gen1.ActionTable(), gen2.ActionTable()
	g1, g2 := gen1.GotoTable(), gen2.GotoTable()
	if a1.Rows() != a2.Rows() || a1.Cols() != a2.Cols() {
		t.Fatalf("ACTION tables differ in size: %dx%d vs %dx%d",
			a1.Rows(), a1.Cols(), a2.Rows(), a2.Cols())
	}
	for i := 0; i < a1.Rows(); i++ {
		for j := 0; j < a1.Cols(); j++ {
			if a1.At(i, j) != a2.At(i, j) {
				t.Errorf("ACTION tables differ at (%d,%d): %s vs %s",
					i, j, ActionString(a1.At(i, j)), ActionString(a2.At(i, j)))
			}
		}
	}
	for i := 0; i < g1.Rows(); i++ {
		for j := 0; j < g1.Cols(); j++ {
			if g1.At(i, j) != g2.At(i, j) {
				t.Errorf("GOTO tables differ at (%d,%d): %d vs %d",
					i, j, g1.At(i, j), g2.At(i, j))
			}
		}
	}
}
