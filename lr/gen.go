package lr

import (
	"fmt"

	"github.com/npillmayer/parzival/lr/bitset"
	"github.com/npillmayer/parzival/lr/sparse"
)

// === Diagnostics ===========================================================

// Severity of a diagnostic.
type Severity int8

// Diagnostic severities.
const (
	Warning Severity = iota
	Error
)

func (sev Severity) String() string {
	if sev == Warning {
		return "warning"
	}
	return "error"
}

// ConflictKind classifies grammar conflicts.
type ConflictKind int8

// Conflict kinds. Shift/reduce conflicts are resolved in favour of shift and
// reported as warnings; reduce/reduce conflicts are fatal.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Diagnostic describes one grammar conflict, located at a state of the
// characteristic automaton.
type Diagnostic struct {
	Severity Severity
	Kind     ConflictKind
	State    int    // state number where the conflict occurs
	Terminal int    // conflicting terminal code, -1 if spanning several
	Message  string
	Items    []Item // the final items involved
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// ResolutionStage tells at which stage the conflicts of a state were
// resolved.
type ResolutionStage int8

// Resolution stages per state: LR(0)-clean states never needed lookahead;
// others were settled by SLR(1) or LALR(1) lookaheads, or not at all.
const (
	StageLR0 ResolutionStage = iota
	StageSLR1
	StageLALR1
	StageUnresolved
)

func (rs ResolutionStage) String() string {
	switch rs {
	case StageLR0:
		return "LR0"
	case StageSLR1:
		return "SLR1"
	case StageLALR1:
		return "LALR1"
	}
	return "Unresolved"
}

// === Table generator =======================================================

// TableGenerator is a generator object to construct LALR(1) parser tables.
// Clients create a Grammar g, then a table generator for it, and call
// CreateTables(), which constructs the characteristic automaton, computes
// lookaheads and emits the ACTION- and GOTO-tables.
//
// A generator is good for one grammar and one run; it keeps all intermediate
// results for inspection. Generators are not safe for concurrent use;
// process grammars in parallel with separate generator instances.
type TableGenerator struct {
	g            *Grammar
	cfa          *Automaton
	engine       *lookaheadEngine
	nullable     *bitset.Set
	actiontable  *Table
	gototable    *Table
	shadowed     *sparse.IntMatrix
	diags        []Diagnostic
	profile      []ResolutionStage
	forceLALR    bool
	HasConflicts bool // were shift/reduce conflicts resolved by the shift-wins policy?
}

// Option configures a TableGenerator.
type Option func(*TableGenerator)

// ForceLALR makes the generator skip the SLR(1) pass entirely and compute
// LALR(1) lookaheads for every conflict-bearing state. Slower, but the
// lookahead sets are exact, which improves conflict diagnostics.
func ForceLALR() Option {
	return func(gen *TableGenerator) {
		gen.forceLALR = true
	}
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator(g *Grammar, opts ...Option) *TableGenerator {
	gen := &TableGenerator{g: g}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// CreateTables runs the processing pipeline: automaton construction,
// conflict classification, nullability, lookahead computation and table
// emission.
//
// Shift/reduce conflicts are resolved in favour of shift and reported as
// warnings in Diagnostics(). A reduce/reduce conflict is fatal: CreateTables
// returns an error, Diagnostics() holds the offending states, and no tables
// are emitted.
func (gen *TableGenerator) CreateTables() error {
	g := gen.g
	gen.cfa = buildAutomaton(g)
	conflicts := gen.cfa.classifyStates()
	gen.nullable = computeNullable(g)
	gen.profile = make([]ResolutionStage, gen.cfa.StateCount())
	for _, s := range gen.cfa.states {
		if s.conflict {
			gen.profile[s.ID] = StageUnresolved
		}
	}
	gen.engine = newLookaheadEngine(g, gen.cfa, gen.nullable)
	var unresolved []*State
	if conflicts > 0 || gen.forceLALR {
		unresolved = gen.engine.run(gen.forceLALR, gen.profile)
	}
	warnings, errors := gen.classifyUnresolved(unresolved)
	if len(errors) > 0 {
		gen.diags = errors
		return fmt.Errorf("grammar %q is not LALR(1): %d reduce/reduce conflict(s)",
			g.Name, len(errors))
	}
	gen.diags = warnings
	gen.HasConflicts = len(warnings) > 0
	gen.actiontable, gen.gototable, gen.shadowed = emitTables(gen.cfa, gen.engine)
	return nil
}

// classifyUnresolved inspects every state the lookahead stages could not
// settle. Overlapping reduce lookaheads are fatal; lookaheads overlapping
// the state's shift terminals produce one warning per (state, terminal)
// pair.
func (gen *TableGenerator) classifyUnresolved(unresolved []*State) (warnings, errors []Diagnostic) {
	g := gen.g
	for _, s := range unresolved {
		las := gen.engine.lookahead[s.lkIndex]
		for i := range s.finals {
			for j := i + 1; j < len(s.finals); j++ {
				if las[i].DisjointWith(las[j]) {
					continue
				}
				overlap := las[i].Copy()
				overlap.IntersectWith(las[j])
				errors = append(errors, Diagnostic{
					Severity: Error,
					Kind:     ReduceReduce,
					State:    s.ID,
					Terminal: -1,
					Message: fmt.Sprintf(
						"reduce/reduce conflict in state %d between %q and %q on %s",
						s.ID, g.ItemString(s.finals[i]), g.ItemString(s.finals[j]),
						terminalList(g, overlap)),
					Items: []Item{s.finals[i], s.finals[j]},
				})
			}
		}
		shifts := gen.cfa.shiftTerminals(s)
		for i, it := range s.finals {
			overlap := las[i].Copy()
			overlap.IntersectWith(shifts)
			item := it
			overlap.Each(func(term int) {
				warnings = append(warnings, Diagnostic{
					Severity: Warning,
					Kind:     ShiftReduce,
					State:    s.ID,
					Terminal: term,
					Message: fmt.Sprintf(
						"shift/reduce conflict in state %d on %q: shift wins over %q",
						s.ID, g.SymbolName(term), g.ItemString(item)),
					Items: []Item{item},
				})
			})
		}
	}
	return warnings, errors
}

func terminalList(g *Grammar, set *bitset.Set) string {
	var names []string
	set.Each(func(term int) {
		names = append(names, g.SymbolName(term))
	})
	return fmt.Sprintf("%v", names)
}

// === Accessors =============================================================

// Grammar returns the grammar this generator processes.
func (gen *TableGenerator) Grammar() *Grammar {
	return gen.g
}

// CFA returns the characteristic finite automaton for the grammar. Usually
// clients call CreateTables() beforehand, but it is possible to call CFA()
// directly; the automaton will be created if it has not been constructed
// previously.
func (gen *TableGenerator) CFA() *Automaton {
	if gen.cfa == nil {
		gen.cfa = buildAutomaton(gen.g)
		gen.cfa.classifyStates()
	}
	return gen.cfa
}

// ActionTable returns the emitted ACTION table, indexed by (state number,
// terminal code). The tables have to be built by calling CreateTables()
// previously.
func (gen *TableGenerator) ActionTable() *Table {
	if gen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return gen.actiontable
}

// GotoTable returns the emitted GOTO table, indexed by (state number,
// non-terminal ordinal). The tables have to be built by calling
// CreateTables() previously.
func (gen *TableGenerator) GotoTable() *Table {
	if gen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return gen.gototable
}

// Diagnostics returns the conflicts found during table generation, in
// emission order. After a successful run these are warnings; after a failed
// run, the fatal conflicts.
func (gen *TableGenerator) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), gen.diags...)
}

// ResolutionProfile returns, per state, the stage at which the state's
// conflicts were resolved.
func (gen *TableGenerator) ResolutionProfile() []ResolutionStage {
	return append([]ResolutionStage(nil), gen.profile...)
}

// ShadowedActions returns the cells of the ACTION table where the shift-wins
// policy displaced a reduce action. Every such cell holds the encoded loser
// and winner, letting report writers show both without rerunning analysis.
func (gen *TableGenerator) ShadowedActions() *sparse.IntMatrix {
	return gen.shadowed
}

// DirectRead returns the DirectRead-set of the non-terminal transition with
// dense number n: the terminals readable directly out of the transition's
// destination state.
func (gen *TableGenerator) DirectRead(n int) *bitset.Set {
	if gen.engine == nil {
		return nil
	}
	return gen.engine.directReadSet(n).Copy()
}

// Read returns the Read-set of the non-terminal transition with dense number
// n, or nil if the lookahead stage never ran.
func (gen *TableGenerator) Read(n int) *bitset.Set {
	if gen.engine == nil || gen.engine.read == nil {
		return nil
	}
	return gen.engine.read[n].Copy()
}

// Follow returns the Follow-set of the non-terminal transition with dense
// number n, or nil if the LALR(1) stage never ran.
func (gen *TableGenerator) Follow(n int) *bitset.Set {
	if gen.engine == nil || gen.engine.follow == nil {
		return nil
	}
	return gen.engine.follow[n].Copy()
}

// Lookback returns the transitions in the lookback relation of a (state,
// final item) pair.
func (gen *TableGenerator) Lookback(state int, item Item) []*Transition {
	if gen.engine == nil {
		return nil
	}
	return gen.engine.lookback(gen.cfa.State(state), item)
}

// Lookaheads returns the final items of a state together with their computed
// lookahead sets, parallel by index. For states without lookahead entries
// (LR(0)-clean ones) it returns nil sets.
func (gen *TableGenerator) Lookaheads(state int) ([]Item, []*bitset.Set) {
	if gen.cfa == nil {
		return nil, nil
	}
	s := gen.cfa.State(state)
	items := s.FinalItems()
	if !s.conflict || gen.engine == nil || gen.engine.lookahead == nil {
		return items, nil
	}
	las := make([]*bitset.Set, len(items))
	for i, la := range gen.engine.lookahead[s.lkIndex] {
		las[i] = la.Copy()
	}
	return items, las
}
