package lr

import (
	"sort"

	"github.com/npillmayer/parzival/lr/bitset"
)

// === Lookahead computation =================================================

// lookaheadEngine computes lookahead sets for the conflict-bearing states of
// a characteristic automaton, following DeRemer/Pennello: "Efficient
// Computation of LALR(1) Look-Ahead Sets", ACM TOPLAS 4,2 (1982).
//
// For a non-terminal transition t = (p, X, q):
//
//    DirectRead(t) = terminals labeling transitions out of q
//    t reads t'    ⇔ t' = (q, Y, r) and Y is nullable
//    Read(t)       = DirectRead(t) ∪ ⋃ { Read(t') : t reads t' }
//    t includes t' ⇔ t' = (p', A, q'), A → α X β with β ⇒* ε,
//                    and α leads from p' to p
//    Follow(t)     = Read(t) ∪ ⋃ { Follow(t') : t includes t' }
//
// The LALR(1) lookahead of a final item in a state is the union of Follow(t)
// over all transitions t in the lookback relation of (state, item).
//
// Before the full LALR machinery runs, conflicts are tried with the coarser
// SLR(1) follow sets, computed per non-terminal over the grammar-wide
// 'slr-follows' relation. Only states the SLR sets fail to resolve receive
// LALR lookaheads. All three closures run through the same digraph routine.
type lookaheadEngine struct {
	g          *Grammar
	cfa        *Automaton
	nullable   *bitset.Set   // nullable non-terminals, by ordinal
	directRead []*bitset.Set // per NTIndex, memoized on demand
	read       []*bitset.Set // per NTIndex, nil until computed
	follow     []*bitset.Set // per NTIndex, nil until computed
	slr        []*bitset.Set // SLR(1) follow per non-terminal ordinal
	lookahead  [][]*bitset.Set // lookahead store: lkIndex → sets parallel to State.finals
	scratch    []int         // SCC stack, shared by all digraph runs
}

func newLookaheadEngine(g *Grammar, cfa *Automaton, nullable *bitset.Set) *lookaheadEngine {
	return &lookaheadEngine{
		g:          g,
		cfa:        cfa,
		nullable:   nullable,
		directRead: make([]*bitset.Set, cfa.NTTransitionCount()),
	}
}

// directReadSet returns DirectRead(t) for the non-terminal transition with
// dense number x, computing it on first use.
func (e *lookaheadEngine) directReadSet(x int) *bitset.Set {
	if e.directRead[x] == nil {
		dr := bitset.New(e.g.NumTerminals())
		q := e.cfa.states[e.cfa.ntTrans[x].To]
		for _, t := range q.Outgoing {
			if t.IsTerminalTransition() {
				dr.Add(t.Symbol)
			}
		}
		e.directRead[x] = dr
	}
	return e.directRead[x]
}

// readsOracle emits every transition t' with (t reads t'): the non-terminal
// transitions out of t's destination whose label is nullable.
func (e *lookaheadEngine) readsOracle(x int, emit func(int)) {
	q := e.cfa.states[e.cfa.ntTrans[x].To]
	for _, t := range q.Outgoing {
		if !t.IsTerminalTransition() && e.nullable.Contains(e.g.NtOrdinal(t.Symbol)) {
			emit(t.NTIndex)
		}
	}
}

// includesOracle emits every transition t' with (t includes t'). For
// t = (p, X, q) it enumerates the items A → α X ·β in q with nullable β and
// walks |α| steps backward from p along incoming-state edges; every reached
// state contributes its transition labeled A. Walks are batched: sorted by
// distance, the backward frontier is expanded once per distance.
func (e *lookaheadEngine) includesOracle(x int, emit func(int)) {
	t := e.cfa.ntTrans[x]
	q := e.cfa.states[t.To]
	type walk struct{ dist, lhs int }
	var walks []walk
	for _, it := range q.items.items {
		if it.Dot == 0 {
			continue
		}
		p := e.g.prods[it.Prod]
		if p.RHS[it.Dot-1] != t.Symbol {
			continue
		}
		if !nullableTail(e.g, e.nullable, p.RHS, it.Dot) {
			continue
		}
		walks = append(walks, walk{dist: it.Dot - 1, lhs: p.LHS})
	}
	sort.Slice(walks, func(i, j int) bool {
		return walks[i].dist < walks[j].dist ||
			walks[i].dist == walks[j].dist && walks[i].lhs < walks[j].lhs
	})
	frontier := []int{t.From}
	dist := 0
	for _, w := range walks {
		for dist < w.dist {
			frontier = e.cfa.predecessors(frontier)
			dist++
		}
		for _, sid := range frontier {
			if tr := e.cfa.states[sid].transitionOn(w.lhs); tr != nil {
				emit(tr.NTIndex)
			}
		}
	}
}

// slrFollowsOracle emits, for the non-terminal with ordinal b, the ordinals
// of all left hand sides X of productions X → α B β with β ⇒* ε. Only the
// rightmost occurrence of B can have a nullable tail.
func (e *lookaheadEngine) slrFollowsOracle(b int, emit func(int)) {
	B := b + e.g.termCount
	for _, p := range e.g.prods {
		for i := p.Len() - 1; i >= 0; i-- {
			if p.RHS[i] != B {
				continue
			}
			if nullableTail(e.g, e.nullable, p.RHS, i+1) {
				emit(e.g.NtOrdinal(p.LHS))
			}
			break
		}
	}
}

// lookback returns the transitions in the lookback relation of a (state,
// final item) pair: walk |RHS| steps backward from the state along
// incoming-state edges; every reached state contributes its transition
// labeled with the item's LHS.
func (e *lookaheadEngine) lookback(s *State, it Item) []*Transition {
	p := e.g.prods[it.Prod]
	frontier := []int{s.ID}
	for i := 0; i < p.Len(); i++ {
		frontier = e.cfa.predecessors(frontier)
	}
	var r []*Transition
	for _, sid := range frontier {
		if tr := e.cfa.states[sid].transitionOn(p.LHS); tr != nil {
			r = append(r, tr)
		}
	}
	return r
}

// runDigraph runs one digraph traversal, reusing the engine's SCC stack.
func (e *lookaheadEngine) runDigraph(size int, edges func(int, func(int)),
	initial func(int) *bitset.Set) []*bitset.Set {
	//
	d := newDigraph(size, edges, initial)
	d.stack = e.scratch[:0]
	f := d.run()
	e.scratch = d.stack[:0]
	return f
}

// ensureRead computes Read for every non-terminal transition: the digraph
// closure of DirectRead under the 'reads' relation.
func (e *lookaheadEngine) ensureRead() {
	if e.read != nil {
		return
	}
	tracer().Debugf("computing Read-sets over %d transitions", e.cfa.NTTransitionCount())
	e.read = e.runDigraph(e.cfa.NTTransitionCount(), e.readsOracle, e.directReadSet)
}

// ensureFollow computes Follow for every non-terminal transition: the
// digraph closure of Read under the 'includes' relation.
func (e *lookaheadEngine) ensureFollow() {
	if e.follow != nil {
		return
	}
	e.ensureRead()
	tracer().Debugf("computing Follow-sets over %d transitions", e.cfa.NTTransitionCount())
	e.follow = e.runDigraph(e.cfa.NTTransitionCount(), e.includesOracle,
		func(x int) *bitset.Set { return e.read[x] })
}

// ensureSLRFollow computes the SLR(1) follow set per non-terminal: the
// digraph closure, under 'slr-follows', of the union of Read over all
// transitions labeled with the non-terminal. The initial-set function
// triggers the nested Read digraph over transitions on first use.
func (e *lookaheadEngine) ensureSLRFollow() {
	if e.slr != nil {
		return
	}
	tracer().Debugf("computing SLR follow sets for %d non-terminals", e.g.NumNonterminals())
	e.slr = e.runDigraph(e.g.NumNonterminals(), e.slrFollowsOracle,
		func(ord int) *bitset.Set {
			e.ensureRead()
			I := bitset.New(e.g.NumTerminals())
			for _, t := range e.cfa.ntLabeled[ord] {
				I.UnionWith(e.read[t.NTIndex])
			}
			return I
		})
}

// resolved checks whether the lookahead sets assigned to a conflict-bearing
// state settle all of its conflicts: the sets must be mutually disjoint and
// disjoint from the state's shift terminals.
func (e *lookaheadEngine) resolved(s *State) bool {
	las := e.lookahead[s.lkIndex]
	shifts := e.cfa.shiftTerminals(s)
	for i, la := range las {
		if !la.DisjointWith(shifts) {
			return false
		}
		for j := i + 1; j < len(las); j++ {
			if !la.DisjointWith(las[j]) {
				return false
			}
		}
	}
	return true
}

// run computes lookaheads for all conflict-bearing states and records the
// resolution stage per state in profile. With force=true the SLR(1) pass is
// skipped entirely and every conflict-bearing state receives LALR(1)
// lookaheads. Returns the states whose conflicts remain unresolved.
func (e *lookaheadEngine) run(force bool, profile []ResolutionStage) []*State {
	var conflicts []*State
	for _, s := range e.cfa.states {
		if s.conflict {
			conflicts = append(conflicts, s)
		}
	}
	e.lookahead = make([][]*bitset.Set, len(conflicts))
	unresolved := conflicts
	if !force {
		e.ensureSLRFollow()
		for _, s := range conflicts {
			las := make([]*bitset.Set, len(s.finals))
			for i, it := range s.finals {
				lhs := e.g.prods[it.Prod].LHS
				las[i] = e.slr[e.g.NtOrdinal(lhs)].Copy()
				tracer().Debugf("state %d: SLR candidate for %s = %v",
					s.ID, e.g.ItemString(it), las[i])
			}
			e.lookahead[s.lkIndex] = las
		}
		unresolved = nil
		for _, s := range conflicts {
			if e.resolved(s) {
				profile[s.ID] = StageSLR1
			} else {
				unresolved = append(unresolved, s)
			}
		}
		tracer().Infof("SLR(1) pass left %d of %d conflict states unresolved",
			len(unresolved), len(conflicts))
	}
	if force || len(unresolved) > 0 {
		e.ensureFollow()
		for _, s := range unresolved {
			las := make([]*bitset.Set, len(s.finals))
			for i, it := range s.finals {
				la := bitset.New(e.g.NumTerminals())
				for _, t := range e.lookback(s, it) {
					la.UnionWith(e.follow[t.NTIndex])
				}
				las[i] = la
				tracer().Debugf("state %d: LALR lookahead for %s = %v",
					s.ID, e.g.ItemString(it), la)
			}
			e.lookahead[s.lkIndex] = las // overwrites the SLR candidates
		}
		still := unresolved[:0]
		for _, s := range unresolved {
			if e.resolved(s) {
				profile[s.ID] = StageLALR1
			} else {
				still = append(still, s)
			}
		}
		unresolved = still
		tracer().Infof("LALR(1) pass left %d conflict states unresolved", len(unresolved))
	}
	return unresolved
}
