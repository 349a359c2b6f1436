package lr

import (
	"github.com/npillmayer/parzival/lr/bitset"
)

// === Nullability ===========================================================

// computeNullable determines the set of nullable non-terminals, i.e. those
// deriving the empty string, as a set over non-terminal ordinals.
//
// Classic worklist algorithm: every production carries a counter of RHS
// symbols not yet known to be nullable. A counter reaching zero marks the
// production's LHS nullable and enqueues it; dequeuing a non-terminal
// decrements the counter of every production with that non-terminal on its
// RHS. Counters of productions containing a terminal never reach zero. Runs
// in time linear in the total grammar size.
func computeNullable(g *Grammar) *bitset.Set {
	nullable := bitset.New(g.NumNonterminals())
	count := make([]int, g.NumProductions())
	occursIn := make([][]int, g.NumNonterminals()) // nt ordinal → production codes, one per occurrence
	var queue []int
	markNullable := func(lhs int) {
		ord := g.NtOrdinal(lhs)
		if !nullable.Contains(ord) {
			nullable.Add(ord)
			queue = append(queue, ord)
		}
	}
	for i := 0; i < g.NumProductions(); i++ {
		p := g.Production(i)
		count[i] = p.Len()
		for _, sym := range p.RHS {
			if !g.IsTerminal(sym) {
				ord := g.NtOrdinal(sym)
				occursIn[ord] = append(occursIn[ord], i)
			}
		}
		if count[i] == 0 {
			markNullable(p.LHS)
		}
	}
	for len(queue) > 0 {
		ord := queue[0]
		queue = queue[1:]
		for _, pi := range occursIn[ord] {
			count[pi]--
			if count[pi] == 0 {
				markNullable(g.Production(pi).LHS)
			}
		}
	}
	tracer().Debugf("nullable non-terminals: %v", nullable)
	return nullable
}

// nullableTail reports whether the span rhs[from:] derives the empty string,
// i.e. consists solely of nullable non-terminals.
func nullableTail(g *Grammar, nullable *bitset.Set, rhs []int, from int) bool {
	for _, sym := range rhs[from:] {
		if g.IsTerminal(sym) || !nullable.Contains(g.NtOrdinal(sym)) {
			return false
		}
	}
	return true
}
