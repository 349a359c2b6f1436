package lr

import (
	"github.com/npillmayer/parzival/lr/bitset"
)

// === Conflict classification ===============================================

// classifyStates collects the final items of every state and partitions the
// states into LR(0)-clean and conflict-bearing ones.
//
// A state is clean if it has at most one final item and, if it has exactly
// one, no outgoing terminal transition (no shift/reduce potential). Clean
// states need no lookahead: their single final item, if any, reduces
// unconditionally. All other states are conflict-bearing and receive a slot
// in the lookahead store.
//
// Returns the number of conflict-bearing states.
func (c *Automaton) classifyStates() int {
	g := c.g
	conflicts := 0
	for _, s := range c.states {
		s.finals = nil
		for _, it := range s.items.items {
			if g.IsFinal(it) {
				s.finals = append(s.finals, it)
			}
		}
		shifts := false
		for _, t := range s.Outgoing {
			if t.IsTerminalTransition() {
				shifts = true
				break
			}
		}
		s.conflict = len(s.finals) > 1 || (len(s.finals) == 1 && shifts)
		if s.conflict {
			s.lkIndex = conflicts
			conflicts++
			tracer().Debugf("state %d is conflict-bearing (%d final items)",
				s.ID, len(s.finals))
		} else {
			s.lkIndex = -1
		}
	}
	tracer().Infof("%d of %d states are conflict-bearing", conflicts, len(c.states))
	return conflicts
}

// shiftTerminals returns the terminals labeling transitions out of s as a
// set sized to the grammar's terminal count.
func (c *Automaton) shiftTerminals(s *State) *bitset.Set {
	T := bitset.New(c.g.NumTerminals())
	for _, t := range s.Outgoing {
		if t.IsTerminalTransition() {
			T.Add(t.Symbol)
		}
	}
	return T
}
