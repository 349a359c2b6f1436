package lr

import (
	"fmt"

	"github.com/npillmayer/parzival/lr/sparse"
)

// === Parser tables =========================================================

// ACTION table cells are encoded in a single int32:
//
//    0    fail (no legal action)
//    s+1  shift and go to state s
//    -p-1 reduce production p
//
// Reducing production 0, the synthetic start production, means accept.
// GOTO table cells hold the destination state number, or NoGoto.
const (
	NoAction int32 = 0
	NoGoto   int32 = -1
)

// Shift encodes a shift action to a destination state.
func Shift(dest int) int32 {
	return int32(dest) + 1
}

// Reduce encodes a reduce action for a production code.
func Reduce(prod int) int32 {
	return -int32(prod) - 1
}

// IsShift returns true for encoded shift actions.
func IsShift(a int32) bool {
	return a > 0
}

// IsReduce returns true for encoded reduce actions.
func IsReduce(a int32) bool {
	return a < 0
}

// ShiftDest returns the destination state of an encoded shift action.
func ShiftDest(a int32) int {
	return int(a) - 1
}

// ReduceProd returns the production code of an encoded reduce action.
func ReduceProd(a int32) int {
	return int(-a) - 1
}

// IsAccept returns true if the action reduces the synthetic start
// production.
func IsAccept(a int32) bool {
	return IsReduce(a) && ReduceProd(a) == 0
}

// ActionString returns a short human readable form of an encoded action.
func ActionString(a int32) string {
	switch {
	case a == NoAction:
		return "<fail>"
	case IsAccept(a):
		return "<accept>"
	case IsShift(a):
		return fmt.Sprintf("<shift %d>", ShiftDest(a))
	}
	return fmt.Sprintf("<reduce %d>", ReduceProd(a))
}

// Table is a dense 2-dimensional parser table. The ACTION table is indexed
// by (state, terminal code), the GOTO table by (state, non-terminal
// ordinal).
type Table struct {
	rows, cols int
	cells      []int32
}

func newTable(rows, cols int, fill int32) *Table {
	t := &Table{
		rows:  rows,
		cols:  cols,
		cells: make([]int32, rows*cols),
	}
	if fill != 0 {
		for i := range t.cells {
			t.cells[i] = fill
		}
	}
	return t
}

// Rows returns the number of rows (states).
func (t *Table) Rows() int {
	return t.rows
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.cols
}

// At returns the cell value at (i, j).
func (t *Table) At(i, j int) int32 {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		panic(fmt.Sprintf("lr.Table.At(%d,%d) out of range %dx%d", i, j, t.rows, t.cols))
	}
	return t.cells[i*t.cols+j]
}

func (t *Table) set(i, j int, v int32) {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		panic(fmt.Sprintf("lr.Table.set(%d,%d) out of range %dx%d", i, j, t.rows, t.cols))
	}
	t.cells[i*t.cols+j] = v
}

// === Table emission ========================================================

// emitTables materializes the ACTION and GOTO tables from the automaton and
// the lookahead store. Reduce cells are written first; terminal transitions
// overwrite them with shifts afterwards (shift wins). Every cell where a
// shift displaced a reduce keeps both encoded actions in the returned
// conflict ledger, so reporters can show what lost.
//
// Emission must only run after reduce/reduce conflicts have been ruled out.
func emitTables(cfa *Automaton, engine *lookaheadEngine) (action, gotoT *Table, shadowed *sparse.IntMatrix) {
	g := cfa.g
	tracer().Infof("ACTION table of size %d x %d", cfa.StateCount(), g.NumTerminals())
	tracer().Infof("GOTO table of size %d x %d", cfa.StateCount(), g.NumNonterminals())
	action = newTable(cfa.StateCount(), g.NumTerminals(), NoAction)
	gotoT = newTable(cfa.StateCount(), g.NumNonterminals(), NoGoto)
	shadowed = sparse.NewIntMatrix(cfa.StateCount(), g.NumTerminals(), sparse.DefaultNullValue)
	for _, s := range cfa.states {
		if s.conflict {
			las := engine.lookahead[s.lkIndex]
			for i, it := range s.finals {
				red := Reduce(it.Prod)
				las[i].Each(func(term int) {
					action.set(s.ID, term, red)
				})
			}
		} else if len(s.finals) == 1 {
			// clean state: unconditional reduce on every terminal
			red := Reduce(s.finals[0].Prod)
			for term := 0; term < g.NumTerminals(); term++ {
				action.set(s.ID, term, red)
			}
		}
		for _, t := range s.Outgoing {
			if t.IsTerminalTransition() {
				if prev := action.At(s.ID, t.Symbol); IsReduce(prev) {
					shadowed.Add(s.ID, t.Symbol, prev)
					shadowed.Add(s.ID, t.Symbol, Shift(t.To))
				}
				action.set(s.ID, t.Symbol, Shift(t.To))
			} else {
				gotoT.set(s.ID, g.NtOrdinal(t.Symbol), int32(t.To))
			}
		}
	}
	return action, gotoT, shadowed
}
