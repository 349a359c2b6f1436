package lr

import (
	"fmt"
	"io"
	"os"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === The characteristic automaton ==========================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc,
// Jr., Section 6.2.1 LR(0) Parsing, for CFSM construction, and to
// DeRemer/Pennello: "Efficient Computation of LALR(1) Look-Ahead Sets",
// ACM TOPLAS Vol. 4, No. 2 (1982), for the role the transitions play during
// lookahead computation.

// Transition is an edge of the characteristic automaton: a move from state
// From to state To over a grammar symbol. Transitions over non-terminals
// additionally carry a dense ordinal NTIndex, which lookahead computation
// uses to index its set arrays; for terminal transitions NTIndex is -1.
type Transition struct {
	From    int // state number of the source state
	To      int // state number of the destination state
	Symbol  int // symbol code labeling this transition
	NTIndex int // dense numbering of non-terminal transitions, -1 otherwise
}

// IsTerminalTransition returns true for transitions labeled with a terminal.
func (t *Transition) IsTerminalTransition() bool {
	return t.NTIndex < 0
}

// State is a state of the characteristic automaton: a closed set of items,
// identified by a dense state number. State 0 is the start state.
type State struct {
	ID       int
	items    *itemSet
	Accept   bool          // does this state contain the completed start rule?
	Outgoing []*Transition // transitions leaving this state
	incoming []int         // states with a transition into this state
	// set by conflict classification:
	finals   []Item // final items of this state
	conflict bool   // does this state need lookahead?
	lkIndex  int    // index into the lookahead store, -1 for clean states
}

// Items returns a copy of the state's item set, sorted by production and
// dot position.
func (s *State) Items() []Item {
	return append([]Item(nil), s.items.items...)
}

// FinalItems returns the final (reducible) items of the state.
func (s *State) FinalItems() []Item {
	return append([]Item(nil), s.finals...)
}

// Incoming returns the numbers of all states with a transition into s.
func (s *State) Incoming() []int {
	return append([]int(nil), s.incoming...)
}

// IsConflicting returns true if the state has reduce/reduce or shift/reduce
// potential and therefore needs lookahead sets.
func (s *State) IsConflicting() bool {
	return s.conflict
}

func (s *State) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.size())
}

// transitionOn returns the outgoing transition labeled with a symbol, or nil.
func (s *State) transitionOn(sym int) *Transition {
	for _, t := range s.Outgoing {
		if t.Symbol == sym {
			return t
		}
	}
	return nil
}

// Dump is a debugging helper.
func (s *State) Dump(g *Grammar) {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, it := range s.items.items {
		tracer().Debugf("    %s", g.ItemString(it))
	}
	tracer().Debugf("-------------------------")
}

// Automaton is the characteristic finite automaton (CFSM) for a grammar,
// i.e. the LR(0) state diagram. It is constructed by a TableGenerator.
// Clients normally do not use it directly, but it remains accessible after
// table generation, e.g. for rendering conflict reports.
//
// The automaton owns its states; transitions refer to states by their dense
// state number, never by pointer.
type Automaton struct {
	g         *Grammar
	states    []*State
	ntTrans   []*Transition   // all non-terminal transitions, dense by NTIndex
	ntLabeled [][]*Transition // non-terminal ordinal → transitions labeled with it
}

// StateCount returns the number of states.
func (c *Automaton) StateCount() int {
	return len(c.states)
}

// State returns the state with a given state number.
func (c *Automaton) State(n int) *State {
	return c.states[n]
}

// NTTransitionCount returns the number of non-terminal transitions.
func (c *Automaton) NTTransitionCount() int {
	return len(c.ntTrans)
}

// NTTransition returns the non-terminal transition with dense number n.
func (c *Automaton) NTTransition(n int) *Transition {
	return c.ntTrans[n]
}

// TransitionsLabeled returns all non-terminal transitions labeled with a
// non-terminal code.
func (c *Automaton) TransitionsLabeled(nt int) []*Transition {
	return c.ntLabeled[c.g.NtOrdinal(nt)]
}

// stateSig wraps an item slice for fingerprinting. Sets are sorted, so equal
// item sets produce equal hashes.
type stateSig struct {
	Items []Item
}

func fingerprint(S *itemSet) string {
	return string(structhash.Sha1(stateSig{Items: S.items}, 1))
}

// buildAutomaton constructs the characteristic automaton for a grammar.
// States are numbered in discovery order; state 0 is the closure of
// {$start → ·S $end}. Item sets are merged canonically: a successor whose
// closed item set equals that of an existing state shares the state.
func buildAutomaton(g *Grammar) *Automaton {
	tracer().Debugf("=== build CFSM ==================================================")
	c := &Automaton{
		g:         g,
		ntLabeled: make([][]*Transition, g.NumNonterminals()),
	}
	byHash := make(map[string][]*State)
	addState := func(S *itemSet) *State {
		s := &State{ID: len(c.states), items: S, lkIndex: -1}
		if S.contains(Item{Prod: 0, Dot: g.Production(0).Len()}) {
			s.Accept = true
		}
		c.states = append(c.states, s)
		h := fingerprint(S)
		byHash[h] = append(byHash[h], s)
		return s
	}
	findState := func(S *itemSet) *State {
		for _, s := range byHash[fingerprint(S)] {
			if s.items.equals(S) {
				return s
			}
		}
		return nil
	}
	start := &itemSet{}
	start.add(Item{Prod: 0, Dot: 0})
	s0 := addState(g.closure(start))
	s0.Dump(g)
	queue := arraylist.New() // states with successors yet to be explored
	queue.Add(s0)
	for !queue.Empty() {
		front, _ := queue.Get(0)
		queue.Remove(0)
		s := front.(*State)
		// distinct dot-symbols of s, in ascending code order
		dotsyms := treeset.NewWith(utils.IntComparator)
		for _, it := range s.items.items {
			if sym, ok := g.DotSymbol(it); ok {
				dotsyms.Add(sym)
			}
		}
		dotsyms.Each(func(_ int, value interface{}) {
			sym := value.(int)
			succ := &itemSet{} // successor kernel: dot advanced over sym
			for _, it := range s.items.items {
				if x, ok := g.DotSymbol(it); ok && x == sym {
					succ.add(it.advance())
				}
			}
			S := g.closure(succ)
			dest := findState(S)
			if dest == nil {
				dest = addState(S)
				dest.Dump(g)
				queue.Add(dest)
			}
			t := &Transition{From: s.ID, To: dest.ID, Symbol: sym, NTIndex: -1}
			if !g.IsTerminal(sym) {
				t.NTIndex = len(c.ntTrans)
				c.ntTrans = append(c.ntTrans, t)
				ord := g.NtOrdinal(sym)
				c.ntLabeled[ord] = append(c.ntLabeled[ord], t)
			}
			s.Outgoing = append(s.Outgoing, t)
			dest.linkIncoming(s.ID)
			tracer().Debugf("edge %v --%s--> state %d", s, g.SymbolName(sym), dest.ID)
		})
	}
	tracer().Infof("CFSM has %d states, %d non-terminal transitions",
		len(c.states), len(c.ntTrans))
	return c
}

func (s *State) linkIncoming(from int) {
	for _, p := range s.incoming {
		if p == from {
			return
		}
	}
	s.incoming = append(s.incoming, from)
}

// predecessors returns the set of states reachable by walking one incoming
// edge backwards from any state of the frontier.
func (c *Automaton) predecessors(frontier []int) []int {
	seen := make(map[int]bool)
	var r []int
	for _, sid := range frontier {
		for _, p := range c.states[sid].incoming {
			if !seen[p] {
				seen[p] = true
				r = append(r, p)
			}
		}
	}
	return r
}

// === GraphViz export =======================================================

// GraphViz exports the automaton to the Graphviz Dot format.
func (c *Automaton) GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(c.g, s.items))
	}
	for _, s := range c.states {
		for _, t := range s.Outgoing {
			fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n",
				t.From, t.To, c.g.SymbolName(t.Symbol))
		}
	}
	io.WriteString(w, "}\n")
}

// GraphVizFile exports the automaton to a file in Graphviz Dot format.
func (c *Automaton) GraphVizFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	c.GraphViz(f)
	return nil
}

func nodecolor(s *State) string {
	if s.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(g *Grammar, S *itemSet) string {
	var b []byte
	for i, it := range S.items {
		if i > 0 {
			b = append(b, `\n`...)
		}
		b = append(b, g.ItemString(it)...)
	}
	return string(b)
}
