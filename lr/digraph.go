package lr

import (
	"github.com/npillmayer/parzival/lr/bitset"
)

// === Digraph traversal =====================================================

// The lookahead sets of DeRemer/Pennello are least fixed points of monotone
// set-valued equations
//
//    F(x) = I(x) ∪ ⋃ { F(y) : x R y }
//
// over some relation R. We need this three times, for different vertex
// universes: over non-terminal transitions under 'reads', again under
// 'includes', and over non-terminals under 'slr-follows'. To prevent the
// copies from drifting apart, the traversal is implemented once and
// parameterized with an edge oracle and an initial-set function.
//
// The algorithm is Tarjan-style SCC traversal: every vertex carries a depth
// index, unions the F-values of its successors into its own, and when a
// vertex turns out to be the root of a strongly connected component, all
// other members of the component receive a copy of the root's F-value.

const infinity = int(^uint(0) >> 1)

// digraph computes F for a dense universe of vertices 0…size-1. The edge
// oracle calls emit for every successor of x; initial provides I(x) and is
// evaluated exactly once per vertex, which allows it to trigger a nested
// digraph run for a different universe.
type digraph struct {
	edges   func(x int, emit func(y int))
	initial func(x int) *bitset.Set
	n       []int        // depth index per vertex, 0 = unvisited
	f       []*bitset.Set
	stack   []int
}

func newDigraph(size int, edges func(int, func(int)), initial func(int) *bitset.Set) *digraph {
	return &digraph{
		edges:   edges,
		initial: initial,
		n:       make([]int, size),
		f:       make([]*bitset.Set, size),
	}
}

// run computes the least fixed point for every vertex and returns the
// F-array. Running twice on identical inputs yields identical results.
func (d *digraph) run() []*bitset.Set {
	for x := range d.n {
		if d.n[x] == 0 {
			d.traverse(x)
		}
	}
	return d.f
}

func (d *digraph) traverse(x int) {
	d.stack = append(d.stack, x)
	depth := len(d.stack)
	d.n[x] = depth
	d.f[x] = d.initial(x).Copy()
	d.edges(x, func(y int) {
		if d.n[y] == 0 {
			d.traverse(y)
		}
		if d.n[y] < d.n[x] {
			d.n[x] = d.n[y]
		}
		d.f[x].UnionWith(d.f[y])
	})
	if d.n[x] != depth {
		return // x is part of an SCC rooted higher up
	}
	for {
		top := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]
		d.n[top] = infinity
		if top == x {
			break
		}
		d.f[top] = d.f[x].Copy() // SCC members share the root's value
	}
}
