package lr

import (
	"testing"

	"github.com/npillmayer/parzival/lr/bitset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// A small fixed relation: 0 → 1 → 2 → 0 forms an SCC, 3 → 0 hangs off it.
func testEdges(x int, emit func(int)) {
	switch x {
	case 0:
		emit(1)
	case 1:
		emit(2)
	case 2:
		emit(0)
	case 3:
		emit(0)
	}
}

func runTestDigraph(t *testing.T, initCalls []int) []*bitset.Set {
	d := newDigraph(4, testEdges, func(x int) *bitset.Set {
		initCalls[x]++
		I := bitset.New(8)
		I.Add(x)
		return I
	})
	return d.run()
}

func TestDigraphSCC(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	initCalls := make([]int, 4)
	f := runTestDigraph(t, initCalls)
	// members of the SCC {0,1,2} all end up with {0,1,2}
	scc := bitset.New(8)
	scc.Add(0).Add(1).Add(2)
	for x := 0; x < 3; x++ {
		if !f[x].Equals(scc) {
			t.Errorf("expected F[%d] = %v, got %v", x, scc, f[x])
		}
	}
	// vertex 3 sees its own initial set plus the SCC's
	want := scc.Copy()
	want.Add(3)
	if !f[3].Equals(want) {
		t.Errorf("expected F[3] = %v, got %v", want, f[3])
	}
	for x, n := range initCalls {
		if n != 1 {
			t.Errorf("initial set of vertex %d evaluated %d times, want exactly once", x, n)
		}
	}
}

func TestDigraphDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	f1 := runTestDigraph(t, make([]int, 4))
	f2 := runTestDigraph(t, make([]int, 4))
	for x := range f1 {
		if !f1[x].Equals(f2[x]) {
			t.Errorf("digraph run is not deterministic at vertex %d: %v vs %v", x, f1[x], f2[x])
		}
	}
}
