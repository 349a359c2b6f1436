package lr

import (
	"sort"
	"strings"
)

// --- Items -----------------------------------------------------------------

// Item is an Earley item: a production together with a dot position
// 0…len(RHS), marking how much of the right hand side has been recognized.
// Items are value-like; equality is structural over the two fields.
type Item struct {
	Prod int // production code
	Dot  int // position of the dot within the RHS
}

// IsFinal returns true if the dot of the item sits behind the complete right
// hand side.
func (g *Grammar) IsFinal(it Item) bool {
	return it.Dot == g.prods[it.Prod].Len()
}

// DotSymbol returns the symbol right after the dot of an item, with ok=false
// for final items.
func (g *Grammar) DotSymbol(it Item) (int, bool) {
	p := g.prods[it.Prod]
	if it.Dot >= p.Len() {
		return 0, false
	}
	return p.RHS[it.Dot], true
}

// advance moves the dot of an item one symbol to the right.
func (it Item) advance() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1}
}

// ItemString returns an item in human readable form, e.g. "S → A ·b".
func (g *Grammar) ItemString(it Item) string {
	p := g.prods[it.Prod]
	var b strings.Builder
	b.WriteString(g.names[p.LHS])
	b.WriteString(" →")
	for i, sym := range p.RHS {
		if i == it.Dot {
			b.WriteString(" ·")
			b.WriteString(g.names[sym])
		} else {
			b.WriteString(" " + g.names[sym])
		}
	}
	if g.IsFinal(it) {
		b.WriteString(" ·")
	}
	return b.String()
}

// --- Item sets -------------------------------------------------------------

// itemSet is a set of items, kept sorted by (production, dot) for canonical
// comparison. Insertion order is irrelevant for equality.
type itemSet struct {
	items []Item
}

func itemLess(a, b Item) bool {
	return a.Prod < b.Prod || a.Prod == b.Prod && a.Dot < b.Dot
}

func (S *itemSet) find(it Item) (int, bool) {
	at := sort.Search(len(S.items), func(i int) bool {
		return !itemLess(S.items[i], it)
	})
	return at, at < len(S.items) && S.items[at] == it
}

// add inserts an item at its canonical position; duplicates are ignored.
// Reports whether the set changed.
func (S *itemSet) add(it Item) bool {
	at, present := S.find(it)
	if present {
		return false
	}
	S.items = append(S.items, Item{})
	copy(S.items[at+1:], S.items[at:])
	S.items[at] = it
	return true
}

func (S *itemSet) contains(it Item) bool {
	_, present := S.find(it)
	return present
}

func (S *itemSet) size() int {
	return len(S.items)
}

func (S *itemSet) empty() bool {
	return len(S.items) == 0
}

// equals holds iff both sets contain the same items.
func (S *itemSet) equals(other *itemSet) bool {
	if len(S.items) != len(other.items) {
		return false
	}
	for i, it := range S.items {
		if other.items[i] != it {
			return false
		}
	}
	return true
}

// closure completes an item set with predictions: for every item with the
// dot before a non-terminal N, the items (p, 0) for all productions p of N
// are added. Closure is idempotent.
func (g *Grammar) closure(S *itemSet) *itemSet {
	C := &itemSet{items: append([]Item(nil), S.items...)}
	stack := append([]Item(nil), S.items...)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sym, ok := g.DotSymbol(it)
		if !ok || g.IsTerminal(sym) {
			continue
		}
		for _, p := range g.ProdsFor(sym) {
			pred := Item{Prod: p.Code, Dot: 0}
			if C.add(pred) {
				stack = append(stack, pred)
			}
		}
	}
	return C
}

func (g *Grammar) itemSetString(S *itemSet) string {
	var b strings.Builder
	b.WriteString("{")
	for i, it := range S.items {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" " + g.ItemString(it))
	}
	b.WriteString(" }")
	return b.String()
}
