/*
Package report renders the results of LR table generation for humans:
diagnostics, conflict explanations and the emitted parser tables.

It works entirely from the inspection surface of an lr.TableGenerator (the
automaton, the lookahead sets and the shadowed-action ledger) and never
recomputes any analysis.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/npillmayer/parzival/lr"
	"github.com/npillmayer/parzival/lr/bitset"
)

// Diagnostics prints the diagnostics of a generator run with pterm's
// leveled printers: warnings for resolved shift/reduce conflicts, errors for
// fatal reduce/reduce conflicts.
func Diagnostics(gen *lr.TableGenerator) {
	for _, d := range gen.Diagnostics() {
		if d.Severity == lr.Error {
			pterm.Error.Println(d.Message)
		} else {
			pterm.Warning.Println(d.Message)
		}
	}
}

// ConflictTree renders every conflict-bearing state as a tree: the state
// with its resolution stage, below it the final items with their lookahead
// sets, and the table cells where a shift displaced a reduce.
func ConflictTree(gen *lr.TableGenerator) {
	g := gen.Grammar()
	cfa := gen.CFA()
	profile := gen.ResolutionProfile()
	shadowed := gen.ShadowedActions()
	ll := pterm.LeveledList{}
	for n := 0; n < cfa.StateCount(); n++ {
		state := cfa.State(n)
		if !state.IsConflicting() {
			continue
		}
		ll = append(ll, pterm.LeveledListItem{
			Level: 0,
			Text:  fmt.Sprintf("state %d (%s)", n, profile[n]),
		})
		items, las := gen.Lookaheads(n)
		for i, it := range items {
			text := g.ItemString(it)
			if las != nil {
				text += "  lookahead " + lookaheadNames(g, las[i])
			}
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: text})
		}
		if shadowed == nil {
			continue
		}
		shadowed.Each(func(i, j int, a, b int32) {
			if i != n {
				return
			}
			ll = append(ll, pterm.LeveledListItem{
				Level: 1,
				Text: fmt.Sprintf("on %q: %s displaced by %s", g.SymbolName(j),
					lr.ActionString(a), lr.ActionString(b)),
			})
		})
	}
	if len(ll) == 0 {
		pterm.Info.Println("no conflicts")
		return
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func lookaheadNames(g *lr.Grammar, set *bitset.Set) string {
	text := "{"
	set.Each(func(term int) {
		text += " " + g.SymbolName(term)
	})
	return text + " }"
}

// TablesAsText writes the ACTION and GOTO tables in a plain textual format.
func TablesAsText(gen *lr.TableGenerator, w io.Writer) {
	g := gen.Grammar()
	action, gotoT := gen.ActionTable(), gen.GotoTable()
	if action == nil || gotoT == nil {
		pterm.Error.Println("tables not yet created, cannot export")
		return
	}
	fmt.Fprintf(w, "ACTION table %dx%d\n", action.Rows(), action.Cols())
	fmt.Fprintf(w, "%8s", "")
	for term := 0; term < g.NumTerminals(); term++ {
		fmt.Fprintf(w, "%12s", g.SymbolName(term))
	}
	fmt.Fprintln(w)
	for i := 0; i < action.Rows(); i++ {
		fmt.Fprintf(w, "%8d", i)
		for j := 0; j < action.Cols(); j++ {
			if a := action.At(i, j); a == lr.NoAction {
				fmt.Fprintf(w, "%12s", ".")
			} else {
				fmt.Fprintf(w, "%12s", lr.ActionString(a))
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "GOTO table %dx%d\n", gotoT.Rows(), gotoT.Cols())
	fmt.Fprintf(w, "%8s", "")
	for nt := 0; nt < g.NumNonterminals(); nt++ {
		fmt.Fprintf(w, "%12s", g.SymbolName(nt+g.NumTerminals()))
	}
	fmt.Fprintln(w)
	for i := 0; i < gotoT.Rows(); i++ {
		fmt.Fprintf(w, "%8d", i)
		for j := 0; j < gotoT.Cols(); j++ {
			if v := gotoT.At(i, j); v == lr.NoGoto {
				fmt.Fprintf(w, "%12s", ".")
			} else {
				fmt.Fprintf(w, "%12d", v)
			}
		}
		fmt.Fprintln(w)
	}
}
