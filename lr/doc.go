/*
Package lr implements a grammar processor for LR parsing.

Clients specify a context-free grammar using a grammar builder object, then
subject it to a table generator. The generator constructs the LR(0)
characteristic finite automaton over item sets, classifies its states as
conflict-free or conflict-bearing, and computes lookahead sets hierarchically:
states that are clean under LR(0) stay untouched, conflicting states are first
tried with SLR(1) FOLLOW-sets, and only the remaining ones receive full
LALR(1) lookaheads, computed with the digraph algorithm of DeRemer and
Pennello over the 'reads' and 'includes' relations. Finally ACTION- and
GOTO-tables are emitted.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").N("B").End() // S  ->  A B
    b.LHS("A").Epsilon()           // A  ->
    b.LHS("B").T("c").End()        // B  ->  c
    b.LHS("B").Epsilon()           // B  ->

The builder assigns symbol codes: terminals occupy 0…#T-1, with code 0
reserved for the end-of-input marker $end; non-terminals occupy the codes
above, starting with the synthetic start symbol $start. Production 0 always
is  $start → S $end,  with S the start symbol of the client's grammar.

Table Generation

A generator processes the grammar in stages:

    g, _ := b.Grammar()
    gen := lr.NewTableGenerator(g)
    if err := gen.CreateTables(); err != nil {
        // grammar is not LALR(1): a reduce/reduce conflict was found
    }
    action, goto_ := gen.ActionTable(), gen.GotoTable()

Shift/reduce conflicts are resolved in favour of shift and reported as
warnings in gen.Diagnostics(); reduce/reduce conflicts are fatal and no
tables are emitted. After a successful run the complete automaton, the
computed lookahead sets and the per-state resolution stages remain
accessible for inspection, e.g. by conflict report writers.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parzival.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parzival.lr")
}
