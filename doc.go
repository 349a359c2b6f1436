/*
Package parzival is a parser generator toolbox.

Parzival ingests a grammar specification, i.e. a lexer description plus an
LR-style context-free grammar, and emits a deterministic bottom-up parser: a state
machine given by ACTION- and GOTO-tables, together with a scanner feeding it.
Package structure is as follows:

■ lr: Package lr implements the grammar processor. It constructs the LR(0)
characteristic automaton, detects conflicting states, computes lookahead sets
hierarchically (SLR(1) first, LALR(1) where needed, following DeRemer–Pennello)
and emits the parser tables.

■ lr/bitset: Package bitset provides the fixed-universe bit-vector sets all
lookahead computation is expressed in.

■ lr/scanner: Package scanner defines the tokenizer contract of generated
parsers and provides a lexmachine-backed implementation.

■ lr/lalr: Package lalr is a table-driven parser, executing the emitted tables
to recognize strings of the grammar's language.

■ lr/report: Package report renders tables and conflict diagnostics for
terminal output.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parzival
