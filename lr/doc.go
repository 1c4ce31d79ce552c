/*
Package lr implements LR parser table construction.

The input is an analysed grammar (package cfg). From it, a characteristic
finite state machine (CFSM) is built: the LR(0) state diagram over the
grammar's items. The CFSM is then transformed into a GOTO table and an
ACTION table, either without lookahead (LR(0)) or with FOLLOW-set
lookahead (SLR(1)). The CFSM is not thrown away, but made available to
the client. This is intended for debugging purposes, but may be useful
for error recovery, too. It can be exported to Graphviz's Dot-format.

Example:

    g, _ := cfg.Parse("G", "S -> S a | b")
    ga := cfg.Analyze(g)
    lrgen := lr.NewTableGenerator(ga)
    lrgen.CreateTables()              // CFSM, GOTO table, SLR(1) ACTION table
    if lrgen.HasConflicts {
        for _, c := range lrgen.Conflicts() {
            fmt.Println(c)
        }
    }

Table construction never resolves conflicts silently: a conflicting table
cell keeps both actions and the conflict is reported, so that clients can
decide what to do with the grammar.

The parser driver interpreting the tables lives in sub-package slr.

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

// tracer traces with key 'parsekit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.lr")
}
