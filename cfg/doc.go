/*
Package cfg implements a model for context-free grammars, together with
grammar transformations and static grammar analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := cfg.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->

The builder augments every grammar with a start rule

    S' ::= S #eof

as rule no. 0. Clients' rules keep their declaration order and receive
serial numbers 1…n. Declaration order is significant: it drives the
order in which backtracking parsers try alternatives and the reporting
order of parse-table conflicts.

Alternatively, grammars may be read from a plain-text notation:

    g, err := cfg.Parse("G", `
        E -> E + T | T
        T -> T * F | F
        F -> ( E ) | id
    `)

Grammar Transformation

Top-down parsers cannot cope with left recursion or common prefixes of
alternatives. EliminateLeftRecursion and LeftFactor derive new grammars
with these defects removed, leaving the input grammar untouched.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an Analysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable symbols.

Although FIRST and FOLLOW-sets are mainly intended to be used for internal
purposes of constructing the parser tables, methods for getting FIRST(N)
and FOLLOW(N) of non-terminals are defined to be public.

    ga := cfg.Analyze(g)  // analyser for grammar above
    ga.Grammar().EachNonTerminal(
        func(N *cfg.Symbol) interface{} {                     // ad-hoc mapper function
            fmt.Printf("FIRST(%s) = %v", N.Name, ga.First(N)) // get FIRST-set for N
            return nil
        })

    // Output:
    FIRST(S) = {1 2 3}         // terminal token values as int, 1 = 'a'
    FIRST(A) = {0 2 3}         // 0 = epsilon
    FIRST(B) = {0 2}           // 2 = 'b'
    FIRST(D) = {0 3}           // 3 = 'd'

Analysis results are immutable snapshots: they are computed once per
grammar instance and may be shared freely afterwards.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsekit.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.cfg")
}
