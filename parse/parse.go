/*
Package parse is a facade over the parser implementations of this module.

Clients pick a parsing strategy by a Variant value and receive a ready-made
parser for an analysed grammar. Table-driven variants (LL(1), LR(0),
SLR(1)) construct their tables on the fly; grammars whose tables contain
conflicts are rejected with a ConflictError listing every conflict, as
none of the deterministic drivers can handle ambiguous table cells. The
backtracking variant needs no tables and accepts any grammar.

Example:

    g, _ := cfg.Parse("G", "S -> a S b | ε")
    p, err := parse.Build(parse.SLR1, cfg.Analyze(g))
    if err != nil { … }    // e.g. *parse.ConflictError
    tree, err := p.Parse(scanner.LexemeTokenizer(g, "a a b b"))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parse

import (
	"fmt"
	"strings"

	"github.com/npillmayer/parsekit/backtrack"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/ll1"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/lr/slr"
	"github.com/npillmayer/parsekit/scanner"
	"github.com/npillmayer/parsekit/tree"
)

// Variant selects a parsing strategy.
type Variant int8

// The parsing strategies provided by this module. This set is closed:
// each variant is backed by a dedicated driver implementation.
const (
	LL1 Variant = iota + 1
	LR0
	SLR1
	Backtracking
)

func (v Variant) String() string {
	switch v {
	case LL1:
		return "LL(1)"
	case LR0:
		return "LR(0)"
	case SLR1:
		return "SLR(1)"
	case Backtracking:
		return "backtracking"
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// Parser is the common interface of all parser drivers: feed in a token
// stream, receive a parse tree or an error.
type Parser interface {
	Parse(scanner.Tokenizer) (*tree.Node, error)
}

// Conflict is a parse-table conflict. The concrete types are ll1.Conflict
// and lr.Conflict.
type Conflict interface {
	fmt.Stringer
}

// ConflictError is returned by Build when a grammar's parse tables contain
// conflicts for the chosen variant.
type ConflictError struct {
	Variant   Variant
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar is not %s: %d conflict(s)", e.Variant, len(e.Conflicts))
	for _, c := range e.Conflicts {
		b.WriteString("\n\t")
		b.WriteString(c.String())
	}
	return b.String()
}

// Build constructs a parser of the chosen variant for an analysed grammar.
// Table-driven variants return a ConflictError if the tables turn out to be
// ambiguous.
func Build(v Variant, ga *cfg.Analysis) (Parser, error) {
	switch v {
	case LL1:
		gen := ll1.NewTableGenerator(ga)
		gen.CreateTable()
		if gen.HasConflicts {
			return nil, conflictError(v, len(gen.Conflicts()), func(i int) Conflict {
				return gen.Conflicts()[i]
			})
		}
		return ll1.NewParser(ga.Grammar(), gen.Table()), nil
	case LR0:
		gen := lr.NewTableGenerator(ga)
		gen.CreateLR0Tables()
		if gen.HasConflicts {
			return nil, conflictError(v, len(gen.Conflicts()), func(i int) Conflict {
				return gen.Conflicts()[i]
			})
		}
		return slr.NewParser(ga.Grammar(), gen.GotoTable(), gen.ActionTable()), nil
	case SLR1:
		gen := lr.NewTableGenerator(ga)
		gen.CreateTables()
		if gen.HasConflicts {
			return nil, conflictError(v, len(gen.Conflicts()), func(i int) Conflict {
				return gen.Conflicts()[i]
			})
		}
		return slr.NewParser(ga.Grammar(), gen.GotoTable(), gen.ActionTable()), nil
	case Backtracking:
		return backtrack.NewParser(ga.Grammar()), nil
	}
	return nil, fmt.Errorf("unknown parser variant %v", v)
}

func conflictError(v Variant, n int, at func(int) Conflict) *ConflictError {
	e := &ConflictError{Variant: v}
	for i := 0; i < n; i++ {
		e.Conflicts = append(e.Conflicts, at(i))
	}
	return e
}
