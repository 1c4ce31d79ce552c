/*
Package ll1 provides LL(1) parser table construction and a table-driven
top-down parser.

The input is an analysed grammar (package cfg). Table construction enters,
for every rule A -> α, the rule's serial number at (A, a) for every
terminal a in FIRST(α), and additionally at (A, b) for every terminal b in
FOLLOW(A) if α is nullable. A cell receiving two different rules is an
LL(1) conflict: the table keeps both entries and the conflict is reported,
never resolved silently. Grammars with left recursion or common prefixes
will produce conflicts; see the transformations in package cfg.

Example:

    g, _ := cfg.Parse("G", `
        E -> T E'
        E' -> + T E' | ε
        T -> id
    `)
    gen := ll1.NewTableGenerator(cfg.Analyze(g))
    gen.CreateTable()
    if !gen.HasConflicts {
        p := ll1.NewParser(g, gen.Table())
        tree, err := p.Parse(scanner.LexemeTokenizer(g, "id + id"))
        …
    }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr/sparse"
)

// tracer traces with key 'parsekit.ll1'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.ll1")
}

// Conflict describes an LL(1) table conflict: a non-terminal and lookahead
// terminal for which more than one rule is applicable.
type Conflict struct {
	NonTerm  *cfg.Symbol // row non-terminal
	Terminal *cfg.Symbol // lookahead terminal
	Rules    []int       // serials of the rules competing for the cell
}

func (c Conflict) String() string {
	return fmt.Sprintf("LL(1) conflict for %s at lookahead %q, rules %v",
		c.NonTerm.Name, c.Terminal.Name, c.Rules)
}

// Table is a sparse LL(1) parse table. Rows are non-terminal indices (see
// cfg.Grammar.NonTermIndex), columns are terminal token values, shifted by
// the lowest symbol value of the grammar. Entries are rule serials.
type Table struct {
	matrix *sparse.IntMatrix
	mincol int
}

func (t *Table) add(ntidx int, tokval int, serial int32) {
	j := tokval - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("ll1.Table.add() with index < 0: %d", j))
	}
	t.matrix.Add(ntidx, j, serial)
}

// NullValue returns the empty-cell marker of this table.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the rule serial for a non-terminal index and a lookahead
// token value, or NullValue.
func (t *Table) Value(ntidx int, tokval int) int32 {
	j := tokval - t.mincol
	if j < 0 {
		return t.NullValue()
	}
	return t.matrix.Value(ntidx, j)
}

// Values returns both entries for a non-terminal index and a lookahead
// token value. The secondary entry is the null-value except for
// conflicting cells.
func (t *Table) Values(ntidx int, tokval int) (int32, int32) {
	j := tokval - t.mincol
	if j < 0 {
		return t.NullValue(), t.NullValue()
	}
	return t.matrix.Values(ntidx, j)
}

// TableGenerator is a generator object to construct LL(1) parser tables.
// Clients create a grammar G, then an Analysis-object for G, and then a
// table generator. TableGenerator.CreateTable() constructs the parse table
// for a top-down parser recognizing grammar G.
type TableGenerator struct {
	g            *cfg.Grammar
	ga           *cfg.Analysis
	table        *Table
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously
// analysed) grammar.
func NewTableGenerator(ga *cfg.Analysis) *TableGenerator {
	return &TableGenerator{g: ga.Grammar(), ga: ga}
}

// Grammar returns the grammar the table is built for.
func (gen *TableGenerator) Grammar() *cfg.Grammar {
	return gen.g
}

// Table returns the LL(1) parse table. The table has to be built by calling
// CreateTable() previously.
func (gen *TableGenerator) Table() *Table {
	if gen.table == nil {
		tracer().Errorf("table not yet initialized")
	}
	return gen.table
}

// Conflicts returns the conflicts found during table construction, in rule
// order.
func (gen *TableGenerator) Conflicts() []Conflict {
	return gen.conflicts
}

// CreateTable builds the LL(1) parse table for the grammar.
func (gen *TableGenerator) CreateTable() {
	mintok, maxtok := gen.g.TokenTypeExtent()
	extent := maxtok - mintok + 1
	rows := gen.g.NonTermCount()
	tracer().Infof("LL(1) table of size %d x (%d-%d=%d)", rows, maxtok, mintok, extent)
	gen.table = &Table{
		matrix: sparse.NewIntMatrix(rows, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
	gen.conflicts = nil
	recorded := make(map[[2]int]int) // (ntidx, tokval) -> conflict index
	gen.g.EachRule(func(r *cfg.Rule) {
		first := gen.ga.FirstOfSequence(r.RHS())
		for _, v := range first.AppendTo(nil) {
			if v == cfg.EpsilonType {
				continue
			}
			gen.install(recorded, r, v)
		}
		if first.Has(cfg.EpsilonType) {
			for _, v := range gen.ga.Follow(r.LHS).AppendTo(nil) {
				gen.install(recorded, r, v)
			}
		}
	})
	gen.HasConflicts = len(gen.conflicts) > 0
}

// install enters a rule into the table cell for its LHS and a lookahead
// token value, detecting conflicts with an already present rule.
func (gen *TableGenerator) install(recorded map[[2]int]int, r *cfg.Rule, tokval int) {
	ntidx := gen.g.NonTermIndex(r.LHS)
	present := gen.table.Value(ntidx, tokval)
	gen.table.add(ntidx, tokval, int32(r.Serial))
	if present == gen.table.NullValue() || present == int32(r.Serial) {
		return
	}
	terminal := gen.g.TerminalByValue(tokval)
	tracer().Debugf("LL(1) conflict at (%s, %s): rules %d and %d",
		r.LHS.Name, terminal.Name, present, r.Serial)
	key := [2]int{ntidx, tokval}
	inx, ok := recorded[key]
	if !ok {
		gen.conflicts = append(gen.conflicts, Conflict{
			NonTerm:  r.LHS,
			Terminal: terminal,
			Rules:    []int{int(present)},
		})
		inx = len(gen.conflicts) - 1
		recorded[key] = inx
	}
	gen.conflicts[inx].Rules = append(gen.conflicts[inx].Rules, r.Serial)
}

// TableAsHTML exports an LL(1) parse table in HTML-format.
func TableAsHTML(gen *TableGenerator, w io.Writer) {
	if gen.table == nil {
		tracer().Errorf("LL(1) table not yet created, cannot export to HTML")
		return
	}
	var terms []*cfg.Symbol
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table of size = %d<p>", gen.table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	gen.g.EachTerminal(func(t *cfg.Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", t))
		terms = append(terms, t)
		return nil
	})
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	gen.g.EachNonTerminal(func(A *cfg.Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", A.Name))
		for _, t := range terms {
			v1, v2 := gen.table.Values(gen.g.NonTermIndex(A), t.Value)
			if v1 == gen.table.NullValue() {
				td = "&nbsp;"
			} else if v2 == gen.table.NullValue() {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
		return nil
	})
	io.WriteString(w, "</table></body></html>\n")
}
