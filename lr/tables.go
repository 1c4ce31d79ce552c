package lr

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr/sparse"
)

// Actions for parser action tables. Reduce actions are encoded as the
// serial number of the rule to reduce; serial 0 never appears, as the
// completed start rule is represented by the accept action instead.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Conflicts =============================================================

// ConflictKind classifies a parser table conflict.
type ConflictKind int8

// Conflict kinds: two actions competing for one table cell.
const (
	ShiftReduce ConflictKind = iota + 1
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict describes a conflict in an ACTION table: a state and lookahead
// terminal for which more than one action is possible. Conflicts are
// reported, never resolved silently; the table keeps all competing entries.
type Conflict struct {
	State    int          // CFSM state ID
	Terminal *cfg.Symbol  // lookahead terminal
	Kind     ConflictKind //
	Rules    []int        // serials of the rules competing for the cell
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d at lookahead %q, rules %v",
		c.Kind, c.State, c.Terminal.Name, c.Rules)
}

// === Table Generation ======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a grammar G, then an Analysis-object for G, and
// then a table generator. TableGenerator.CreateTables() constructs the CFSM
// and parser tables for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *cfg.Grammar
	ga           *cfg.Analysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed)
// grammar.
func NewTableGenerator(ga *cfg.Analysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// Grammar returns the grammar the tables are built for.
func (lrgen *TableGenerator) Grammar() *cfg.Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have
// to be built by calling CreateTables() previously (or a separate call to
// BuildGotoTable).
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables
// have to be built by calling CreateTables() previously (or a separate call
// to BuildSLR1ActionTable or BuildLR0ActionTable).
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns the conflicts found during ACTION table construction,
// in (state, lookahead) order.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the necessary data structures for an SLR(1) parser:
// the CFSM, the GOTO table and the SLR(1) ACTION table.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.dfa = lrgen.CFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildSLR1ActionTable()
}

// CreateLR0Tables creates the data structures for an LR(0) parser: the
// CFSM, the GOTO table and the lookahead-less LR(0) ACTION table.
func (lrgen *TableGenerator) CreateLR0Tables() {
	lrgen.dfa = lrgen.CFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildLR0ActionTable()
}

// AcceptingStates returns all states of the CFSM from which an accept is
// possible. Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	var acc []int
	lrgen.dfa.EachState(func(state *CFSMState) {
		if !state.Accept {
			return
		}
		it := lrgen.dfa.edges.Iterator()
		for it.Next() {
			e := it.Value().(*cfsmEdge)
			if e.to.ID == state.ID {
				acc = append(acc, e.from.ID)
			}
		}
	})
	return unique(acc)
}

// ===========================================================================

// newTable allocates a table sized by the CFSM's state count and the
// grammar's symbol-value extent.
func (lrgen *TableGenerator) newTable(tname string) *Table {
	statescnt := lrgen.dfa.states.Size()
	mintok, maxtok := lrgen.g.TokenTypeExtent()
	extent := maxtok - mintok + 1
	tracer().Infof("%s table of size %d x (%d-%d=%d)", tname, statescnt, maxtok, mintok, extent)
	return &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
}

// BuildGotoTable builds the GOTO table. This is normally not called
// directly, but rather via CreateTables().
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	gototable := lrgen.newTable("GOTO")
	lrgen.dfa.EachState(func(state *CFSMState) {
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.set(state.ID, e.label.Value, int32(e.to.ID))
		}
	})
	return gototable
}

// BuildLR0ActionTable constructs the LR(0) ACTION table: no lookahead, a
// completed item installs its reduce action for every terminal. This method
// is not called by CreateTables(), as we normally use an SLR(1) parser and
// therefore an action table with lookahead included.
func (lrgen *TableGenerator) BuildLR0ActionTable() (*Table, bool) {
	actions := lrgen.newTable("ACTION.0")
	return lrgen.buildActionTable(actions, false)
}

// BuildSLR1ActionTable constructs the SLR(1) ACTION table. This method is
// normally not called by clients, but rather via CreateTables(). It builds
// an action table including lookahead (using the FOLLOW-sets created by the
// grammar analysis).
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*Table, bool) {
	actions := lrgen.newTable("ACTION.1")
	return lrgen.buildActionTable(actions, true)
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry (an accept entry for the end-of-input marker). If an item's dot is
// behind the complete RHS of its rule, then
// - for the LR(0) case: we produce a reduce-entry for every terminal
// - for the SLR case: we produce a reduce-entry for each terminal
//   from FOLLOW(LHS).
//
// The table is returned as a sparse matrix, where every entry may consist
// of up to 2 entries, thus preserving shift/reduce- and reduce/reduce-
// conflicts. Conflicting cells are additionally collected as Conflict
// values, one per (state, lookahead) position.
//
// Shift entries are represented as -1, accept as -2. Reduce entries are
// encoded as the serial no. of the grammar rule to reduce.
func (lrgen *TableGenerator) buildActionTable(actions *Table, slr1 bool) (*Table, bool) {
	lrgen.conflicts = nil
	recorded := make(map[[2]int]int) // (state, tokval) -> conflict index
	lrgen.dfa.EachState(func(state *CFSMState) {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, item := range state.Items() {
			A := item.PeekSymbol()
			if A != nil && A.IsTerminal() {
				// shift on lookahead A; accept in place of shifting the
				// end-marker of the augmented start rule
				a := int32(ShiftAction)
				if A.IsEOF() && item.rule.Serial == 0 {
					a = AcceptAction
				}
				lrgen.installAction(actions, recorded, state, A, a)
			}
			if A == nil && item.rule.Serial != 0 {
				// completed item: reduce
				serial := int32(item.rule.Serial)
				if slr1 {
					follow := lrgen.ga.Follow(item.rule.LHS)
					for _, la := range follow.AppendTo(nil) {
						t := lrgen.g.TerminalByValue(la)
						lrgen.installAction(actions, recorded, state, t, serial)
					}
				} else {
					lrgen.g.EachTerminal(func(t *cfg.Symbol) interface{} {
						lrgen.installAction(actions, recorded, state, t, serial)
						return nil
					})
				}
			}
		}
	})
	sort.Slice(lrgen.conflicts, func(a, b int) bool {
		ca, cb := lrgen.conflicts[a], lrgen.conflicts[b]
		if ca.State == cb.State {
			return ca.Terminal.Value < cb.Terminal.Value
		}
		return ca.State < cb.State
	})
	return actions, len(lrgen.conflicts) > 0
}

// installAction enters an action into a table cell, detecting conflicts
// with an already present action. A repeated identical action is not a
// conflict.
func (lrgen *TableGenerator) installAction(actions *Table, recorded map[[2]int]int,
	state *CFSMState, la *cfg.Symbol, action int32) {
	//
	present := actions.Value(state.ID, la.Value)
	actions.add(state.ID, la.Value, action)
	if present == actions.NullValue() || present == action {
		return
	}
	tracer().Debugf("    %s is 2nd action at la=%q", valstring(action, actions), la.Name)
	key := [2]int{state.ID, la.Value}
	inx, ok := recorded[key]
	if !ok {
		kind := ShiftReduce
		if present >= 0 && action >= 0 {
			kind = ReduceReduce
		}
		lrgen.conflicts = append(lrgen.conflicts, Conflict{
			State:    state.ID,
			Terminal: la,
			Kind:     kind,
		})
		inx = len(lrgen.conflicts) - 1
		recorded[key] = inx
		if present >= 0 {
			lrgen.conflicts[inx].Rules = append(lrgen.conflicts[inx].Rules, int(present))
		}
	}
	c := &lrgen.conflicts[inx]
	if action >= 0 {
		c.Rules = append(c.Rules, int(action))
		if present >= 0 {
			c.Kind = ReduceReduce
		}
	}
}

// === Tables ================================================================

// Table is a sparse parser table, either a GOTO table or an ACTION table.
// Rows are CFSM state IDs, columns are symbol values, shifted by the lowest
// symbol value of the grammar.
type Table struct {
	matrix *sparse.IntMatrix
	mincol int // lowest symbol value => offset for access
}

func (t *Table) add(i int, tokval int, val int32) {
	j := tokval - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.add() with index < 0: %d", j))
	}
	t.matrix.Add(i, j, val)
}

func (t *Table) set(i int, tokval int, val int32) {
	j := tokval - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.set() with index < 0: %d", j))
	}
	t.matrix.Set(i, j, val)
}

// NullValue returns the empty-cell marker of this table.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry for a state and a symbol value.
func (t *Table) Value(i int, tokval int) int32 {
	j := tokval - t.mincol
	if j < 0 {
		return t.NullValue()
	}
	return t.matrix.Value(i, j)
}

// Values returns both entries for a state and a symbol value. The secondary
// entry is the null-value except for conflicting cells.
func (t *Table) Values(i int, tokval int) (int32, int32) {
	j := tokval - t.mincol
	if j < 0 {
		return t.NullValue(), t.NullValue()
	}
	return t.matrix.Values(i, j)
}

// === Exports ===============================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports an ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table, w io.Writer) {
	var symvec []*cfg.Symbol
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	lrgen.g.EachSymbol(func(A *cfg.Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
		symvec = append(symvec, A)
		return nil
	})
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	lrgen.dfa.EachState(func(state *CFSMState) {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			v1, v2 := table.Values(state.ID, A.Value)
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	})
	io.WriteString(w, "</table></body></html>\n")
}

// ----------------------------------------------------------------------

func unique(in []int) []int { // from slice tricks
	if len(in) == 0 {
		return in
	}
	sort.Ints(in)
	j := 0
	for i := 1; i < len(in); i++ {
		if in[j] == in[i] {
			continue
		}
		j++
		in[j] = in[i] // only set what is required
	}
	return in[:j+1]
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}
