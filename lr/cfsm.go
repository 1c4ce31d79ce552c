package lr

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr/iteratable"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure computes the closure of a single LR item.
func (lrgen *TableGenerator) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return lrgen.closureSet(S)
}

// closureSet computes the closure of a set of LR items: for every item with
// a non-terminal A after the dot, the start items of all A-rules join the
// set. New items are visited too, until the set is saturated.
func (lrgen *TableGenerator) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()           // get symbol A after dot
		if A != nil && !A.IsTerminal() { // A is non-terminal
			R := startItemsFor(lrgen.g, A)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

func (lrgen *TableGenerator) gotoSet(closure *iteratable.Set, A *cfg.Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

func (lrgen *TableGenerator) gotoSetClosure(S *iteratable.Set, A *cfg.Symbol) *iteratable.Set {
	gotoset := lrgen.gotoSet(S, A)
	gclosure := lrgen.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(S), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID          int             // serial ID of this state
	items       *iteratable.Set // configuration items within this state
	Accept      bool            // is this an accepting state?
	fingerprint string          // hash over the contained items
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *cfg.Symbol
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	s.fingerprint = fingerprint(s.items)
	return s
}

// Items returns the LR items of a state, sorted by rule number and dot
// position.
func (s *CFSMState) Items() []Item {
	return sortedItems(s.items)
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// itemSetHash is the structure the state fingerprint is computed over:
// (rule serial, dot) pairs in canonical order.
type itemSetHash struct {
	Items [][2]int `version:"1"`
}

// fingerprint computes a content hash over an item set, independent of
// insertion order. States with equal item sets get equal fingerprints;
// true set equality is re-checked before states are unified.
func fingerprint(iset *iteratable.Set) string {
	h := itemSetHash{}
	for _, i := range sortedItems(iset) {
		h.Items = append(h.Items, [2]int{i.rule.Serial, i.dot})
	}
	return fmt.Sprintf("%x", structhash.Md5(h, 1))
}

func sortedItems(iset *iteratable.Set) []Item {
	items := make([]Item, 0, iset.Size())
	for _, x := range iset.Values() {
		items = append(items, asItem(x))
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].rule.Serial == items[b].rule.Serial {
			return items[a].dot < items[b].dot
		}
		return items[a].rule.Serial < items[b].rule.Serial
	})
	return items
}

// Create an edge
func edge(from, to *CFSMState, label *cfg.Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for an LR grammar, i.e.
// the LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some
// methods defined on it, e.g, for debugging purposes, or even to compute
// your own tables from it.
type CFSM struct {
	g       *cfg.Grammar    // this CFSM is for Grammar g
	states  *treeset.Set    // all the states
	edges   *arraylist.List // all the edges between states
	byHash  map[string][]*CFSMState
	S0      *CFSMState // start state
	cfsmIds int        // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *cfg.Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.byHash = make(map[string][]*CFSMState)
	return c
}

// Size returns the number of states of the CFSM.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// EachState calls a function for every state, in state-ID order.
func (c *CFSM) EachState(f func(s *CFSMState)) {
	it := c.states.Iterator()
	for it.Next() {
		f(it.Value().(*CFSMState))
	}
}

// addState adds a state for an item set to the CFSM, unless a state with
// an equal item set is already present. Candidates are located by their
// fingerprint, then confirmed by set equality.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	if s := c.findStateByItems(iset); s != nil {
		return s, false
	}
	s := state(c.cfsmIds, iset)
	c.cfsmIds++
	c.states.Add(s)
	c.byHash[s.fingerprint] = append(c.byHash[s.fingerprint], s)
	return s, true
}

// findStateByItems finds a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	for _, s := range c.byHash[fingerprint(iset)] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *cfg.Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// buildCFSM constructs the characteristic finite state machine for the
// grammar. State 0 is the closure of the start item of the augmented rule;
// successor states are explored via goto-sets over all grammar symbols.
// Empty goto-sets do not become states.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	start, _ := StartItem(G.Rule(0))
	closure0 := lrgen.closure(start)
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		G.EachSymbol(func(A *cfg.Symbol) interface{} {
			gotoset := lrgen.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				return nil
			}
			snew, isnew := cfsm.addState(gotoset)
			if isnew {
				S.Add(snew)
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Debugf("CFSM has %d states", cfsm.states.Size())
	return cfsm
}

// === Export ================================================================

// Digraph is a plain snapshot of the CFSM's graph structure, for clients
// which want to render or inspect the automaton without walking internal
// container types.
type Digraph struct {
	States []DigraphState
	Edges  []DigraphEdge
}

// DigraphState is one state of a CFSM snapshot.
type DigraphState struct {
	ID     int
	Accept bool
	Items  []string
}

// DigraphEdge is one transition of a CFSM snapshot.
type DigraphEdge struct {
	From, To int
	Label    string
}

// Snapshot returns a plain-data snapshot of the CFSM, with states in
// ID order and items listed canonically.
func (c *CFSM) Snapshot() *Digraph {
	d := &Digraph{}
	c.EachState(func(s *CFSMState) {
		ds := DigraphState{ID: s.ID, Accept: s.Accept}
		for _, i := range s.Items() {
			ds.Items = append(ds.Items, i.String())
		}
		d.States = append(d.States, ds)
	})
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		d.Edges = append(d.Edges, DigraphEdge{From: e.from.ID, To: e.to.ID, Label: e.label.Name})
	}
	return d
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	if _, err := io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`); err != nil {
		return err
	}
	var err error
	c.EachState(func(s *CFSMState) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s))
	})
	if err != nil {
		return err
	}
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if _, err = fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n",
			e.from.ID, e.to.ID, e.label.Name); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "}\n")
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *CFSMState) string {
	var lines []string
	for _, i := range s.Items() {
		lines = append(lines, escapeDot(i.String()))
	}
	return strings.Join(lines, "\\n")
}

var dotEscaper = strings.NewReplacer("[", "\\[", "]", "\\]", "\"", "\\\"", "|", "\\|", "{", "\\{", "}", "\\}")

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
