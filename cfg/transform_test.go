package cfg

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeLeftRecExprGrammar(t *testing.T) *Grammar {
	g, err := Parse("Expr", `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func altsFor(g *Grammar, name string) []string {
	var alts []string
	for _, r := range g.RulesFor(g.SymbolByName(name)) {
		var syms []string
		for _, sym := range r.RHS() {
			syms = append(syms, sym.Name)
		}
		alts = append(alts, strings.Join(syms, " "))
	}
	return alts
}

func expectAlts(t *testing.T, g *Grammar, name string, want ...string) {
	t.Helper()
	alts := altsFor(g, name)
	if len(alts) != len(want) {
		t.Fatalf("expected %s to have alternatives %v, got %v", name, want, alts)
	}
	for i, alt := range alts {
		if alt != want[i] {
			t.Errorf("expected %s-alternative #%d to be %q, got %q", name, i, want[i], alt)
		}
	}
}

func TestEliminateLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLeftRecExprGrammar(t)
	gnew, err := EliminateLeftRecursion(g)
	if err != nil {
		t.Fatal(err)
	}
	expectAlts(t, gnew, "E", "T E'")
	expectAlts(t, gnew, "E'", "+ T E'", "")
	expectAlts(t, gnew, "T", "F T'")
	expectAlts(t, gnew, "T'", "* F T'", "")
	expectAlts(t, gnew, "F", "( E )", "id")
	// the input grammar is untouched
	expectAlts(t, g, "E", "E + T", "T")
	// terminal token values survive the transformation
	if gnew.SymbolByName("id").Value != g.SymbolByName("id").Value {
		t.Errorf("terminal 'id' changed its token value")
	}
}

func TestEliminateIndirectLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	// indirectly left-recursive: S -> A a, A -> S b | c
	g, err := Parse("G", "S -> A a\nA -> S b | c")
	if err != nil {
		t.Fatal(err)
	}
	gnew, err := EliminateLeftRecursion(g)
	if err != nil {
		t.Fatal(err)
	}
	// substituting S in A -> S b yields A -> A a b | c, then the
	// immediate rewrite kicks in
	expectAlts(t, gnew, "S", "A a")
	expectAlts(t, gnew, "A", "c A'")
	expectAlts(t, gnew, "A'", "a b A'", "")
}

func TestEliminateAllRecursiveAlternatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	// every A-alternative is left-recursive; A derives nothing finite, but
	// the rewrite must still terminate and produce A -> A'
	g, err := Parse("G", "S -> A b\nA -> A a")
	if err != nil {
		t.Fatal(err)
	}
	gnew, err := EliminateLeftRecursion(g)
	if err != nil {
		t.Fatal(err)
	}
	expectAlts(t, gnew, "A", "A'")
	expectAlts(t, gnew, "A'", "a A'", "")
}

func TestEliminateLeftRecursionLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g, err := Parse("G", "A -> b | c\nB -> A x") // no LHS 'A' first: substitution source
	if err != nil {
		t.Fatal(err)
	}
	_, err = eliminateLeftRecursion(g, groupsOf(g), 0)
	if err == nil {
		t.Fatal("expected a TransformError for limit 0")
	}
	if _, ok := err.(*TransformError); !ok {
		t.Errorf("expected a *TransformError, got %T", err)
	}
}

func TestLeftFactor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	// dangling-else style grammar
	g, err := Parse("G", "S -> i E t S e S | i E t S | a\nE -> b")
	if err != nil {
		t.Fatal(err)
	}
	gnew, err := LeftFactor(g)
	if err != nil {
		t.Fatal(err)
	}
	expectAlts(t, gnew, "S", "a", "i E t S S'")
	expectAlts(t, gnew, "S'", "e S", "")
	expectAlts(t, gnew, "E", "b")
}

func TestLeftFactorLongestPrefixWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g, err := Parse("G", "S -> a b c | a b d | a e")
	if err != nil {
		t.Fatal(err)
	}
	gnew, err := LeftFactor(g)
	if err != nil {
		t.Fatal(err)
	}
	// first 'a b' is factored, then the remaining prefix 'a'
	expectAlts(t, gnew, "S", "a S''")
	expectAlts(t, gnew, "S''", "e", "b S'")
	expectAlts(t, gnew, "S'", "c", "d")
}

func TestLeftFactorFixpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t) // already prefix-free
	gnew, err := LeftFactor(g)
	if err != nil {
		t.Fatal(err)
	}
	if gnew.Size() != g.Size() {
		t.Errorf("prefix-free grammar changed size: %d -> %d", g.Size(), gnew.Size())
	}
}

func TestLeftFactorLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g, err := Parse("G", "S -> a b | a c")
	if err != nil {
		t.Fatal(err)
	}
	_, err = leftFactor(g, groupsOf(g), 0)
	if err == nil {
		t.Fatal("expected a TransformError for limit 0")
	}
	if _, ok := err.(*TransformError); !ok {
		t.Errorf("expected a *TransformError, got %T", err)
	}
}

func TestNeedsLL1Transform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	if !NeedsLL1Transform(makeLeftRecExprGrammar(t)) {
		t.Errorf("left-recursive grammar should need transformation")
	}
	if NeedsLL1Transform(makeLL1ExprGrammar(t)) {
		t.Errorf("LL(1) grammar should not need transformation")
	}
}
