package cfg

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The canonical textbook expression grammar in LL(1) form.
func makeLL1ExprGrammar(t *testing.T) *Grammar {
	g, err := Parse("Expr", `
		E -> T E'
		E' -> + T E' | ε
		T -> F T'
		T' -> * F T' | ε
		F -> ( E ) | id
	`)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func terminalValues(g *Grammar, names ...string) map[int]bool {
	vals := make(map[int]bool)
	for _, n := range names {
		vals[g.SymbolByName(n).Value] = true
	}
	return vals
}

func expectSet(t *testing.T, ga *Analysis, which string, A *Symbol, want map[int]bool) {
	t.Helper()
	set := ga.First(A)
	if which == "FOLLOW" {
		set = ga.Follow(A)
	}
	if set.Len() != len(want) {
		t.Errorf("%s(%s) = %v, expected %d members", which, A.Name, set, len(want))
	}
	for v := range want {
		if !set.Has(v) {
			t.Errorf("%s(%s) = %v, expected it to contain %d", which, A.Name, set, v)
		}
	}
}

func TestAnalysisNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	ga := Analyze(g)
	for name, nullable := range map[string]bool{
		"E": false, "E'": true, "T": false, "T'": true, "F": false,
	} {
		if ga.Nullable(g.SymbolByName(name)) != nullable {
			t.Errorf("expected Nullable(%s) = %v", name, nullable)
		}
	}
	if ga.Nullable(g.SymbolByName("+")) {
		t.Errorf("terminals are never nullable")
	}
}

func TestAnalysisFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	ga := Analyze(g)
	first := terminalValues(g, "(", "id")
	expectSet(t, ga, "FIRST", g.SymbolByName("E"), first)
	expectSet(t, ga, "FIRST", g.SymbolByName("T"), first)
	expectSet(t, ga, "FIRST", g.SymbolByName("F"), first)
	eprime := terminalValues(g, "+")
	eprime[EpsilonType] = true
	expectSet(t, ga, "FIRST", g.SymbolByName("E'"), eprime)
	tprime := terminalValues(g, "*")
	tprime[EpsilonType] = true
	expectSet(t, ga, "FIRST", g.SymbolByName("T'"), tprime)
}

func TestAnalysisFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	ga := Analyze(g)
	followE := terminalValues(g, ")")
	followE[EOFType] = true
	expectSet(t, ga, "FOLLOW", g.SymbolByName("E"), followE)
	expectSet(t, ga, "FOLLOW", g.SymbolByName("E'"), followE)
	followT := terminalValues(g, "+", ")")
	followT[EOFType] = true
	expectSet(t, ga, "FOLLOW", g.SymbolByName("T"), followT)
	expectSet(t, ga, "FOLLOW", g.SymbolByName("T'"), followT)
	followF := terminalValues(g, "+", "*", ")")
	followF[EOFType] = true
	expectSet(t, ga, "FOLLOW", g.SymbolByName("F"), followF)
}

func TestAnalysisFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	ga := Analyze(g)
	seq := []*Symbol{g.SymbolByName("E'"), g.SymbolByName("T'")}
	f := ga.FirstOfSequence(seq)
	if !f.Has(EpsilonType) {
		t.Errorf("FIRST(E' T') should contain ε, is %v", f)
	}
	if !f.Has('+') || !f.Has('*') {
		t.Errorf("FIRST(E' T') should contain '+' and '*', is %v", f)
	}
	seq = []*Symbol{g.SymbolByName("E'"), g.SymbolByName("F")}
	f = ga.FirstOfSequence(seq)
	if f.Has(EpsilonType) {
		t.Errorf("FIRST(E' F) should not contain ε, is %v", f)
	}
	if f = ga.FirstOfSequence(nil); !f.Has(EpsilonType) || f.Len() != 1 {
		t.Errorf("FIRST of an empty sequence should be {ε}, is %v", f)
	}
}

func TestAnalysisFixpointReached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	ga := Analyze(g)
	// after Analyze, further passes must not change anything
	if ga.nullablePass() {
		t.Errorf("nullable computation did not reach its fixpoint")
	}
	if ga.firstPass() {
		t.Errorf("FIRST computation did not reach its fixpoint")
	}
	if ga.followPass() {
		t.Errorf("FOLLOW computation did not reach its fixpoint")
	}
}

func TestAnalysisConvergesOnRecursiveGrammars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	// recursive rules re-contribute subsets of an already stable FIRST-set
	// on every pass; the passes must report stability nonetheless
	for _, text := range []string{
		"S -> a S | b",
		"S -> a S b | ε",
		"E -> E + T | T\nT -> id",
	} {
		g, err := Parse("G", text)
		if err != nil {
			t.Fatal(err)
		}
		ga := Analyze(g)
		if ga.nullablePass() || ga.firstPass() || ga.followPass() {
			t.Errorf("analysis of %q did not reach its fixpoint", text)
		}
	}
}

func TestAnalysisTerminalsOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	ga := Analyze(g)
	names := ga.TerminalsOf(ga.First(g.SymbolByName("E'")))
	if len(names) != 1 || names[0] != "+" {
		t.Errorf("expected TerminalsOf to skip ε and name '+', got %v", names)
	}
}
