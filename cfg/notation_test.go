package cfg

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNotationExprGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g, err := Parse("Expr", `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 7 { // 6 productions + augmented rule
		t.Errorf("expected 7 rules, got %d", g.Size())
	}
	if g.Start().Name != "E" {
		t.Errorf("expected start symbol E, got %q", g.Start().Name)
	}
	for _, name := range []string{"E", "T", "F"} {
		if sym := g.SymbolByName(name); sym == nil || sym.IsTerminal() {
			t.Errorf("expected %q to be a non-terminal", name)
		}
	}
	if plus := g.SymbolByName("+"); plus == nil || plus.Value != '+' {
		t.Errorf("single-rune terminal '+' should carry its rune value")
	}
	id := g.SymbolByName("id")
	if id == nil || !id.IsTerminal() {
		t.Fatalf("expected terminal 'id'")
	}
	if id.Value < namedTermBase {
		t.Errorf("named terminal 'id' has value %d, expected >= %d", id.Value, namedTermBase)
	}
}

func TestNotationDeterministicValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	text := "S -> id num | num id"
	g1, err := Parse("G", text)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Parse("G", text)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"id", "num"} {
		if g1.SymbolByName(name).Value != g2.SymbolByName(name).Value {
			t.Errorf("terminal %q received different values on repeated parses", name)
		}
	}
}

func TestNotationEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g, err := Parse("G", "S -> a S | ε")
	if err != nil {
		t.Fatal(err)
	}
	rules := g.RulesFor(g.SymbolByName("S"))
	if len(rules) != 2 || !rules[1].IsEpsilon() {
		t.Errorf("expected second S-rule to be an epsilon rule")
	}
	// an empty alternative means epsilon, too
	g, err = Parse("G", "S -> a S |")
	if err != nil {
		t.Fatal(err)
	}
	rules = g.RulesFor(g.SymbolByName("S"))
	if len(rules) != 2 || !rules[1].IsEpsilon() {
		t.Errorf("expected empty alternative to read as epsilon")
	}
}

func TestNotationErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	if _, err := Parse("G", "S a b"); err == nil {
		t.Errorf("expected error for line without '->'")
	}
	if _, err := Parse("G", "S T -> a"); err == nil {
		t.Errorf("expected error for multi-symbol LHS")
	}
	if _, err := Parse("G", "S -> a ε"); err == nil {
		t.Errorf("expected error for ε inside an alternative")
	}
	if _, err := Parse("G", "   "); err == nil {
		t.Errorf("expected error for empty grammar")
	}
}

func TestNotationSymbolSplitting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.cfg")
	defer teardown()
	//
	g, err := Parse("G", "F -> (E)") // no spaces around parentheses
	if err != nil {
		t.Fatal(err)
	}
	rhs := g.RulesFor(g.SymbolByName("F"))[0].RHS()
	if len(rhs) != 3 {
		t.Fatalf("expected '(E)' to split into 3 symbols, got %d", len(rhs))
	}
	if rhs[0].Name != "(" || rhs[1].Name != "E" || rhs[2].Name != ")" {
		t.Errorf("unexpected split: %v", g.RulesFor(g.SymbolByName("F"))[0])
	}
}
