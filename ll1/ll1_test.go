package ll1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/scanner"
)

// The textbook expression grammar in LL(1) form, i.e. after left-recursion
// elimination.
func makeLL1ExprGrammar(t *testing.T) *cfg.Grammar {
	g, err := cfg.Parse("Expr", `
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

func makeExprParser(t *testing.T) (*Parser, *cfg.Grammar) {
	g := makeLL1ExprGrammar(t)
	gen := NewTableGenerator(cfg.Analyze(g))
	gen.CreateTable()
	if gen.HasConflicts {
		t.Fatalf("unexpected conflicts: %v", gen.Conflicts())
	}
	return NewParser(g, gen.Table()), g
}

func TestLL1TableEntries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	gen := NewTableGenerator(cfg.Analyze(g))
	gen.CreateTable()
	table := gen.Table()
	E := g.SymbolByName("E")
	Eprime := g.SymbolByName("E'")
	id := g.SymbolByName("id")
	// E expands via its only rule on 'id' and '('
	serial := table.Value(g.NonTermIndex(E), id.Value)
	if serial == table.NullValue() || g.Rule(int(serial)).LHS != E {
		t.Errorf("expected an E-rule at (E, id), got %d", serial)
	}
	if table.Value(g.NonTermIndex(E), '(') != serial {
		t.Errorf("expected the same E-rule at (E, '(')")
	}
	// no entry for E at '+'
	if table.Value(g.NonTermIndex(E), '+') != table.NullValue() {
		t.Errorf("unexpected entry at (E, '+')")
	}
	// the nullable E' expands to ε on its FOLLOW set, ')' and #eof
	serial = table.Value(g.NonTermIndex(Eprime), ')')
	if serial == table.NullValue() || !g.Rule(int(serial)).IsEpsilon() {
		t.Errorf("expected the ε-rule at (E', ')'), got %d", serial)
	}
	if table.Value(g.NonTermIndex(Eprime), cfg.EOFType) != serial {
		t.Errorf("expected the ε-rule at (E', #eof)")
	}
}

func TestLL1ConflictsForNonLL1Grammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	// left-recursive, hence not LL(1)
	g, err := cfg.Parse("Expr", "E -> E + T | T\nT -> id")
	if err != nil {
		t.Fatal(err)
	}
	gen := NewTableGenerator(cfg.Analyze(g))
	gen.CreateTable()
	if !gen.HasConflicts {
		t.Fatal("expected LL(1) conflicts for a left-recursive grammar")
	}
	c := gen.Conflicts()[0]
	if c.NonTerm.Name != "E" || len(c.Rules) < 2 {
		t.Errorf("unexpected conflict %v", c)
	}
	// the table keeps both competing entries
	v1, v2 := gen.Table().Values(g.NonTermIndex(c.NonTerm), c.Terminal.Value)
	if v1 == gen.Table().NullValue() || v2 == gen.Table().NullValue() {
		t.Errorf("conflicting cell should keep both rules, got (%d,%d)", v1, v2)
	}
}

func TestLL1ParserAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	p, g := makeExprParser(t)
	for _, input := range []string{
		"id", "id + id", "id * id", "id + id * id", "( id )", "( id + id ) * id",
	} {
		if _, err := p.Parse(scanner.LexemeTokenizer(g, input)); err != nil {
			t.Errorf("input %q rejected: %v", input, err)
		}
	}
}

func TestLL1ParserRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	p, g := makeExprParser(t)
	for _, input := range []string{
		"id +", "+ id", "id id", "( id", "",
	} {
		if _, err := p.Parse(scanner.LexemeTokenizer(g, input)); err == nil {
			t.Errorf("invalid input %q was accepted", input)
		}
	}
}

func TestLL1ParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	p, g := makeExprParser(t)
	tree, err := p.Parse(scanner.LexemeTokenizer(g, "id + id * id"))
	if err != nil {
		t.Fatal(err)
	}
	// the augmented start symbol is E'', as E' is taken by the grammar
	want := "(E'' (E (T (F id) T') (E' + (T (F id) (T' * (F id) T')) E')) #eof)"
	if got := tree.String(); got != want {
		t.Errorf("parse tree\n  got:  %s\n  want: %s", got, want)
	}
	if tree.Extent.Len() == 0 {
		t.Errorf("root extent should cover the input, is %v", tree.Extent)
	}
}

func TestLL1SyntaxErrorReporting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	p, g := makeExprParser(t)
	partial, err := p.Parse(scanner.LexemeTokenizer(g, "id + * id"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	serr, ok := err.(*parsekit.SyntaxError)
	if !ok {
		t.Fatalf("expected a *parsekit.SyntaxError, got %T", err)
	}
	expected := strings.Join(serr.Expected, " ")
	if !strings.Contains(expected, "id") || !strings.Contains(expected, "(") {
		t.Errorf("expected-set should contain 'id' and '(', got %v", serr.Expected)
	}
	if partial == nil || partial.Find("E") == nil {
		t.Errorf("expected the partially expanded tree")
	}
}

func TestLL1TableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.ll1")
	defer teardown()
	//
	g := makeLL1ExprGrammar(t)
	gen := NewTableGenerator(cfg.Analyze(g))
	gen.CreateTable()
	var buf bytes.Buffer
	TableAsHTML(gen, &buf)
	if buf.Len() == 0 {
		t.Errorf("LL(1) table HTML export is empty")
	}
}
