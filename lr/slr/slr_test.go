package slr

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/scanner"
)

func makeExprParser(t *testing.T) (*Parser, *cfg.Grammar) {
	g, err := cfg.Parse("Expr", `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if err != nil {
		t.Fatal(err)
	}
	lrgen := lr.NewTableGenerator(cfg.Analyze(g))
	lrgen.CreateTables()
	if lrgen.HasConflicts {
		t.Fatalf("unexpected conflicts: %v", lrgen.Conflicts())
	}
	return NewParser(g, lrgen.GotoTable(), lrgen.ActionTable()), g
}

func TestSLRParserAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	p, g := makeExprParser(t)
	for _, input := range []string{
		"id", "id + id", "id * id", "id + id * id", "( id )",
		"( id + id ) * id", "id + id + id + id",
	} {
		tree, err := p.Parse(scanner.LexemeTokenizer(g, input))
		if err != nil {
			t.Errorf("input %q rejected: %v", input, err)
			continue
		}
		if tree == nil || tree.Sym.Name != "E'" {
			t.Errorf("input %q: expected tree rooted at E', got %v", input, tree)
		}
	}
}

func TestSLRParserRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	p, g := makeExprParser(t)
	for _, input := range []string{
		"id +", "+ id", "id id", "( id", "id )", "",
	} {
		if _, err := p.Parse(scanner.LexemeTokenizer(g, input)); err == nil {
			t.Errorf("invalid input %q was accepted", input)
		}
	}
}

func TestSLRParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	p, g := makeExprParser(t)
	tree, err := p.Parse(scanner.LexemeTokenizer(g, "id + id * id"))
	if err != nil {
		t.Fatal(err)
	}
	// '*' binds tighter than '+': the right summand holds the product
	want := "(E' (E (E (T (F id))) + (T (T (F id)) * (F id))) #eof)"
	if got := tree.String(); got != want {
		t.Errorf("parse tree\n  got:  %s\n  want: %s", got, want)
	}
	if span := tree.Extent; span.Len() == 0 {
		t.Errorf("tree root should cover the input, extent is %v", span)
	}
}

func TestSLRSyntaxErrorReporting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
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
	// after 'id +' the parser expects the start of a term
	expected := strings.Join(serr.Expected, " ")
	if !strings.Contains(expected, "id") || !strings.Contains(expected, "(") {
		t.Errorf("expected-set should contain 'id' and '(', got %v", serr.Expected)
	}
	if serr.Found != "*" {
		t.Errorf("offending lexeme should be '*', got %q", serr.Found)
	}
	if partial == nil || partial.Sym != nil {
		t.Errorf("expected a partial tree with an anonymous root")
	}
	if len(partial.Children) == 0 {
		t.Errorf("partial tree should contain the fragments parsed so far")
	}
}

func TestSLRParserEpsilonRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	g, err := cfg.Parse("AB", "S -> a S b | ε")
	if err != nil {
		t.Fatal(err)
	}
	lrgen := lr.NewTableGenerator(cfg.Analyze(g))
	lrgen.CreateTables()
	if lrgen.HasConflicts {
		t.Fatalf("unexpected conflicts: %v", lrgen.Conflicts())
	}
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	for _, input := range []string{"", "a b", "a a b b", "a a a b b b"} {
		if _, err := p.Parse(scanner.LexemeTokenizer(g, input)); err != nil {
			t.Errorf("input %q rejected: %v", input, err)
		}
	}
	for _, input := range []string{"a", "b", "a b b", "b a"} {
		if _, err := p.Parse(scanner.LexemeTokenizer(g, input)); err == nil {
			t.Errorf("invalid input %q was accepted", input)
		}
	}
}

func TestSLRMaxSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.lr")
	defer teardown()
	//
	p, g := makeExprParser(t)
	p.MaxSteps = 3
	if _, err := p.Parse(scanner.LexemeTokenizer(g, "id + id")); err == nil {
		t.Errorf("expected the step bound to abort the parse")
	}
}
