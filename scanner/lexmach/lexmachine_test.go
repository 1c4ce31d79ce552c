package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/lr/slr"
	"github.com/npillmayer/parsekit/scanner"
)

func TestFromGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.scanner")
	defer teardown()
	//
	g, err := cfg.Parse("Expr", "E -> E + T | T\nT -> id")
	if err != nil {
		t.Fatal(err)
	}
	adapter, err := FromGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	scan, err := adapter.Scanner("id + id")
	if err != nil {
		t.Fatal(err)
	}
	idval := g.SymbolByName("id").TokenType()
	for i, want := range []int{int(idval), '+', int(idval), scanner.EOF} {
		token := scan.NextToken()
		if int(token.TokType()) != want {
			t.Errorf("token #%d: expected type %d, got %d", i, want, token.TokType())
		}
	}
}

func TestLexmachineFeedsParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.scanner")
	defer teardown()
	//
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
	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	adapter, err := FromGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	scan, err := adapter.Scanner("(id + id) * id")
	if err != nil {
		t.Fatal(err)
	}
	tree, err := p.Parse(scan)
	if err != nil {
		t.Fatalf("parse with lexmachine input failed: %v", err)
	}
	if tree == nil || tree.Find("E") == nil {
		t.Errorf("expected a parse tree containing E")
	}
}
