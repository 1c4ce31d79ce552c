package tree

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/scanner"
)

func makeSymbols(t *testing.T) *cfg.Grammar {
	g, err := cfg.Parse("G", "S -> a b")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNodeExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.tree")
	defer teardown()
	//
	g := makeSymbols(t)
	S := NewNode(g.SymbolByName("S"))
	a := Leaf(g.SymbolByName("a"), scanner.MakeDefaultToken('a', "a", parsekit.Span{0, 1}))
	b := Leaf(g.SymbolByName("b"), scanner.MakeDefaultToken('b', "b", parsekit.Span{2, 3}))
	S.AddChild(a).AddChild(b)
	if S.Extent.From() != 0 || S.Extent.To() != 3 {
		t.Errorf("parent extent should span the children, got %v", S.Extent)
	}
	// a null-extent child (e.g. from an ε derivation) leaves the parent alone
	S.AddChild(NewNode(g.SymbolByName("S")))
	if S.Extent.To() != 3 {
		t.Errorf("null-extent child changed the parent extent to %v", S.Extent)
	}
}

func TestNodeString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.tree")
	defer teardown()
	//
	g := makeSymbols(t)
	S := NewNode(g.SymbolByName("S"))
	S.AddChild(Leaf(g.SymbolByName("a"), scanner.MakeDefaultToken('a', "a", parsekit.Span{0, 1})))
	S.AddChild(Leaf(g.SymbolByName("b"), nil))
	if got := S.String(); got != "(S a b)" {
		t.Errorf("expected (S a b), got %s", got)
	}
	if !S.Children[1].IsLeaf() {
		t.Errorf("terminal nodes are leaves")
	}
	if S.IsLeaf() {
		t.Errorf("S has children and is no leaf")
	}
}

func TestNodeFind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.tree")
	defer teardown()
	//
	g := makeSymbols(t)
	S := NewNode(g.SymbolByName("S"))
	inner := NewNode(g.SymbolByName("S"))
	inner.AddChild(Leaf(g.SymbolByName("a"), nil))
	S.AddChild(inner)
	if found := S.Find("S"); found != S {
		t.Errorf("Find should return the first match in pre-order")
	}
	if found := S.Find("a"); found == nil || found.Sym.Name != "a" {
		t.Errorf("Find did not locate the leaf")
	}
	if S.Find("zzz") != nil {
		t.Errorf("Find should return nil for unknown names")
	}
}

func TestPartialTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.tree")
	defer teardown()
	//
	g := makeSymbols(t)
	p := Partial([]*Node{Leaf(g.SymbolByName("a"), nil)})
	if p.Sym != nil {
		t.Errorf("partial trees have an anonymous root")
	}
	if p.Label() != "<partial>" {
		t.Errorf("unexpected label %q", p.Label())
	}
}

func TestIndented(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsekit.tree")
	defer teardown()
	//
	g := makeSymbols(t)
	S := NewNode(g.SymbolByName("S"))
	S.AddChild(Leaf(g.SymbolByName("a"), nil))
	dump := S.Indented()
	if len(strings.Split(strings.TrimSpace(dump), "\n")) != 2 {
		t.Errorf("expected a 2-line dump, got:\n%s", dump)
	}
	if !strings.Contains(dump, ". a") {
		t.Errorf("child should be indented, got:\n%s", dump)
	}
}
