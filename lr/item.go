package lr

import (
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr/iteratable"
)

// Item is an LR item: a grammar rule with a dot position somewhere in its
// right-hand side. Items are value types and safe to use as set members.
type Item struct {
	rule *cfg.Rule
	dot  int
}

// StartItem returns the LR item for a rule with the dot at position 0,
// together with the symbol after the dot (nil for epsilon rules).
func StartItem(r *cfg.Rule) (Item, *cfg.Symbol) {
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the grammar rule of this item.
func (i Item) Rule() *cfg.Rule {
	return i.rule
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is behind
// the complete RHS.
func (i Item) PeekSymbol() *cfg.Symbol {
	if i.dot >= len(i.rule.RHS()) {
		return nil
	}
	return i.rule.RHS()[i.dot]
}

// Advance returns a new item with the dot advanced over one symbol.
// Advancing past the end of the RHS is an error by the caller.
func (i Item) Advance() Item {
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*cfg.Symbol {
	return i.rule.RHS()[:i.dot]
}

func (i Item) String() string {
	rhs := i.rule.RHS()
	s := "[" + i.rule.LHS.Name + "] ::= ["
	for k, sym := range rhs {
		if k > 0 {
			s += " "
		}
		if k == i.dot {
			s += "."
		}
		s += sym.Name
	}
	if i.dot == len(rhs) {
		s += "."
	}
	return s + "]"
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(4)
}

// startItemsFor returns the set of start items for all rules with a given
// LHS non-terminal.
func startItemsFor(g *cfg.Grammar, A *cfg.Symbol) *iteratable.Set {
	S := newItemSet()
	for _, r := range g.RulesFor(A) {
		i, _ := StartItem(r)
		S.Add(i)
	}
	return S
}

// Dump is a debugging helper, listing all items of an item set.
func Dump(S *iteratable.Set) {
	for k, x := range S.Values() {
		i := asItem(x)
		tracer().Debugf("item %2d: %v", k, i)
	}
}

func itemSetString(S *iteratable.Set) string {
	s := "{"
	for k, x := range S.Values() {
		if k > 0 {
			s += ", "
		} else {
			s += " "
		}
		s += asItem(x).String()
	}
	return s + " }"
}
