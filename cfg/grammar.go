package cfg

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// --- Rules -----------------------------------------------------------------

// Rule is a grammar production: a left-hand-side non-terminal deriving a
// sequence of symbols. An empty right-hand side denotes an epsilon production.
// Rules are numbered; rule no. 0 is always the augmented start rule.
type Rule struct {
	Serial int     // serial number of this rule within the grammar
	LHS    *Symbol // left-hand side of the rule
	rhs    []*Symbol
}

// RHS returns the right-hand side of a rule. Callers must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEpsilon returns true for epsilon productions.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString("[" + r.LHS.Name + "] ::= [")
	for i, sym := range r.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.Name)
	}
	b.WriteString("]")
	return b.String()
}

// --- Grammars --------------------------------------------------------------

// Grammar is an immutable context-free grammar: interned symbols plus an
// ordered sequence of rules. Grammars are built once, by a GrammarBuilder or
// by the plain-text notation parser, and never mutated afterwards.
// Transformations derive fresh grammar objects.
type Grammar struct {
	Name     string
	rules    []*Rule
	symbols  map[string]*Symbol
	byValue  map[int]*Symbol
	terms    []*Symbol // terminals in declaration order, #eof first
	nonterms []*Symbol // non-terminals in first-mention order, S' last
	eof      *Symbol
}

func newGrammar(name string) *Grammar {
	g := &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
		byValue: make(map[int]*Symbol),
	}
	g.eof = &Symbol{Name: "#eof", Value: EOFType, kind: terminalSym}
	g.symbols[g.eof.Name] = g.eof
	g.byValue[g.eof.Value] = g.eof
	g.terms = append(g.terms, g.eof)
	return g
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule no. n, or nil if out of range.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// EachRule iterates over all rules in declaration order, the augmented start
// rule first.
func (g *Grammar) EachRule(f func(*Rule)) {
	for _, r := range g.rules {
		f(r)
	}
}

// RulesFor returns the rules with left-hand side A, in declaration order.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// Start returns the start symbol, i.e. the LHS of the first client rule.
// The augmented symbol S' is available as Rule(0).LHS.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].rhs[0]
}

// EOF returns the end-of-input marker symbol '#eof'.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// SymbolByName returns the symbol with the given name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// TerminalByValue returns the terminal carrying the given token value, or nil.
func (g *Grammar) TerminalByValue(tokval int) *Symbol {
	sym := g.byValue[tokval]
	if sym != nil && sym.IsTerminal() {
		return sym
	}
	return nil
}

// EachSymbol applies a mapper function to all symbols, terminals first.
func (g *Grammar) EachSymbol(f func(*Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, sym := range g.terms {
		r = append(r, f(sym))
	}
	for _, sym := range g.nonterms {
		r = append(r, f(sym))
	}
	return r
}

// EachTerminal applies a mapper function to all terminals, #eof first.
func (g *Grammar) EachTerminal(f func(*Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, sym := range g.terms {
		r = append(r, f(sym))
	}
	return r
}

// EachNonTerminal applies a mapper function to all non-terminals.
func (g *Grammar) EachNonTerminal(f func(*Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, sym := range g.nonterms {
		r = append(r, f(sym))
	}
	return r
}

// NonTermCount returns the number of non-terminals, including S'.
func (g *Grammar) NonTermCount() int {
	return len(g.nonterms)
}

// NonTermIndex returns a stable 0-based index for a non-terminal, suitable
// as a parse-table row number. Returns -1 for terminals.
func (g *Grammar) NonTermIndex(A *Symbol) int {
	if A == nil || A.IsTerminal() {
		return -1
	}
	return nonTermBase - A.Value
}

// TokenTypeExtent returns the lowest and highest symbol value occurring in
// the grammar. Parse tables use this to size their column range.
func (g *Grammar) TokenTypeExtent() (min int, max int) {
	g.EachSymbol(func(sym *Symbol) interface{} {
		if sym.Value < min {
			min = sym.Value
		}
		if sym.Value > max {
			max = sym.Value
		}
		return nil
	})
	return
}

// Dump is a debugging helper, listing all rules of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r.String())
	}
	tracer().Debugf("-------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, r := range g.rules[1:] { // hide the augmented rule
		fmt.Fprintf(&b, "%s -> ", r.LHS.Name)
		if r.IsEpsilon() {
			b.WriteString("ε")
		}
		for i, sym := range r.rhs {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(sym.Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a builder object for grammars. Rules are added with a
// fluent API:
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 'a').End()
//    b.LHS("A").Epsilon()
//    g, err := b.Grammar()
//
// Grammar() augments the grammar with rule 0: S' ::= S #eof, where S is the
// LHS of the first rule added.
type GrammarBuilder struct {
	g   *Grammar
	err error // first error during building; reported by Grammar()
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(name)}
}

func (gb *GrammarBuilder) fail(err error) {
	if gb.err == nil {
		gb.err = err
	}
}

func (gb *GrammarBuilder) nonterm(name string) *Symbol {
	if sym, ok := gb.g.symbols[name]; ok {
		if sym.IsTerminal() {
			gb.fail(&GrammarError{Sym: name, Reason: "symbol is already declared as a terminal"})
		}
		return sym
	}
	sym := &Symbol{Name: name, Value: nonTermBase - len(gb.g.nonterms), kind: nonTermSym}
	gb.g.symbols[name] = sym
	gb.g.byValue[sym.Value] = sym
	gb.g.nonterms = append(gb.g.nonterms, sym)
	return sym
}

func (gb *GrammarBuilder) terminal(name string, toktype int) *Symbol {
	if sym, ok := gb.g.symbols[name]; ok {
		if !sym.IsTerminal() {
			gb.fail(&GrammarError{Sym: name, Reason: "symbol is already declared as a non-terminal"})
		} else if sym.Value != toktype {
			gb.fail(&GrammarError{Sym: name,
				Reason: fmt.Sprintf("terminal re-declared with token value %d (was %d)", toktype, sym.Value)})
		}
		return sym
	}
	sym := &Symbol{Name: name, Value: toktype, kind: terminalSym}
	if err := sym.check(); err != nil {
		gb.fail(err)
		return sym
	}
	if other, ok := gb.g.byValue[toktype]; ok {
		gb.fail(&GrammarError{Sym: name,
			Reason: fmt.Sprintf("token value %d already taken by terminal %q", toktype, other.Name)})
		return sym
	}
	gb.g.symbols[name] = sym
	gb.g.byValue[toktype] = sym
	gb.g.terms = append(gb.g.terms, sym)
	return sym
}

// LHS starts a new rule, given the name of its left-hand-side non-terminal.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: gb.nonterm(name)}
}

// RuleBuilder is a builder type for rules. Clients append symbols to the
// right-hand side and finish the rule with End(), Epsilon() or EOF().
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the RHS of a rule.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.nonterm(name))
	return rb
}

// T appends a terminal with a token value to the RHS of a rule.
func (rb *RuleBuilder) T(name string, toktype int) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.terminal(name, toktype))
	return rb
}

// End completes a rule and appends it to the grammar.
func (rb *RuleBuilder) End() {
	g := rb.gb.g
	r := &Rule{Serial: len(g.rules) + 1, LHS: rb.lhs, rhs: rb.rhs}
	g.rules = append(g.rules, r)
	rb.gb = nil // rule builders are single-use
}

// Epsilon completes a rule as an epsilon production.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}

// EOF appends the end-of-input marker to the RHS and completes the rule.
// Rarely needed, as Grammar() augments every grammar with an EOF-carrying
// start rule anyway.
func (rb *RuleBuilder) EOF() {
	rb.rhs = append(rb.rhs, rb.gb.g.eof)
	rb.End()
}

// Grammar returns the built grammar, augmented with rule 0: S' ::= S #eof.
// It fails with a GrammarError if a non-terminal is referenced but no rule
// declares it, or if symbols were declared inconsistently.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	g := gb.g
	if g == nil {
		return nil, &GrammarError{Reason: "grammar builder already used up"}
	}
	if len(g.rules) == 0 {
		return nil, &GrammarError{Reason: "grammar has no rules"}
	}
	if undecl := undeclared(g); len(undecl) > 0 {
		return nil, &GrammarError{Sym: strings.Join(undecl, ", "),
			Reason: "non-terminal(s) referenced, but no rule declares them"}
	}
	start := g.rules[0].LHS
	name := start.Name + "'"
	for g.symbols[name] != nil {
		name += "'"
	}
	sprime := gb.nonterm(name)
	g.rules = append([]*Rule{{Serial: 0, LHS: sprime, rhs: []*Symbol{start, g.eof}}}, g.rules...)
	gb.g = nil // freeze: no more building
	tracer().Debugf("built grammar %q with %d rules", g.Name, len(g.rules))
	return g, nil
}

func undeclared(g *Grammar) []string {
	var missing []string
	for _, nt := range g.nonterms {
		found := false
		for _, r := range g.rules {
			if r.LHS == nt {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, nt.Name)
		}
	}
	sort.Strings(missing)
	return missing
}

// --- Validation ------------------------------------------------------------

// Validate checks a built grammar for non-terminals which are unreachable
// from the start symbol. Transformations may legitimately produce such
// grammars, therefore this is a separate check and not part of Grammar().
func Validate(g *Grammar) error {
	reachable := map[*Symbol]bool{g.rules[0].LHS: true}
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			if !reachable[r.LHS] {
				continue
			}
			for _, sym := range r.rhs {
				if !sym.IsTerminal() && !reachable[sym] {
					reachable[sym] = true
					changed = true
				}
			}
		}
	}
	var dead []string
	for _, nt := range g.nonterms {
		if !reachable[nt] {
			dead = append(dead, nt.Name)
		}
	}
	if len(dead) > 0 {
		sort.Strings(dead)
		return &GrammarError{Sym: strings.Join(dead, ", "),
			Reason: "non-terminal(s) unreachable from the start symbol"}
	}
	return nil
}
