/*
Package slr provides a table-driven shift-reduce parser. Clients have to use
the tools of package lr to prepare the necessary parse tables. The driver
utilizes these tables to create a rightmost derivation for a given input,
provided through a scanner interface, and builds a parse tree for it.

The same driver interprets LR(0) tables and SLR(1) tables; the difference
lies solely in how the ACTION table was constructed. Tables containing
conflicts cannot be driven deterministically; the parser refuses ambiguous
table cells with an error.

This parser is intended for small to moderate grammars, e.g. for
configuration input or small domain-specific languages. It is *not* intended
for full-fledged programming languages (there are superb other tools around
for these kinds of usages, usually creating LALR(1)-parsers, which are able
to recognize a super-set of SLR-languages).

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := cfg.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := cfg.Analyze(g)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // cannot use an SLR parser

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokens := scanner.LexemeTokenizer(g, "+a")
	tree, err := p.Parse(tokens)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/scanner"
	"github.com/npillmayer/parsekit/tree"
)

// tracer traces with key 'parsekit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.lr")
}

// DefaultMaxSteps is the default bound on shift/reduce steps per parse.
const DefaultMaxSteps = 1000000

// Parser is a shift-reduce parser driven by LR(0)- or SLR(1)-tables.
// Create and initialize one with slr.NewParser(...).
type Parser struct {
	g        *cfg.Grammar
	stack    []stackitem // parser stack
	gotoT    *lr.Table   // GOTO table
	actionT  *lr.Table   // ACTION table
	MaxSteps int         // bound on shift/reduce steps, DefaultMaxSteps if 0
}

// We store triples of state-IDs, symbols and tree nodes on the parse stack.
type stackitem struct {
	stateID int         // ID of a CFSM state
	sym     *cfg.Symbol // grammar symbol this state was entered with
	node    *tree.Node  // parse-tree fragment for the symbol
}

// NewParser creates a shift-reduce parser for previously generated tables.
func NewParser(g *cfg.Grammar, gotoTable *lr.Table, actionTable *lr.Table) *Parser {
	return &Parser{
		g:       g,
		stack:   make([]stackitem, 0, 512),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
}

// Parse starts a new parse, with the scanner tokenizing the input.
//
// On success, the parse tree is returned, rooted at the augmented start
// symbol, with the end-of-input marker as its last leaf. On a syntax error,
// the tree fragments built so far are returned under a partial root,
// together with the error.
func (p *Parser) Parse(scan scanner.Tokenizer) (*tree.Node, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.g == nil || p.gotoT == nil || p.actionT == nil {
		return nil, fmt.Errorf("SLR(1)-parser not initialized")
	}
	maxsteps := p.MaxSteps
	if maxsteps <= 0 {
		maxsteps = DefaultMaxSteps
	}
	p.stack = p.stack[:0]
	p.stack = append(p.stack, stackitem{stateID: 0}) // push start state S0
	// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
	token := scan.NextToken()
	tokval := int(token.TokType())
	for steps := 0; ; steps++ {
		if steps > maxsteps {
			return p.partial(), fmt.Errorf("parse aborted after %d steps", maxsteps)
		}
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), tokval)
		tos := p.stack[len(p.stack)-1]
		action, action2 := p.actionT.Values(tos.stateID, tokval)
		tracer().Debugf("action(%d,%d)=%s", tos.stateID, tokval, valstring(action, p.actionT))
		if action2 != p.actionT.NullValue() {
			return p.partial(), fmt.Errorf(
				"ambiguous ACTION table cell in state %d at lookahead %q; tables have conflicts",
				tos.stateID, token.Lexeme())
		}
		switch {
		case action == p.actionT.NullValue():
			return p.partial(), parsekit.NewSyntaxError(token, p.expectedAt(tos.stateID)...)
		case action == lr.AcceptAction:
			return p.accept(token), nil
		case action == lr.ShiftAction:
			terminal := p.g.TerminalByValue(tokval)
			nextstate := p.gotoT.Value(tos.stateID, tokval)
			if nextstate == p.gotoT.NullValue() {
				return p.partial(), parsekit.NewSyntaxError(token, p.expectedAt(tos.stateID)...)
			}
			tracer().Debugf("shifting %q, next state = %d", token.Lexeme(), nextstate)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{int(nextstate), terminal, tree.Leaf(terminal, token)})
			token = scan.NextToken()
			tokval = int(token.TokType())
		default: // action > 0: reduce action
			rule := p.g.Rule(int(action))
			nextstate, node, err := p.reduce(rule)
			if err != nil {
				return p.partial(), err
			}
			tracer().Debugf("reduced %v, next state = %d", rule, nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, rule.LHS, node})
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as the topmost n states.
// Their tree fragments become the children of a fresh node for LHS, in
// left-to-right order. Epsilon rules reduce zero states to a childless node.
func (p *Parser) reduce(rule *cfg.Rule) (int, *tree.Node, error) {
	tracer().Infof("reduce %v", rule)
	n := len(rule.RHS())
	if len(p.stack)-1 < n {
		return 0, nil, fmt.Errorf("parser stack too short for reduction of %v", rule)
	}
	node := tree.NewNode(rule.LHS)
	handle := p.stack[len(p.stack)-n:]
	for k, it := range handle {
		if it.sym != rule.RHS()[k] {
			tracer().Errorf("expected %v on stack, got %v", rule.RHS()[k], it.sym)
		}
		node.AddChild(it.node)
	}
	p.stack = p.stack[:len(p.stack)-n]
	tos := p.stack[len(p.stack)-1]
	nextstate := p.gotoT.Value(tos.stateID, rule.LHS.Value)
	if nextstate == p.gotoT.NullValue() {
		return 0, nil, fmt.Errorf("no GOTO entry for %v in state %d", rule.LHS, tos.stateID)
	}
	return int(nextstate), node, nil
}

// accept wraps up a successful parse: the remaining stack fragments become
// children of the augmented start symbol, the end-of-input token its last
// leaf.
func (p *Parser) accept(token parsekit.Token) *tree.Node {
	root := tree.NewNode(p.g.Rule(0).LHS)
	for _, it := range p.stack[1:] {
		root.AddChild(it.node)
	}
	root.AddChild(tree.Leaf(p.g.EOF(), token))
	return root
}

// partial collects the tree fragments remaining on the stack of an aborted
// parse.
func (p *Parser) partial() *tree.Node {
	var nodes []*tree.Node
	for _, it := range p.stack[1:] {
		nodes = append(nodes, it.node)
	}
	return tree.Partial(nodes)
}

// expectedAt lists the terminals with a non-empty ACTION entry for a state,
// for syntax-error reporting.
func (p *Parser) expectedAt(stateID int) []string {
	var expected []string
	p.g.EachTerminal(func(t *cfg.Symbol) interface{} {
		if p.actionT.Value(stateID, t.Value) != p.actionT.NullValue() {
			expected = append(expected, t.Name)
		}
		return nil
	})
	return expected
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("%d", v)
}
