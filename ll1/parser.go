package ll1

import (
	"fmt"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/scanner"
	"github.com/npillmayer/parsekit/tree"
)

// DefaultMaxSteps is the default bound on expansion/match steps per parse.
const DefaultMaxSteps = 1000000

// Parser is a table-driven LL(1) parser. Create and initialize one with
// ll1.NewParser(...).
type Parser struct {
	g        *cfg.Grammar
	table    *Table
	stack    []frame // prediction stack
	MaxSteps int     // bound on parser steps, DefaultMaxSteps if 0
}

// The prediction stack holds grammar symbols together with their (already
// attached) parse-tree nodes.
type frame struct {
	sym  *cfg.Symbol
	node *tree.Node
}

// NewParser creates an LL(1) parser for a previously generated parse table.
// The table must be conflict-free to drive the parser deterministically.
func NewParser(g *cfg.Grammar, table *Table) *Parser {
	return &Parser{
		g:     g,
		table: table,
		stack: make([]frame, 0, 512),
	}
}

// Parse starts a new parse, with the scanner tokenizing the input.
//
// The parser creates a leftmost derivation: starting from the augmented
// start symbol, the topmost non-terminal of the prediction stack is expanded
// by the table entry for the current lookahead token, terminals are matched
// against the input. On success, the parse tree is returned, rooted at the
// augmented start symbol. On a syntax error, the partially expanded tree is
// returned together with the error.
func (p *Parser) Parse(scan scanner.Tokenizer) (*tree.Node, error) {
	if p.g == nil || p.table == nil {
		return nil, fmt.Errorf("LL(1)-parser not initialized")
	}
	maxsteps := p.MaxSteps
	if maxsteps <= 0 {
		maxsteps = DefaultMaxSteps
	}
	root := tree.NewNode(p.g.Rule(0).LHS)
	p.stack = p.stack[:0]
	p.stack = append(p.stack, frame{p.g.Rule(0).LHS, root})
	token := scan.NextToken()
	for steps := 0; len(p.stack) > 0; steps++ {
		if steps > maxsteps {
			return root, fmt.Errorf("parse aborted after %d steps", maxsteps)
		}
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if top.sym.IsTerminal() {
			if int(token.TokType()) != top.sym.Value {
				return root, parsekit.NewSyntaxError(token, top.sym.Name)
			}
			tracer().Debugf("matched terminal %q", token.Lexeme())
			top.node.Token = token
			top.node.Extent = token.Span()
			token = scan.NextToken()
			continue
		}
		serial, serial2 := p.table.Values(p.g.NonTermIndex(top.sym), int(token.TokType()))
		if serial2 != p.table.NullValue() {
			return root, fmt.Errorf(
				"ambiguous LL(1) table cell for %s at lookahead %q; table has conflicts",
				top.sym.Name, token.Lexeme())
		}
		if serial == p.table.NullValue() {
			return root, parsekit.NewSyntaxError(token, p.expectedFor(top.sym)...)
		}
		rule := p.g.Rule(int(serial))
		tracer().Debugf("expanding %v at lookahead %q", rule, token.Lexeme())
		p.expand(rule, top.node)
	}
	propagateExtents(root)
	return root, nil
}

// expand replaces a non-terminal by the RHS of a rule: child nodes are
// created and attached left to right, the prediction stack receives the RHS
// symbols in reverse. An epsilon rule leaves the node childless.
func (p *Parser) expand(rule *cfg.Rule, node *tree.Node) {
	rhs := rule.RHS()
	children := make([]*tree.Node, len(rhs))
	for k, sym := range rhs {
		if sym.IsTerminal() {
			children[k] = tree.Leaf(sym, nil)
		} else {
			children[k] = tree.NewNode(sym)
		}
		node.AddChild(children[k])
	}
	for k := len(rhs) - 1; k >= 0; k-- {
		p.stack = append(p.stack, frame{rhs[k], children[k]})
	}
}

// expectedFor lists the terminals with a non-empty table entry in a
// non-terminal's row, for syntax-error reporting.
func (p *Parser) expectedFor(A *cfg.Symbol) []string {
	var expected []string
	p.g.EachTerminal(func(t *cfg.Symbol) interface{} {
		if p.table.Value(p.g.NonTermIndex(A), t.Value) != p.table.NullValue() {
			expected = append(expected, t.Name)
		}
		return nil
	})
	return expected
}

// propagateExtents recomputes the input extents of inner nodes from their
// leaves. Top-down tree construction attaches children before their input
// positions are known, so extents are fixed up after the parse.
func propagateExtents(n *tree.Node) parsekit.Span {
	if n.IsLeaf() {
		return n.Extent
	}
	var span parsekit.Span
	for _, c := range n.Children {
		cspan := propagateExtents(c)
		if cspan.IsNull() {
			continue
		}
		if span.IsNull() {
			span = cspan
		} else {
			span = span.Extend(cspan)
		}
	}
	n.Extent = span
	return span
}
