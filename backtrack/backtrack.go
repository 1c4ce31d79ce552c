/*
Package backtrack provides a backtracking recursive-descent parser.

The parser needs no parse tables and accepts any context-free grammar as-is,
including grammars with common prefixes, at the price of exponential worst
case runtime: for a non-terminal, the rule alternatives are tried in
declaration order, and a failing alternative restores the input position
exactly before the next one is tried. The first full derivation wins.

Left-recursive grammars make plain backtracking recurse without consuming
input; a configurable depth bound cuts such derivations off with a
DepthError, and a step bound guards against runaway search. Use the
transformations of package cfg to remove left recursion first if the
grammar calls for it.

This parser is mainly useful as a reference oracle for the table-driven
parsers and for quick experiments with small grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package backtrack

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/scanner"
	"github.com/npillmayer/parsekit/tree"
)

// tracer traces with key 'parsekit.backtrack'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.backtrack")
}

// DefaultMaxDepth is the default bound on derivation depth.
const DefaultMaxDepth = 100

// DefaultMaxSteps is the default bound on total derivation steps.
const DefaultMaxSteps = 1000000

// StepsError is returned when a parse exceeds the step bound.
type StepsError struct {
	Limit int // the exceeded step bound
}

func (e *StepsError) Error() string {
	return fmt.Sprintf("parse exceeds bound of %d derivation steps", e.Limit)
}

// DepthError is returned when a derivation exceeds the depth bound, which
// usually indicates a left-recursive grammar.
type DepthError struct {
	Limit   int         // the exceeded depth bound
	NonTerm *cfg.Symbol // the non-terminal under expansion
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("derivation of %s exceeds depth bound of %d; grammar may be left-recursive",
		e.NonTerm.Name, e.Limit)
}

// Parser is a backtracking recursive-descent parser. Create and initialize
// one with backtrack.NewParser(...).
type Parser struct {
	g        *cfg.Grammar
	MaxDepth int // bound on derivation depth, DefaultMaxDepth if 0
	MaxSteps int // bound on total derivation steps, DefaultMaxSteps if 0
}

// NewParser creates a backtracking parser for a grammar. No grammar
// analysis and no tables are required.
func NewParser(g *cfg.Grammar) *Parser {
	return &Parser{g: g}
}

// Parse starts a new parse, with the scanner tokenizing the input. The
// token stream is read up to the end-of-input marker before parsing starts,
// as backtracking requires random access to input positions.
//
// On success, the parse tree of the first derivation found is returned,
// rooted at the augmented start symbol. On failure, the error reports the
// rightmost input position any derivation attempt reached.
func (p *Parser) Parse(scan scanner.Tokenizer) (*tree.Node, error) {
	if p.g == nil {
		return nil, fmt.Errorf("backtracking parser not initialized")
	}
	maxdepth := p.MaxDepth
	if maxdepth <= 0 {
		maxdepth = DefaultMaxDepth
	}
	maxsteps := p.MaxSteps
	if maxsteps <= 0 {
		maxsteps = DefaultMaxSteps
	}
	r := &run{
		g:        p.g,
		tokens:   drain(scan),
		maxDepth: maxdepth,
		maxSteps: maxsteps,
	}
	node, ok, err := r.derive(p.g.Rule(0).LHS, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, r.syntaxError()
	}
	tracer().Debugf("backtracking parser accepted input after %d steps", r.steps)
	return node, nil
}

// A run holds the state of one parse: the pre-lexed input, the current
// position, and the rightmost failure for error reporting.
type run struct {
	g        *cfg.Grammar
	tokens   []parsekit.Token
	pos      int
	maxDepth int
	maxSteps int
	steps    int
	farthest int      // rightmost input position a derivation failed at
	expected []string // terminals expected there
}

// drain reads the token stream up to and including the end-of-input marker.
func drain(scan scanner.Tokenizer) []parsekit.Token {
	var tokens []parsekit.Token
	for {
		t := scan.NextToken()
		tokens = append(tokens, t)
		if t.TokType() == scanner.EOF {
			return tokens
		}
	}
}

// derive tries the rules for a non-terminal in declaration order. A failing
// alternative restores the input position before the next alternative is
// tried. The first complete derivation wins.
func (r *run) derive(A *cfg.Symbol, depth int) (*tree.Node, bool, error) {
	if depth > r.maxDepth {
		return nil, false, &DepthError{Limit: r.maxDepth, NonTerm: A}
	}
	mark := r.pos
	for _, rule := range r.g.RulesFor(A) {
		node, ok, err := r.sequence(rule, depth)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return node, true, nil
		}
		r.pos = mark // backtrack
	}
	return nil, false, nil
}

// sequence matches the RHS of one rule at the current position.
func (r *run) sequence(rule *cfg.Rule, depth int) (*tree.Node, bool, error) {
	r.steps++
	if r.steps > r.maxSteps {
		return nil, false, &StepsError{Limit: r.maxSteps}
	}
	node := tree.NewNode(rule.LHS)
	for _, sym := range rule.RHS() {
		if sym.IsTerminal() {
			if !r.match(sym) {
				return nil, false, nil
			}
			node.AddChild(tree.Leaf(sym, r.tokens[r.pos-1]))
			continue
		}
		child, ok, err := r.derive(sym, depth+1)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		node.AddChild(child)
	}
	return node, true, nil
}

// match consumes the current token if it carries the terminal's token
// value. On mismatch the rightmost-failure record is updated. A rule
// carrying the end-marker itself may drive the position past the drained
// input; such an attempt fails like any other mismatch.
func (r *run) match(t *cfg.Symbol) bool {
	if r.pos < len(r.tokens) && int(r.tokens[r.pos].TokType()) == t.Value {
		r.pos++
		return true
	}
	at := r.pos
	if at >= len(r.tokens) {
		at = len(r.tokens) - 1 // the end-marker token
	}
	if at > r.farthest {
		r.farthest = at
		r.expected = r.expected[:0]
	}
	if at == r.farthest {
		r.expected = appendUnique(r.expected, t.Name)
	}
	return false
}

func (r *run) syntaxError() error {
	return parsekit.NewSyntaxError(r.tokens[r.farthest], r.expected...)
}

func appendUnique(list []string, s string) []string {
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}
