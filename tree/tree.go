/*
Package tree provides the parse-tree type shared by all parser drivers.

A Node carries a grammar symbol and an ordered sequence of children;
terminal leaves additionally carry the input token they were matched
against. Trees are built by the drivers and are immutable snapshots for
clients afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
)

// Node is a parse-tree node: a grammar symbol plus an ordered sequence of
// child nodes. Terminals are leaves and carry their input token. A node for
// an epsilon derivation has a non-terminal symbol and no children.
type Node struct {
	Sym      *cfg.Symbol
	Token    parsekit.Token // input token for terminal leaves, nil otherwise
	Extent   parsekit.Span  // input span this node covers
	Children []*Node
}

// NewNode creates a node for a non-terminal.
func NewNode(sym *cfg.Symbol) *Node {
	return &Node{Sym: sym}
}

// Leaf creates a terminal leaf for a matched input token.
func Leaf(sym *cfg.Symbol, token parsekit.Token) *Node {
	n := &Node{Sym: sym, Token: token}
	if token != nil {
		n.Extent = token.Span()
	}
	return n
}

// Partial wraps the loose nodes of an aborted parse, so that drivers can
// hand back what they built before a syntax error occurred.
func Partial(children []*Node) *Node {
	return &Node{Children: children}
}

// AddChild appends a child node and extends the parent's extent.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	if n.Extent.IsNull() {
		n.Extent = c.Extent
	} else if !c.Extent.IsNull() {
		n.Extent = n.Extent.Extend(c.Extent)
	}
	return n
}

// IsLeaf returns true for nodes without children. Note that a non-terminal
// deriving ε is a leaf, too.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Label returns a display label for a node: the symbol name, decorated with
// the lexeme for terminal leaves.
func (n *Node) Label() string {
	if n.Sym == nil {
		return "<partial>"
	}
	if n.Token != nil && n.Token.Lexeme() != "" && n.Token.Lexeme() != n.Sym.Name {
		return fmt.Sprintf("%s %q", n.Sym.Name, n.Token.Lexeme())
	}
	return n.Sym.Name
}

// Walk traverses the tree in pre-order, calling a visitor with every node
// and its depth level.
func (n *Node) Walk(visit func(node *Node, level int)) {
	n.walk(visit, 0)
}

func (n *Node) walk(visit func(*Node, int), level int) {
	visit(n, level)
	for _, c := range n.Children {
		c.walk(visit, level+1)
	}
}

// Indented returns an indented multi-line dump of the tree, mainly for
// debugging and test output.
func (n *Node) Indented() string {
	var b bytes.Buffer
	n.Walk(func(node *Node, level int) {
		for i := 0; i < level; i++ {
			b.WriteString(". ")
		}
		b.WriteString(node.Label())
		b.WriteString("\n")
	})
	return b.String()
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Label()
	}
	var b bytes.Buffer
	b.WriteString("(" + n.Label())
	for _, c := range n.Children {
		b.WriteString(" " + c.String())
	}
	b.WriteString(")")
	return b.String()
}

// Find returns the first node (in pre-order) whose symbol has the given
// name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node, level int) {
		if found == nil && node.Sym != nil && node.Sym.Name == name {
			found = node
		}
	})
	return found
}
