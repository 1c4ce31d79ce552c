package cfg

import (
	"fmt"

	"github.com/npillmayer/parsekit"
)

// Reserved token values. Token value 0 denotes epsilon, the end-of-input
// marker is identical to text/scanner.EOF. Clients must not assign either
// of them to a terminal.
const (
	EpsilonType = 0  // pseudo token value for ε
	EOFType     = -1 // token value of the end-of-input marker
)

// Non-terminals receive serial values descending from nonTermBase. This keeps
// them out of the way of rune values, text/scanner token classes and
// auto-assigned named terminals, so that a single parse-table column range
// covers all symbols.
const nonTermBase = -1000

// Named terminals from the plain-text grammar notation get values beyond the
// Unicode code space, so they can never collide with single-rune terminals.
const namedTermBase = 0x110000

type symkind int8

const (
	terminalSym symkind = iota + 1
	nonTermSym
)

// Symbol is a grammar symbol: a terminal carrying a client-defined token
// value, or a non-terminal carrying a synthetic serial value. Symbols are
// interned per grammar; comparing pointers is safe within one grammar.
type Symbol struct {
	Name  string
	Value int // token value for terminals, serial value for non-terminals
	kind  symkind
}

// IsTerminal returns true for terminal symbols.
func (s *Symbol) IsTerminal() bool {
	return s.kind == terminalSym
}

// IsEOF returns true for the end-of-input marker symbol.
func (s *Symbol) IsEOF() bool {
	return s.kind == terminalSym && s.Value == EOFType
}

// TokenType returns the symbol's value as a token type. For terminals this
// is the token value a scanner will produce; for non-terminals it is the
// synthetic serial, which parse tables use as a column index.
func (s *Symbol) TokenType() parsekit.TokType {
	return parsekit.TokType(s.Value)
}

func (s *Symbol) String() string {
	return s.Name
}

func (s *Symbol) check() error {
	if s.kind != terminalSym {
		return nil
	}
	if s.Value == EpsilonType {
		return &GrammarError{Sym: s.Name, Reason: "terminal token value 0 is reserved for ε"}
	}
	if s.Value <= nonTermBase {
		return &GrammarError{Sym: s.Name,
			Reason: fmt.Sprintf("terminal token value %d collides with non-terminal serials", s.Value)}
	}
	return nil
}
