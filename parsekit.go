package parsekit

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is the category of a Token. Values are owned by the client: a
// scanner and a grammar agree on them, this module just passes them through.
// Package cfg reserves token type 0 for ε and text/scanner.EOF for the
// end-of-input marker.
type TokType int

// TokTypeStringer converts token categories to readable names, for trace
// and error output. Clients provide one alongside their scanner.
type TokTypeStringer func(TokType) string

// Token is a single input token as handed from a scanner to a parser driver.
// Lexeme is the input text the token was scanned from, Value an optional
// semantic value the scanner may attach (a number token may carry its
// numeric value, for example), Span the input positions covered.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans -----------------------------------------------------------------

// Span is a half-open range of input positions: start and the position just
// behind the end. Parse-tree nodes carry a span to tie grammar symbols back
// to the input they cover.
type Span [2]uint64

// From returns the start position of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the position just behind the end of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the number of positions a span covers.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
