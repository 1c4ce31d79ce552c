package parsekit

import (
	"fmt"
	"sort"
	"strings"
)

// SyntaxError is the error type returned by parser drivers when the input
// token stream cannot be derived from the grammar. It carries the input
// position, the offending token and the set of terminals which would have
// been legal at that position.
type SyntaxError struct {
	Pos      uint64   // input position of the offending token
	Found    string   // lexeme of the offending token
	Type     TokType  // token type of the offending token
	Expected []string // names of terminals legal at Pos
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at position %d: unexpected %q", e.Pos, e.Found)
	}
	if len(e.Expected) == 1 {
		return fmt.Sprintf("syntax error at position %d: expected %s, got %q",
			e.Pos, e.Expected[0], e.Found)
	}
	exp := append([]string(nil), e.Expected...)
	sort.Strings(exp)
	return fmt.Sprintf("syntax error at position %d: unexpected %q, expected one of {%s}",
		e.Pos, e.Found, strings.Join(exp, ", "))
}

// NewSyntaxError creates a syntax error for a token, together with the
// terminals which would have been legal instead.
func NewSyntaxError(t Token, expected ...string) *SyntaxError {
	err := &SyntaxError{
		Found:    t.Lexeme(),
		Type:     t.TokType(),
		Expected: expected,
	}
	err.Pos = t.Span().From()
	if err.Found == "" {
		err.Found = "end of input"
	}
	return err
}
