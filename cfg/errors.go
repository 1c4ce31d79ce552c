package cfg

import "fmt"

// GrammarError signals a structural defect of a grammar: a symbol referenced
// but never declared, or a non-terminal unreachable from the start symbol.
type GrammarError struct {
	Sym    string // offending symbol, if any
	Reason string
}

func (e *GrammarError) Error() string {
	if e.Sym == "" {
		return "grammar error: " + e.Reason
	}
	return fmt.Sprintf("grammar error: %s: %s", e.Sym, e.Reason)
}

// TransformError signals that a grammar transformation exceeded its
// termination bound. Transformations never loop; they give up and report.
type TransformError struct {
	Op    string // "left-recursion elimination" or "left factoring"
	Limit int    // the bound which was exceeded
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s exceeded its termination bound (%d); transformation aborted", e.Op, e.Limit)
}
