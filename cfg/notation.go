package cfg

import (
	"strings"
	"unicode"
)

// Epsilon is the marker for empty alternatives in the plain-text grammar
// notation.
const Epsilon = "ε"

// Parse reads a grammar from a plain-text notation:
//
//    E -> E + T | T
//    T -> T * F | F
//    F -> ( E ) | id
//
// Every line declares alternatives for one non-terminal; a non-terminal may
// be declared on more than one line, with alternatives appended in order.
// Symbols are separated by whitespace, or are single non-alphanumeric runes
// ("(E)" reads as the three symbols '(' E ')'). Every symbol appearing as a
// left-hand side is a non-terminal, every other symbol is a terminal. An
// empty alternative or the marker 'ε' denotes an epsilon production.
// The start symbol is the LHS of the first line.
//
// Single-rune terminals receive their rune as token value; named terminals
// receive deterministic auto-assigned values in order of first appearance,
// retrievable with g.SymbolByName(name).Value.
func Parse(name string, text string) (*Grammar, error) {
	var lines []prodLine
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		pl, err := splitLine(ln)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pl)
	}
	if len(lines) == 0 {
		return nil, &GrammarError{Reason: "empty grammar"}
	}
	lhsNames := make(map[string]bool)
	for _, pl := range lines {
		lhsNames[pl.lhs] = true
	}
	b := NewGrammarBuilder(name)
	namedTerms := make(map[string]int)
	for _, pl := range lines {
		for _, alt := range pl.alts {
			rb := b.LHS(pl.lhs)
			if len(alt) == 0 {
				rb.Epsilon()
				continue
			}
			for _, symname := range alt {
				if lhsNames[symname] {
					rb.N(symname)
				} else {
					rb.T(symname, termValue(symname, namedTerms))
				}
			}
			rb.End()
		}
	}
	return b.Grammar()
}

// Single-rune terminals are identified by their rune value; named terminals
// get values from a counter beyond the Unicode code space, assigned in order
// of first appearance so that results are reproducible.
func termValue(name string, named map[string]int) int {
	runes := []rune(name)
	if len(runes) == 1 {
		return int(runes[0])
	}
	if v, ok := named[name]; ok {
		return v
	}
	v := namedTermBase + len(named)
	named[name] = v
	return v
}

type prodLine struct {
	lhs  string
	alts [][]string
}

func splitLine(line string) (prodLine, error) {
	pl := prodLine{}
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		return pl, &GrammarError{Reason: "production line is missing '->': " + line}
	}
	pl.lhs = strings.TrimSpace(parts[0])
	if pl.lhs == "" {
		return pl, &GrammarError{Reason: "production has an empty left-hand side: " + line}
	}
	if len(scanSymbols(pl.lhs)) != 1 {
		return pl, &GrammarError{Sym: pl.lhs, Reason: "left-hand side must be a single symbol"}
	}
	for _, alt := range strings.Split(parts[1], "|") {
		syms := scanSymbols(strings.TrimSpace(alt))
		if isEpsilonAlt(syms) {
			pl.alts = append(pl.alts, nil)
			continue
		}
		for _, s := range syms {
			if s == Epsilon {
				return pl, &GrammarError{Sym: pl.lhs, Reason: "ε must stand alone in an alternative"}
			}
		}
		pl.alts = append(pl.alts, syms)
	}
	return pl, nil
}

func isEpsilonAlt(syms []string) bool {
	return len(syms) == 0 || (len(syms) == 1 && syms[0] == Epsilon)
}

// scanSymbols splits an alternative into symbols: maximal runs of letters,
// digits and '_' form one symbol, any other non-space rune stands alone.
func scanSymbols(text string) []string {
	var syms []string
	var word []rune
	flush := func() {
		if len(word) > 0 {
			syms = append(syms, string(word))
			word = word[:0]
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			word = append(word, r)
		default:
			flush()
			syms = append(syms, string(r))
		}
	}
	flush()
	return syms
}
