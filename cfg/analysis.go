package cfg

import (
	"golang.org/x/tools/container/intsets"
)

// Analysis holds the results of static grammar analysis: the set of
// epsilon-derivable non-terminals and the FIRST- and FOLLOW-sets of all
// symbols. The sets are computed once, by fixed-point iteration, and are
// immutable afterwards. An Analysis object is handed to every table builder
// as an explicit context value; builders never share mutable state.
//
// Sets are represented as intsets over token values, with 0 denoting ε
// (see EpsilonType) and text/scanner.EOF denoting the end-of-input marker.
type Analysis struct {
	g        *Grammar
	nullable map[*Symbol]bool
	first    map[*Symbol]*intsets.Sparse
	follow   map[*Symbol]*intsets.Sparse
}

// Analyze analyses a grammar and computes nullable symbols and FIRST- and
// FOLLOW-sets for it.
func Analyze(g *Grammar) *Analysis {
	ga := &Analysis{
		g:        g,
		nullable: make(map[*Symbol]bool),
		first:    make(map[*Symbol]*intsets.Sparse),
		follow:   make(map[*Symbol]*intsets.Sparse),
	}
	ga.init()
	// every productive pass inserts at least one value or flips one flag,
	// so the fixed points settle within rules x symbols passes
	bound := g.Size()*len(g.symbols) + 1
	iterate(bound, ga.nullablePass)
	iterate(bound, ga.firstPass)
	iterate(bound, ga.followPass)
	ga.trace()
	return ga
}

func iterate(bound int, pass func() bool) {
	for i := 0; pass(); i++ {
		if i >= bound {
			tracer().Errorf("set computation did not settle within %d passes", bound)
			return
		}
	}
}

// Grammar returns the grammar this analysis is for.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

// Nullable returns true if symbol A derives ε. Terminals are never nullable.
func (ga *Analysis) Nullable(A *Symbol) bool {
	return ga.nullable[A]
}

// First returns FIRST(A): the token values which may begin a derivation of
// A, including 0 (ε) if A is nullable. Callers must not modify the set.
func (ga *Analysis) First(A *Symbol) *intsets.Sparse {
	return ga.first[A]
}

// Follow returns FOLLOW(A) for a non-terminal A: the token values which may
// immediately follow A in a derivation from the start symbol. Callers must
// not modify the set.
func (ga *Analysis) Follow(A *Symbol) *intsets.Sparse {
	return ga.follow[A]
}

// FirstOfSequence computes FIRST for a sequence of symbols, i.e. for the RHS
// of a rule: the union of the FIRST-sets of the symbols, propagated left to
// right up to the first non-nullable symbol. If the whole sequence is
// nullable, the result includes ε. The returned set is freshly allocated.
func (ga *Analysis) FirstOfSequence(seq []*Symbol) *intsets.Sparse {
	f := &intsets.Sparse{}
	for _, sym := range seq {
		fs := ga.first[sym]
		unionWithoutEps(f, fs)
		if !fs.Has(EpsilonType) {
			return f
		}
	}
	f.Insert(EpsilonType) // every symbol of seq may derive ε
	return f
}

func (ga *Analysis) init() {
	ga.g.EachTerminal(func(t *Symbol) interface{} {
		f := &intsets.Sparse{}
		f.Insert(t.Value)
		ga.first[t] = f
		return nil
	})
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		ga.first[A] = &intsets.Sparse{}
		ga.follow[A] = &intsets.Sparse{}
		return nil
	})
	ga.follow[ga.g.Rule(0).LHS].Insert(EOFType) // seed FOLLOW(S') with #eof
}

// nullablePass performs one fixed-point iteration of the nullable
// computation and reports whether anything changed.
func (ga *Analysis) nullablePass() bool {
	changed := false
	ga.g.EachRule(func(r *Rule) {
		if ga.nullable[r.LHS] {
			return
		}
		for _, sym := range r.rhs {
			if sym.IsTerminal() || !ga.nullable[sym] {
				return
			}
		}
		ga.nullable[r.LHS] = true // all of RHS derives ε (vacuously for ε-rules)
		changed = true
	})
	return changed
}

// firstPass performs one fixed-point iteration of the FIRST computation.
func (ga *Analysis) firstPass() bool {
	changed := false
	ga.g.EachRule(func(r *Rule) {
		f := ga.first[r.LHS]
		if unionInto(f, ga.FirstOfSequence(r.rhs)) {
			changed = true
		}
	})
	return changed
}

// followPass performs one fixed-point iteration of the FOLLOW computation.
func (ga *Analysis) followPass() bool {
	changed := false
	ga.g.EachRule(func(r *Rule) {
		for i, sym := range r.rhs {
			if sym.IsTerminal() {
				continue
			}
			fl := ga.follow[sym]
			rest := ga.FirstOfSequence(r.rhs[i+1:])
			if unionWithoutEps(fl, rest) {
				changed = true
			}
			if rest.Has(EpsilonType) { // includes the case of an empty rest
				if unionInto(fl, ga.follow[r.LHS]) {
					changed = true
				}
			}
		}
	})
	return changed
}

// unionInto inserts the values of src into dst one by one and reports
// whether dst grew. Sparse.UnionWith cannot serve as the change signal of
// the fixed-point passes: it reports a change even when dst is already a
// superset of src.
func unionInto(dst, src *intsets.Sparse) bool {
	changed := false
	for _, v := range src.AppendTo(nil) {
		if dst.Insert(v) {
			changed = true
		}
	}
	return changed
}

func unionWithoutEps(dst, src *intsets.Sparse) bool {
	changed := false
	var vals []int
	for _, v := range src.AppendTo(vals) {
		if v == EpsilonType {
			continue
		}
		if dst.Insert(v) {
			changed = true
		}
	}
	return changed
}

func (ga *Analysis) trace() {
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		tracer().Debugf("FIRST(%s)  = %s", A.Name, ga.first[A].String())
		tracer().Debugf("FOLLOW(%s) = %s", A.Name, ga.follow[A].String())
		return nil
	})
}

// TerminalsOf maps a set of token values back to terminal names, in
// ascending token-value order. ε and unknown values are skipped. This is
// used for expected-token reporting and table rendering.
func (ga *Analysis) TerminalsOf(set *intsets.Sparse) []string {
	var names []string
	for _, v := range set.AppendTo(nil) {
		if v == EpsilonType {
			continue
		}
		if t := ga.g.TerminalByValue(v); t != nil {
			names = append(names, t.Name)
		}
	}
	return names
}
