package cfg

// Grammar transformations for top-down parsing: left-recursion elimination
// and left factoring. Both derive a fresh grammar and leave the input
// grammar untouched, so clients can inspect the original and the transformed
// grammar side by side. Both are bounded by limits derived from grammar
// size and report a TransformError instead of looping.

// An altGroup collects the alternatives of one non-terminal, in declaration
// order. Transformations work on a name-level representation and rebuild a
// proper grammar at the end, reusing the original terminal token values.
type altGroup struct {
	lhs  string
	alts [][]string
}

func groupsOf(g *Grammar) []altGroup {
	var groups []altGroup
	index := make(map[string]int)
	for _, r := range g.rules[1:] { // skip the augmented rule
		alt := make([]string, 0, len(r.rhs))
		for _, sym := range r.rhs {
			alt = append(alt, sym.Name)
		}
		if i, ok := index[r.LHS.Name]; ok {
			groups[i].alts = append(groups[i].alts, alt)
		} else {
			index[r.LHS.Name] = len(groups)
			groups = append(groups, altGroup{lhs: r.LHS.Name, alts: [][]string{alt}})
		}
	}
	return groups
}

func altCount(groups []altGroup) int {
	n := 0
	for _, grp := range groups {
		n += len(grp.alts)
	}
	return n
}

// freshName derives a new non-terminal name from a base name by appending
// primes until the name is unused. Names depend only on the input grammar,
// so repeated runs produce identical results.
func freshName(base string, groups []altGroup, g *Grammar) string {
	name := base + "'"
	for {
		taken := g.SymbolByName(name) != nil
		for _, grp := range groups {
			if grp.lhs == name {
				taken = true
			}
		}
		if !taken {
			return name
		}
		name += "'"
	}
}

// rebuild turns the name-level representation back into a grammar. Terminal
// token values are looked up in the source grammar; primed non-terminals are
// new symbols.
func rebuild(g *Grammar, groups []altGroup) (*Grammar, error) {
	isNonTerm := make(map[string]bool)
	for _, grp := range groups {
		isNonTerm[grp.lhs] = true
	}
	b := NewGrammarBuilder(g.Name)
	for _, grp := range groups {
		for _, alt := range grp.alts {
			rb := b.LHS(grp.lhs)
			if len(alt) == 0 {
				rb.Epsilon()
				continue
			}
			for _, name := range alt {
				if isNonTerm[name] {
					rb.N(name)
				} else {
					rb.T(name, g.SymbolByName(name).Value)
				}
			}
			rb.End()
		}
	}
	return b.Grammar()
}

// --- Left-recursion elimination ----------------------------------------------

// EliminateLeftRecursion derives a grammar without left-recursive rules.
// Non-terminals are processed in declaration order A1…An: for Ai, every
// alternative starting with an earlier Aj is expanded by substituting Aj's
// alternatives, then immediate left recursion on Ai is removed by the
// standard rewrite
//
//    Ai -> Ai α | β   ⇒   Ai -> β Ai'  and  Ai' -> α Ai' | ε
//
// with a fresh non-terminal Ai'. Substitution can blow up pathological
// grammars; if the number of alternatives exceeds a bound derived from
// grammar size, a TransformError is returned.
func EliminateLeftRecursion(g *Grammar) (*Grammar, error) {
	groups := groupsOf(g)
	limit := (altCount(groups) + 1) * (len(groups) + 1) * 4
	return eliminateLeftRecursion(g, groups, limit)
}

func eliminateLeftRecursion(g *Grammar, groups []altGroup, limit int) (*Grammar, error) {
	n := len(groups) // primed groups get appended; only the originals iterate
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			groups[i].alts = substitute(groups[i].alts, groups[j])
			if altCount(groups) > limit {
				return nil, &TransformError{Op: "left-recursion elimination", Limit: limit}
			}
		}
		groups = removeImmediateRecursion(groups, i, g)
	}
	gnew, err := rebuild(g, groups)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("eliminated left recursion: %d → %d rules", g.Size(), gnew.Size())
	return gnew, nil
}

// substitute expands every alternative of the form  Aj γ  into one
// alternative per Aj-alternative, preserving order.
func substitute(alts [][]string, prev altGroup) [][]string {
	var out [][]string
	for _, alt := range alts {
		if len(alt) > 0 && alt[0] == prev.lhs {
			for _, palt := range prev.alts {
				expanded := append(append([]string(nil), palt...), alt[1:]...)
				out = append(out, expanded)
			}
		} else {
			out = append(out, alt)
		}
	}
	return out
}

// removeImmediateRecursion rewrites  A -> A α | β  as  A -> β A' and
// A' -> α A' | ε. Groups without immediate recursion are left alone.
func removeImmediateRecursion(groups []altGroup, i int, g *Grammar) []altGroup {
	grp := groups[i]
	var recursive, plain [][]string
	for _, alt := range grp.alts {
		if len(alt) > 0 && alt[0] == grp.lhs {
			recursive = append(recursive, alt[1:]) // the α part
		} else {
			plain = append(plain, alt)
		}
	}
	if len(recursive) == 0 {
		return groups
	}
	primed := freshName(grp.lhs, groups, g)
	var alts [][]string
	for _, beta := range plain {
		alts = append(alts, append(append([]string(nil), beta...), primed))
	}
	if len(alts) == 0 { // every alternative was recursive
		alts = [][]string{{primed}}
	}
	var palts [][]string
	for _, alpha := range recursive {
		palts = append(palts, append(append([]string(nil), alpha...), primed))
	}
	palts = append(palts, nil) // A' -> ε
	groups[i].alts = alts
	return append(groups, altGroup{lhs: primed, alts: palts})
}

// --- Left factoring ----------------------------------------------------------

// LeftFactor derives a grammar in which no non-terminal has two alternatives
// sharing a common nonempty prefix. It repeatedly factors the longest such
// prefix into
//
//    A -> prefix A'  and  A' -> rest1 | rest2 | …
//
// until a fixpoint is reached. Each step is deterministic: the longest
// prefix wins, ties go to the earliest alternative. The number of factoring
// steps is bounded by grammar size; exceeding the bound yields a
// TransformError.
func LeftFactor(g *Grammar) (*Grammar, error) {
	groups := groupsOf(g)
	return leftFactor(g, groups, factorLimit(groups))
}

func leftFactor(g *Grammar, groups []altGroup, limit int) (*Grammar, error) {
	for steps := 0; ; steps++ {
		if steps > limit {
			return nil, &TransformError{Op: "left factoring", Limit: limit}
		}
		i, prefix := findFactorable(groups)
		if prefix == nil {
			break // fixpoint: nothing left to factor
		}
		groups = factorOut(groups, i, prefix, g)
	}
	gnew, err := rebuild(g, groups)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("left-factored: %d → %d rules", g.Size(), gnew.Size())
	return gnew, nil
}

func factorLimit(groups []altGroup) int {
	symbols := 0
	for _, grp := range groups {
		for _, alt := range grp.alts {
			symbols += len(alt)
		}
	}
	return symbols + len(groups) + 8
}

// findFactorable returns the first group with a factorable prefix, together
// with the longest common prefix of any two of its alternatives.
func findFactorable(groups []altGroup) (int, []string) {
	for i, grp := range groups {
		if prefix := longestCommonPrefix(grp.alts); prefix != nil {
			return i, prefix
		}
	}
	return -1, nil
}

func longestCommonPrefix(alts [][]string) []string {
	var best []string
	for i := 0; i < len(alts); i++ {
		for j := i + 1; j < len(alts); j++ {
			k := 0
			for k < len(alts[i]) && k < len(alts[j]) && alts[i][k] == alts[j][k] {
				k++
			}
			if k > len(best) {
				best = alts[i][:k]
			}
		}
	}
	return best
}

// factorOut splits group i by the given prefix: alternatives carrying the
// prefix move, with the prefix stripped, to a fresh primed non-terminal;
// the group keeps its remaining alternatives plus the rule  A -> prefix A',
// appended last.
func factorOut(groups []altGroup, i int, prefix []string, g *Grammar) []altGroup {
	grp := groups[i]
	primed := freshName(grp.lhs, groups, g)
	var rests, others [][]string
	for _, alt := range grp.alts {
		if hasPrefix(alt, prefix) {
			rest := alt[len(prefix):]
			if len(rest) == 0 {
				rests = append(rests, nil)
			} else {
				rests = append(rests, rest)
			}
		} else {
			others = append(others, alt)
		}
	}
	factored := append(append([]string(nil), prefix...), primed)
	groups[i].alts = append(others, factored)
	return append(groups, altGroup{lhs: primed, alts: rests})
}

func hasPrefix(alt, prefix []string) bool {
	if len(alt) < len(prefix) {
		return false
	}
	for k, s := range prefix {
		if alt[k] != s {
			return false
		}
	}
	return true
}

// NeedsLL1Transform reports whether a grammar has immediate left recursion
// or factorable common prefixes, i.e. whether it must be transformed before
// LL(1) table construction can succeed.
func NeedsLL1Transform(g *Grammar) bool {
	groups := groupsOf(g)
	for _, grp := range groups {
		for _, alt := range grp.alts {
			if len(alt) > 0 && alt[0] == grp.lhs {
				return true
			}
		}
		if longestCommonPrefix(grp.alts) != nil {
			return true
		}
	}
	return false
}
