package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/parsekit/cfg"
	"github.com/npillmayer/parsekit/lr"
	"github.com/npillmayer/parsekit/parse"
	"github.com/npillmayer/parsekit/scanner"
	"github.com/npillmayer/parsekit/tree"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// glab is an interactive grammar laboratory. Users enter grammar rules in
// plain-text notation, inspect FIRST/FOLLOW-sets, apply transformations,
// check a grammar for LL(1)/LR(0)/SLR(1) conflicts and parse sample input
// with any of the parser variants.

// We provide a simple expression grammar as a default for experiments.
const defaultGrammar = `E -> E + T | T
T -> T * F | F
F -> id | ( E )`

func tracer() tracing.Trace {
	return tracing.Select("parsekit.glab")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to glab, the grammar laboratory")
	pterm.Info.Println("Enter rules like  E -> E + T | T  or :help for commands")
	//
	repl, err := readline.New("glab> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	lab := &Lab{repl: repl}
	lab.setGrammar(strings.Split(defaultGrammar, "\n"))
	lab.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// Lab is the interpreter state: the grammar lines entered so far, plus the
// grammar and analysis built from them.
type Lab struct {
	repl  *readline.Instance
	lines []string
	g     *cfg.Grammar
	ga    *cfg.Analysis
}

// REPL starts interactive mode.
func (lab *Lab) REPL() {
	for {
		line, err := lab.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := lab.exec(line); quit {
			break
		}
	}
	println("Good bye!")
}

func (lab *Lab) exec(line string) bool {
	if strings.Contains(line, "->") && !strings.HasPrefix(line, ":") {
		lab.setGrammar(append(lab.lines, line))
		return false
	}
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]
	switch cmd {
	case ":quit":
		return true
	case ":help":
		lab.help()
	case ":grammar":
		lab.showGrammar()
	case ":reset":
		lab.lines = nil
		lab.setGrammar(nil)
	case ":nullable":
		lab.showNullable()
	case ":first":
		lab.showSet("FIRST", args)
	case ":follow":
		lab.showSet("FOLLOW", args)
	case ":lrec":
		lab.transform(cfg.EliminateLeftRecursion)
	case ":factor":
		lab.transform(cfg.LeftFactor)
	case ":cfsm":
		lab.cfsm(args)
	case ":conflicts":
		lab.conflicts(args)
	case ":parse":
		lab.parse(args)
	default:
		pterm.Error.Println("unknown command; :help lists all commands")
	}
	return false
}

func (lab *Lab) help() {
	pterm.Info.Println(`commands:
  A -> α | β          add a grammar rule (plain-text notation)
  :grammar            show the current grammar
  :reset              discard the current grammar
  :nullable           list the ε-derivable non-terminals
  :first A            show FIRST(A)
  :follow A           show FOLLOW(A)
  :lrec               eliminate left recursion
  :factor             left-factor the grammar
  :cfsm [file.dot]    show the LR(0) automaton, or export it to Graphviz
  :conflicts V        list table conflicts for variant V = ll1|lr0|slr1
  :parse V input...   parse input with variant V = ll1|lr0|slr1|bt
  :quit               leave glab`)
}

func (lab *Lab) setGrammar(lines []string) {
	if len(lines) == 0 {
		lab.lines, lab.g, lab.ga = nil, nil, nil
		return
	}
	g, err := cfg.Parse("glab", strings.Join(lines, "\n"))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	lab.lines = lines
	lab.g = g
	lab.ga = cfg.Analyze(g)
}

func (lab *Lab) ready() bool {
	if lab.g == nil {
		pterm.Error.Println("no grammar yet; enter rules like  E -> E + T | T")
		return false
	}
	return true
}

func (lab *Lab) showGrammar() {
	if !lab.ready() {
		return
	}
	lab.g.EachRule(func(r *cfg.Rule) {
		pterm.Println(fmt.Sprintf("%3d: %s", r.Serial, r))
	})
}

func (lab *Lab) showNullable() {
	if !lab.ready() {
		return
	}
	var nullable []string
	lab.g.EachNonTerminal(func(A *cfg.Symbol) interface{} {
		if lab.ga.Nullable(A) {
			nullable = append(nullable, A.Name)
		}
		return nil
	})
	pterm.Info.Println("nullable: " + strings.Join(nullable, " "))
}

func (lab *Lab) showSet(which string, args []string) {
	if !lab.ready() {
		return
	}
	if len(args) != 1 {
		pterm.Error.Printf("usage: :%s A\n", strings.ToLower(which))
		return
	}
	A := lab.g.SymbolByName(args[0])
	if A == nil || A.IsTerminal() {
		pterm.Error.Printf("no non-terminal %q in grammar\n", args[0])
		return
	}
	set := lab.ga.First(A)
	if which == "FOLLOW" {
		set = lab.ga.Follow(A)
	}
	names := lab.ga.TerminalsOf(set)
	if which == "FIRST" && set.Has(cfg.EpsilonType) {
		names = append([]string{"ε"}, names...)
	}
	pterm.Info.Printf("%s(%s) = { %s }\n", which, A.Name, strings.Join(names, " "))
}

func (lab *Lab) transform(t func(*cfg.Grammar) (*cfg.Grammar, error)) {
	if !lab.ready() {
		return
	}
	g, err := t(lab.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	// lab.lines keeps the untransformed rules; entering a new rule
	// rebuilds the grammar from those
	lab.g = g
	lab.ga = cfg.Analyze(g)
	lab.showGrammar()
}

func (lab *Lab) cfsm(args []string) {
	if !lab.ready() {
		return
	}
	lrgen := lr.NewTableGenerator(lab.ga)
	dfa := lrgen.CFSM()
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		defer f.Close()
		if err := dfa.CFSM2GraphViz(f); err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		pterm.Info.Printf("CFSM with %d states written to %s\n", dfa.Size(), args[0])
		return
	}
	ll := pterm.LeveledList{}
	for _, s := range dfa.Snapshot().States {
		label := fmt.Sprintf("state %d", s.ID)
		if s.Accept {
			label += " (accept)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: label})
		for _, item := range s.Items {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: item})
		}
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func (lab *Lab) conflicts(args []string) {
	if !lab.ready() || len(args) != 1 {
		if len(args) != 1 {
			pterm.Error.Println("usage: :conflicts ll1|lr0|slr1")
		}
		return
	}
	v, ok := variant(args[0])
	if !ok || v == parse.Backtracking {
		pterm.Error.Println("usage: :conflicts ll1|lr0|slr1")
		return
	}
	if _, err := parse.Build(v, lab.ga); err != nil {
		if cerr, isconflict := err.(*parse.ConflictError); isconflict {
			for _, c := range cerr.Conflicts {
				pterm.Error.Println(c.String())
			}
			return
		}
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Printf("grammar is %v\n", v)
}

func (lab *Lab) parse(args []string) {
	if !lab.ready() {
		return
	}
	if len(args) < 2 {
		pterm.Error.Println("usage: :parse ll1|lr0|slr1|bt input...")
		return
	}
	v, ok := variant(args[0])
	if !ok {
		pterm.Error.Println("usage: :parse ll1|lr0|slr1|bt input...")
		return
	}
	p, err := parse.Build(v, lab.ga)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	input := strings.Join(args[1:], " ")
	t, err := p.Parse(scanner.LexemeTokenizer(lab.g, input))
	if err != nil {
		pterm.Error.Println(err.Error())
		if t == nil {
			return
		}
	}
	printTree(t)
}

func variant(s string) (parse.Variant, bool) {
	switch strings.ToLower(s) {
	case "ll1":
		return parse.LL1, true
	case "lr0":
		return parse.LR0, true
	case "slr1", "slr":
		return parse.SLR1, true
	case "bt", "backtrack":
		return parse.Backtracking, true
	}
	return 0, false
}

func printTree(t *tree.Node) {
	ll := pterm.LeveledList{}
	t.Walk(func(n *tree.Node, level int) {
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: n.Label()})
	})
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}
