/*
Package parsekit is a grammar-analysis and parsing toolbox.

ParseKit strives to be a smart and lightweight workbench for studying and
driving classic parsing algorithms on context-free grammars: grammar
transformation, FIRST/FOLLOW computation, predictive LL(1) parsing,
LR(0)/SLR(1) shift-reduce parsing, and naive backtracking as a cross-check.
Package structure is as follows:

■ cfg: Package cfg implements the grammar model, grammar transformations
(left-recursion elimination and left factoring) and static grammar analysis
(nullable symbols, FIRST- and FOLLOW-sets).

■ ll1: Package ll1 constructs predictive parse tables and implements a
table-driven top-down parser.

■ lr: Package lr constructs the canonical LR(0) item-set collection (CFSM)
and ACTION/GOTO tables; sub-package slr implements the shift-reduce driver.

■ backtrack: Package backtrack implements a depth-bounded recursive-descent
parser with backtracking, operating on untransformed grammars.

■ parse: Package parse bundles the parser variants behind a single
build/run capability.

■ scanner, tree: supporting seams for token input and parse-tree output.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsekit
