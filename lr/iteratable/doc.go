/*
Package iteratable implements an iteratable container data structure.

Set is a special purpose set type, suitable mainly for implementing algorithms
around parser construction. These kinds of algorithms are often more
straightforward to describe as set constructions, with sets growing while
they are being iterated. The closure operation over LR items is the
prototypical client.

Unusually, most set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
