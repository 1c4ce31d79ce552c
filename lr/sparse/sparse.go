/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32).

This implementation uses the COO algorithm (a.k.a. triplet-encoding),
with cells kept in row-major order for binary search.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Every position holds up to two values. Positions cannot be deleted, but
// may be overwritten with the null-value.
type IntMatrix struct {
	cells   []cell
	rowcnt  int
	colcnt  int
	nullval int32
}

// A cell stores up to 2 values at a matrix position.
type cell struct {
	row, col int
	a, b     int32
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new matrix for int32, size m x n. The 3rd argument
// is a null-value, indicating empty entries (use DefaultNullValue if you
// haven't any specific requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of occupied positions in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.cells)
}

// find locates the cell for (i,j), or the insertion point for it.
func (m *IntMatrix) find(i, j int) (int, bool) {
	at := sort.Search(len(m.cells), func(k int) bool {
		c := m.cells[k]
		return c.row > i || (c.row == i && c.col >= j)
	})
	found := at < len(m.cells) && m.cells[at].row == i && m.cells[at].col == j
	return at, found
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	if at, found := m.find(i, j); found {
		return m.cells[at].a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or
// (NullValue, NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if at, found := m.find(i, j); found {
		return m.cells[at].a, m.cells[at].b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), overwriting a present value.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	at, found := m.find(i, j)
	if found {
		m.cells[at].a = value
		m.cells[at].b = m.nullval
		return m
	}
	return m.insert(at, i, j, value)
}

// Add a value in the matrix at position (i,j). A position holds up to two
// values; adding a value which is already present is a no-op, adding a third
// distinct value overwrites the secondary one.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	at, found := m.find(i, j)
	if !found {
		return m.insert(at, i, j, value)
	}
	c := &m.cells[at]
	switch {
	case c.a == value || c.b == value:
		// already present
	case c.a == m.nullval:
		c.a = value
	default:
		c.b = value
	}
	return m
}

func (m *IntMatrix) insert(at, i, j int, value int32) *IntMatrix {
	cnew := cell{row: i, col: j, a: value, b: m.nullval}
	m.cells = append(m.cells, cell{})
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = cnew
	return m
}

func (c cell) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", c.row, c.col, c.a, c.b)
}
