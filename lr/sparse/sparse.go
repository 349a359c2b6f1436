/*
Package sparse implements a simple type for sparse integer matrices.
Every entry in the matrix is either a single int32 or a pair (int32, int32).

Within this module it records the sparse residue of conflict resolution: the
table generator notes, per (state, terminal) cell, which reduce action a
shift displaced (two values at one position), so conflict reports can show
both contenders without rerunning the analysis.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

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

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value at this position
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
type IntMatrix struct {
	triplets []triplet
	rowcnt   int
	colcnt   int
	nullval  int32
}

// Triplet values to store: a position plus up to two values.
type triplet struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates a new matrix for int32 values, size m x n. The 3rd
// argument is a null-value, indicating empty entries (use DefaultNullValue
// if you haven't any specific requirements).
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

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.triplets)
}

// find returns the position where (i,j) is or would be stored, triplets
// being kept in row-major order.
func (m *IntMatrix) find(i, j int) (int, bool) {
	at := sort.Search(len(m.triplets), func(k int) bool {
		t := m.triplets[k]
		return t.row > i || t.row == i && t.col >= j
	})
	return at, at < len(m.triplets) && m.triplets[at].row == i && m.triplets[at].col == j
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	if at, ok := m.find(i, j); ok {
		return m.triplets[at].a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or
// (NullValue, NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if at, ok := m.find(i, j); ok {
		return m.triplets[at].a, m.triplets[at].b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), discarding a possible second
// value there.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	at, ok := m.find(i, j)
	if ok {
		m.triplets[at].a, m.triplets[at].b = value, m.nullval
		return m
	}
	m.insert(at, triplet{row: i, col: j, a: value, b: m.nullval})
	return m
}

// Add a value in the matrix at position (i,j). The first Add at an empty
// position stores the primary value, the second one the secondary; further
// Adds overwrite the secondary value.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	at, ok := m.find(i, j)
	if !ok {
		m.insert(at, triplet{row: i, col: j, a: value, b: m.nullval})
		return m
	}
	if m.triplets[at].a == m.nullval {
		m.triplets[at].a = value
	} else {
		m.triplets[at].b = value
	}
	return m
}

// Each calls f for every position set in the matrix, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.triplets {
		f(t.row, t.col, t.a, t.b)
	}
}

func (m *IntMatrix) insert(at int, t triplet) {
	m.triplets = append(m.triplets, triplet{})
	copy(m.triplets[at+1:], m.triplets[at:])
	m.triplets[at] = t
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", t.row, t.col, t.a, t.b)
}
