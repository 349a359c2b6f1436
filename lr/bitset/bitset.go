/*
Package bitset implements a simple fixed-universe set type for small
non-negative integers, packed into machine words. It is mainly used for the
terminal-sets of LALR lookahead computation (DirectRead-, Read- and
FOLLOW-sets), where set algebra over a fixed alphabet is the dominant
operation.

Sets are created with a fixed capacity and never grow:

   S := bitset.New(64)     // universe is 0…63
   S.Add(7)
   T := bitset.New(64)
   T.Add(7)
   S.DisjointWith(T)       // returns false

All binary operations require both operands to be of equal capacity.
Violating this is a programmer error and will panic, as will accessing an
element outside the universe. Neither is an expected data condition.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bitset

import (
	"fmt"
	"strings"
)

const wordSize = 64

// Set is a fixed-universe set of integers 0…capacity-1, backed by a packed
// bit array. The zero value is not usable; create sets with New.
type Set struct {
	capacity int
	words    []uint64
}

// New creates an empty set with universe 0…capacity-1.
func New(capacity int) *Set {
	if capacity < 0 {
		panic(fmt.Sprintf("bitset.New() with negative capacity %d", capacity))
	}
	return &Set{
		capacity: capacity,
		words:    make([]uint64, (capacity+wordSize-1)/wordSize),
	}
}

// Capacity returns the size of the universe of s.
func (s *Set) Capacity() int {
	return s.capacity
}

func (s *Set) checkRange(n int) {
	if n < 0 || n >= s.capacity {
		panic(fmt.Sprintf("bitset element %d out of range 0…%d", n, s.capacity-1))
	}
}

func (s *Set) checkCapacity(other *Set) {
	if s.capacity != other.capacity {
		panic(fmt.Sprintf("bitset capacity mismatch: %d vs %d", s.capacity, other.capacity))
	}
}

// Add includes n in the set.
func (s *Set) Add(n int) *Set {
	s.checkRange(n)
	s.words[n/wordSize] |= 1 << uint(n%wordSize)
	return s
}

// Remove excludes n from the set.
func (s *Set) Remove(n int) *Set {
	s.checkRange(n)
	s.words[n/wordSize] &^= 1 << uint(n%wordSize)
	return s
}

// Contains returns true if n is a member of the set.
func (s *Set) Contains(n int) bool {
	s.checkRange(n)
	return s.words[n/wordSize]&(1<<uint(n%wordSize)) != 0
}

// UnionWith adds all members of other to s (destructive). It reports whether
// s changed, which is what fixed-point iterations want to know.
func (s *Set) UnionWith(other *Set) bool {
	s.checkCapacity(other)
	changed := false
	for i, w := range other.words {
		if s.words[i]|w != s.words[i] {
			changed = true
		}
		s.words[i] |= w
	}
	return changed
}

// IntersectWith removes all members of s not contained in other (destructive).
func (s *Set) IntersectWith(other *Set) {
	s.checkCapacity(other)
	for i := range s.words {
		s.words[i] &= other.words[i]
	}
}

// Minus returns a new set holding the relative complement s \ other.
func (s *Set) Minus(other *Set) *Set {
	s.checkCapacity(other)
	r := New(s.capacity)
	for i := range s.words {
		r.words[i] = s.words[i] &^ other.words[i]
	}
	return r
}

// DisjointWith returns true if s and other have no member in common.
func (s *Set) DisjointWith(other *Set) bool {
	s.checkCapacity(other)
	for i := range s.words {
		if s.words[i]&other.words[i] != 0 {
			return false
		}
	}
	return true
}

// IsEmpty returns true if the set has no members.
func (s *Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Size returns the number of members.
func (s *Set) Size() int {
	cnt := 0
	for _, w := range s.words {
		for ; w != 0; w &= w - 1 {
			cnt++
		}
	}
	return cnt
}

// Copy returns an independent copy of s.
func (s *Set) Copy() *Set {
	r := New(s.capacity)
	copy(r.words, s.words)
	return r
}

// Equals returns true if s and other contain exactly the same members.
func (s *Set) Equals(other *Set) bool {
	s.checkCapacity(other)
	for i := range s.words {
		if s.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Each calls f for every member of s, in ascending order.
func (s *Set) Each(f func(n int)) {
	for i, w := range s.words {
		for w != 0 {
			b := w & -w // lowest set bit
			n := i * wordSize
			for m := b; m > 1; m >>= 1 {
				n++
			}
			f(n)
			w &^= b
		}
	}
}

// AppendTo appends the members of s, in ascending order, to buf and returns
// the extended slice.
func (s *Set) AppendTo(buf []int) []int {
	s.Each(func(n int) {
		buf = append(buf, n)
	})
	return buf
}

// String returns a member list like "{ 1 5 12 }".
func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("{")
	s.Each(func(n int) {
		fmt.Fprintf(&b, " %d", n)
	})
	b.WriteString(" }")
	return b.String()
}
