package lotto

import (
	"math/bits"
)

const (
	// Universe is the count of playable numbers, 00 through 99.
	Universe = 100
	// MaxNumber is the highest playable number.
	MaxNumber = Universe - 1
	// DrawSize is how many numbers an official draw contains.
	DrawSize = 20
	// GameSize is how many numbers a single bet marks.
	GameSize = 50
)

// upperMask keeps only the 36 valid bits (64..99) of the second word.
const upperMask = uint64(1)<<(Universe-64) - 1

// Set is a bitset over the number universe. The zero value is an empty set.
// Iteration is always ascending, so any slice produced from a Set is sorted.
type Set [2]uint64

// SetOf builds a Set from the given numbers, ignoring out-of-range values.
func SetOf(nums ...int) Set {
	var s Set
	for _, n := range nums {
		s.Add(n)
	}
	return s
}

// InRange reports whether n is a playable number.
func InRange(n int) bool {
	return n >= 0 && n < Universe
}

// Add inserts n and reports whether the set changed.
func (s *Set) Add(n int) bool {
	if !InRange(n) || s.Has(n) {
		return false
	}
	s[n>>6] |= 1 << (uint(n) & 63)
	return true
}

// Remove deletes n and reports whether the set changed.
func (s *Set) Remove(n int) bool {
	if !s.Has(n) {
		return false
	}
	s[n>>6] &^= 1 << (uint(n) & 63)
	return true
}

// Has reports whether n is a member.
func (s Set) Has(n int) bool {
	if !InRange(n) {
		return false
	}
	return s[n>>6]&(1<<(uint(n)&63)) != 0
}

// Len returns the number of members.
func (s Set) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1])
}

// Intersect returns the members present in both sets.
func (s Set) Intersect(o Set) Set {
	return Set{s[0] & o[0], s[1] & o[1]}
}

// Union returns the members present in either set.
func (s Set) Union(o Set) Set {
	return Set{s[0] | o[0], s[1] | o[1]}
}

// Without returns the members of s that are not in o.
func (s Set) Without(o Set) Set {
	return Set{s[0] &^ o[0], s[1] &^ o[1]}
}

// Complement returns every playable number missing from s.
func (s Set) Complement() Set {
	return Set{^s[0], ^s[1] & upperMask}
}

// Each calls fn for every member in ascending order.
func (s Set) Each(fn func(n int)) {
	for w := 0; w < 2; w++ {
		word := s[w]
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			fn(w*64 + tz)
			word &= word - 1
		}
	}
}

// Nth returns the i-th smallest member (0-based), or -1 if i is out of bounds.
func (s Set) Nth(i int) int {
	if i < 0 {
		return -1
	}
	for w := 0; w < 2; w++ {
		word := s[w]
		c := bits.OnesCount64(word)
		if i >= c {
			i -= c
			continue
		}
		for ; i > 0; i-- {
			word &= word - 1
		}
		return w*64 + bits.TrailingZeros64(word)
	}
	return -1
}

// Numbers returns the members in ascending order.
func (s Set) Numbers() []int {
	out := make([]int, 0, s.Len())
	s.Each(func(n int) { out = append(out, n) })
	return out
}

// Strings returns the members zero-padded, in ascending order.
func (s Set) Strings() []string {
	out := make([]string, 0, s.Len())
	s.Each(func(n int) { out = append(out, FormatNumber(n)) })
	return out
}

// Mirror maps every member n to 99-n.
func (s Set) Mirror() Set {
	var m Set
	s.Each(func(n int) { m.Add(MaxNumber - n) })
	return m
}
