// Package trialset provides a compact set of trial ids.
package trialset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of trial ids backed by a 32-bit Roaring bitmap.
// It is not safe for concurrent use.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Of creates a set holding ids.
func Of(ids ...int) *Set {
	s := New()
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts a trial id. Negative ids are ignored.
func (s *Set) Add(id int) {
	if id < 0 {
		return
	}
	s.rb.Add(uint32(id)) //nolint:gosec // trial ids are bounded by the history length
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id int) bool {
	if id < 0 {
		return false
	}
	return s.rb.Contains(uint32(id)) //nolint:gosec
}

// Len returns the number of ids.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality()) //nolint:gosec
}

// IsEmpty reports whether the set holds no ids.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// All iterates the ids in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Slice returns the ids in ascending order.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.Len())
	for id := range s.All() {
		out = append(out, id)
	}
	return out
}
