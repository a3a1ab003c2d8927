// Package ordered provides a slice that stays sorted by a comparator and the
// binary search primitive it is built on.
package ordered

import (
	"iter"
	"slices"
)

// Sequence is a mutable sequence kept continuously sorted by its comparator.
// All structural mutation must go through its methods; Transform is the one
// exception and leaves re-sorting to the caller.
//
// A Sequence is not safe for concurrent mutation.
type Sequence[T any] struct {
	items []T
	cmp   Comparator[T]
}

// NewSequence returns a sequence holding a sorted copy of items.
func NewSequence[T any](cmp Comparator[T], items ...T) *Sequence[T] {
	s := &Sequence[T]{
		items: slices.Clone(items),
		cmp:   cmp,
	}
	s.Sort()
	return s
}

// Comparator returns the comparator the sequence is ordered by.
func (s *Sequence[T]) Comparator() Comparator[T] {
	return s.cmp
}

// SetComparator replaces the comparator and re-sorts immediately.
func (s *Sequence[T]) SetComparator(cmp Comparator[T]) {
	s.cmp = cmp
	s.Sort()
}

// Sort restores the order invariant. Equal items keep their relative order.
func (s *Sequence[T]) Sort() {
	slices.SortStableFunc(s.items, s.cmp)
}

// Len returns the number of items.
func (s *Sequence[T]) Len() int {
	return len(s.items)
}

// At returns the item at index i. The boolean is false when i is out of range.
func (s *Sequence[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Values returns a copy of the items in order.
func (s *Sequence[T]) Values() []T {
	return slices.Clone(s.items)
}

// SearchWith runs Search over the items with a caller-supplied comparator. cmp
// must order the items consistently with the sequence's own comparator.
func (s *Sequence[T]) SearchWith(target T, cmp Comparator[T], mode SearchMode) int {
	return Search(s.items, target, cmp, mode)
}

// Add inserts item after its insertion anchor and returns the index it now
// occupies.
func (s *Sequence[T]) Add(item T) int {
	at := Search(s.items, item, s.cmp, InsertionAnchor) + 1
	s.items = slices.Insert(s.items, at, item)
	return at
}

// AddUnique inserts item unless an equal item already sits at the anchor.
func (s *Sequence[T]) AddUnique(item T) bool {
	anchor := Search(s.items, item, s.cmp, InsertionAnchor)
	if anchor >= 0 && s.cmp(s.items[anchor], item) == 0 {
		return false
	}
	s.items = slices.Insert(s.items, anchor+1, item)
	return true
}

// Unique returns a new sequence keeping the first item of every run of equal
// neighbours.
func (s *Sequence[T]) Unique() *Sequence[T] {
	out := &Sequence[T]{cmp: s.cmp, items: make([]T, 0, len(s.items))}
	for i, item := range s.items {
		if i > 0 && s.cmp(s.items[i-1], item) == 0 {
			continue
		}
		out.items = append(out.items, item)
	}
	return out
}

// Discard removes the left-most item equal to item.
func (s *Sequence[T]) Discard(item T) bool {
	i := s.IndexOf(item)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// DiscardAt removes the item at index i. Out of range indexes are ignored.
func (s *Sequence[T]) DiscardAt(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// DiscardEqual removes every item equal to item and returns how many went.
func (s *Sequence[T]) DiscardEqual(item T) int {
	first := s.IndexOf(item)
	if first < 0 {
		return 0
	}
	last := Search(s.items, item, s.cmp, FindLast)
	s.items = slices.Delete(s.items, first, last+1)
	return last - first + 1
}

// DiscardAll empties the sequence.
func (s *Sequence[T]) DiscardAll() {
	clear(s.items)
	s.items = s.items[:0]
}

// IndexOf returns the smallest index holding an item equal to item, or -1.
func (s *Sequence[T]) IndexOf(item T) int {
	return Search(s.items, item, s.cmp, FindFirst)
}

// LastIndexOf returns the largest index holding an item equal to item, or -1.
func (s *Sequence[T]) LastIndexOf(item T) int {
	return Search(s.items, item, s.cmp, FindLast)
}

// Includes reports whether an item equal to item is present.
func (s *Sequence[T]) Includes(item T) bool {
	return s.IndexOf(item) >= 0
}

// Find returns the left-most stored item equal to item.
func (s *Sequence[T]) Find(item T) (T, bool) {
	return s.At(s.IndexOf(item))
}

// FindLast returns the right-most stored item equal to item.
func (s *Sequence[T]) FindLast(item T) (T, bool) {
	return s.At(s.LastIndexOf(item))
}

// FindAll returns a new sequence holding every item equal to item.
func (s *Sequence[T]) FindAll(item T) *Sequence[T] {
	first := s.IndexOf(item)
	if first < 0 {
		return &Sequence[T]{cmp: s.cmp}
	}
	return s.Range(first, s.LastIndexOf(item)+1)
}

// Range returns a new sequence holding items[start:end]. Bounds are clamped.
func (s *Sequence[T]) Range(start, end int) *Sequence[T] {
	start = max(start, 0)
	end = min(end, len(s.items))
	if start >= end {
		return &Sequence[T]{cmp: s.cmp}
	}
	return &Sequence[T]{cmp: s.cmp, items: slices.Clone(s.items[start:end])}
}

// Concat returns a new sequence holding the items of s and others, sorted.
func (s *Sequence[T]) Concat(others ...*Sequence[T]) *Sequence[T] {
	n := len(s.items)
	for _, o := range others {
		n += len(o.items)
	}
	items := make([]T, 0, n)
	items = append(items, s.items...)
	for _, o := range others {
		items = append(items, o.items...)
	}
	out := &Sequence[T]{cmp: s.cmp, items: items}
	out.Sort()
	return out
}

// Intersection returns the items of s that other includes, in s's order.
func (s *Sequence[T]) Intersection(other *Sequence[T]) *Sequence[T] {
	out := &Sequence[T]{cmp: s.cmp}
	for _, item := range s.items {
		if other.Includes(item) {
			out.items = append(out.items, item)
		}
	}
	return out
}

// Retain keeps only the items for which keep returns true. Order is unchanged.
func (s *Sequence[T]) Retain(keep func(T) bool) {
	s.items = slices.DeleteFunc(s.items, func(item T) bool { return !keep(item) })
}

// Transform rewrites every item in place. It reports whether the sequence is
// still sorted; when it is not the caller must call Sort.
func (s *Sequence[T]) Transform(fn func(T) T) bool {
	for i, item := range s.items {
		s.items[i] = fn(item)
	}
	return slices.IsSortedFunc(s.items, s.cmp)
}

// All iterates over the items in order.
func (s *Sequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range s.items {
			if !yield(i, item) {
				return
			}
		}
	}
}
