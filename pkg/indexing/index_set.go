// Package indexing maintains secondary indexes over the positions of a
// mutable, ordered collection and answers multi-field matcher queries from
// them.
package indexing

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/adfharrison1/go-sortdex/pkg/ordered"
)

// Option configures an IndexSet.
type Option func(*IndexSet)

// WithComparator sets the value comparator shared by every FieldIndex in the
// set. It defaults to ordered.CompareValues.
func WithComparator(compare ordered.Comparator[interface{}]) Option {
	return func(s *IndexSet) {
		s.compare = compare
	}
}

type fieldEntry struct {
	get   Accessor
	index *FieldIndex
}

// IndexSet maps field paths to FieldIndexes and coordinates their
// maintenance and querying. It is not safe for concurrent use.
type IndexSet struct {
	compare    ordered.Comparator[interface{}]
	indexes    map[string]*fieldEntry
	buildCount int
}

// QueryResult is the outcome of IndexSet.Query.
type QueryResult struct {
	// Matches holds the ascending positions satisfying every indexed predicate.
	Matches []int
	// NonIndexedSearches mirrors the matcher's shape and holds the predicates
	// that must still be evaluated by scanning.
	NonIndexedSearches domain.Matcher
	// UsedIndexes is false when no predicate hit an index. Matches is then
	// empty and the caller must scan everything.
	UsedIndexes bool
}

// NewIndexSet creates an empty index set.
func NewIndexSet(options ...Option) *IndexSet {
	s := &IndexSet{
		compare: ordered.CompareValues,
		indexes: make(map[string]*fieldEntry),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// AddIndex registers an empty index for path. The owner must Rebuild (or Add
// every item) to populate it.
func (s *IndexSet) AddIndex(path string) error {
	if _, exists := s.indexes[path]; exists {
		return fmt.Errorf("%w: %s", domain.ErrIndexExists, path)
	}
	s.indexes[path] = &fieldEntry{
		get:   CompilePath(path),
		index: NewFieldIndex(s.compare),
	}
	return nil
}

// RemoveIndex unregisters path and drops its records.
func (s *IndexSet) RemoveIndex(path string) error {
	entry, exists := s.indexes[path]
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrIndexNotFound, path)
	}
	entry.index.Clear()
	delete(s.indexes, path)
	return nil
}

// HasIndex reports whether path is indexed.
func (s *IndexSet) HasIndex(path string) bool {
	_, exists := s.indexes[path]
	return exists
}

// Paths returns the indexed paths in sorted order.
func (s *IndexSet) Paths() []string {
	return slices.Sorted(maps.Keys(s.indexes))
}

// Index returns the FieldIndex registered for path.
func (s *IndexSet) Index(path string) (*FieldIndex, bool) {
	entry, exists := s.indexes[path]
	if !exists {
		return nil, false
	}
	return entry.index, true
}

// Extract returns item's value at an indexed path.
func (s *IndexSet) Extract(path string, item interface{}) (interface{}, bool) {
	entry, exists := s.indexes[path]
	if !exists {
		return nil, false
	}
	return entry.get(item), true
}

// BuildCount returns how many full rebuilds have run.
func (s *IndexSet) BuildCount() int {
	return s.buildCount
}

// Add records item at position in every index.
func (s *IndexSet) Add(item interface{}, position int) {
	for _, entry := range s.indexes {
		entry.index.Add(entry.get(item), position)
	}
}

// Discard removes item at position from every index.
func (s *IndexSet) Discard(item interface{}, position int) {
	for _, entry := range s.indexes {
		entry.index.Discard(entry.get(item), position)
	}
}

// Update swaps the record for a single field change of the item at position.
// It does nothing when path is not indexed.
func (s *IndexSet) Update(path string, position int, newValue, previousValue interface{}) {
	entry, exists := s.indexes[path]
	if !exists {
		return
	}
	entry.index.Discard(previousValue, position)
	entry.index.Add(newValue, position)
}

// Increment shifts positions at or after start by amount in every index.
func (s *IndexSet) Increment(amount, start int) {
	for _, entry := range s.indexes {
		entry.index.Increment(amount, start)
	}
}

// Length drops positions at or beyond newLength in every index.
func (s *IndexSet) Length(newLength int) {
	for _, entry := range s.indexes {
		entry.index.Length(newLength)
	}
}

// Rebuild re-indexes every path from source, which yields (position, item)
// pairs and must be safe to range over once per index.
func (s *IndexSet) Rebuild(source iter.Seq2[int, interface{}]) {
	for _, entry := range s.indexes {
		entry.index.Rebuild(source, entry.get)
	}
	s.buildCount++
}

// Clear drops every record while keeping the registered paths.
func (s *IndexSet) Clear() {
	for _, entry := range s.indexes {
		entry.index.Clear()
	}
}

// Spawn derives an index set for a view holding only keepPositions, in that
// order, without re-extracting any values.
func (s *IndexSet) Spawn(keepPositions []int) *IndexSet {
	child := &IndexSet{
		compare: s.compare,
		indexes: make(map[string]*fieldEntry, len(s.indexes)),
	}
	for path, entry := range s.indexes {
		child.indexes[path] = &fieldEntry{
			get:   entry.get,
			index: entry.index.Spawn(keepPositions),
		}
	}
	return child
}

// Query answers the indexed part of matcher. Leaves on indexed paths are
// looked up and intersected; everything else is returned untouched in
// NonIndexedSearches.
func (s *IndexSet) Query(matcher domain.Matcher) QueryResult {
	result := QueryResult{NonIndexedSearches: domain.Matcher{}}

	var sets [][]int
	s.collect("", matcher, result.NonIndexedSearches, &sets)
	if len(sets) == 0 {
		return result
	}

	result.UsedIndexes = true
	result.Matches = IntersectPositions(sets...)
	return result
}

func (s *IndexSet) collect(prefix string, matcher domain.Matcher, residue domain.Matcher, sets *[][]int) {
	for key, value := range matcher {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := domain.AsMatcher(value); ok {
			sub := domain.Matcher{}
			s.collect(path, nested, sub, sets)
			if len(sub) > 0 {
				residue[key] = sub
			}
			continue
		}

		entry, indexed := s.indexes[path]
		if !indexed {
			residue[key] = value
			continue
		}

		ops, isOps := domain.AsOps(value)
		if !isOps {
			*sets = append(*sets, entry.index.Query(value, domain.OpEqual))
			continue
		}

		unknown := domain.Ops{}
		for op, operand := range ops {
			if !op.Known() {
				unknown[op] = operand
				continue
			}
			*sets = append(*sets, entry.index.Query(operand, op))
		}
		if len(unknown) > 0 {
			residue[key] = unknown
		}
	}
}
