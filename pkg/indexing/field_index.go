package indexing

import (
	"cmp"
	"iter"
	"math"
	"reflect"
	"slices"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/adfharrison1/go-sortdex/pkg/ordered"
)

// PositionRecord states that the owning collection's item at Position
// currently holds Value in the indexed field.
type PositionRecord struct {
	Value    interface{}
	Position int
}

// FieldIndex is a secondary index over one field path. Records are kept
// sorted by value, then by position, so duplicate values form contiguous runs
// in position order and every lookup is a binary search.
type FieldIndex struct {
	records *ordered.Sequence[PositionRecord]
	compare ordered.Comparator[interface{}]
}

// NewFieldIndex creates an empty index ordered by compare.
func NewFieldIndex(compare ordered.Comparator[interface{}]) *FieldIndex {
	fi := &FieldIndex{compare: compare}
	fi.records = ordered.NewSequence[PositionRecord](fi.compareRecords)
	return fi
}

func (fi *FieldIndex) compareRecords(a, b PositionRecord) int {
	if c := fi.compare(a.Value, b.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Position, b.Position)
}

func (fi *FieldIndex) compareValues(a, b PositionRecord) int {
	return fi.compare(a.Value, b.Value)
}

// Len returns the number of records held.
func (fi *FieldIndex) Len() int {
	return fi.records.Len()
}

// Records returns a copy of the records in index order.
func (fi *FieldIndex) Records() []PositionRecord {
	return fi.records.Values()
}

// Positions returns every held position in ascending order.
func (fi *FieldIndex) Positions() []int {
	out := make([]int, 0, fi.records.Len())
	for _, r := range fi.records.All() {
		out = append(out, r.Position)
	}
	slices.Sort(out)
	return out
}

// Add records that the item at position holds value.
func (fi *FieldIndex) Add(value interface{}, position int) {
	fi.records.Add(PositionRecord{Value: value, Position: position})
}

// Discard removes the record for value at position.
func (fi *FieldIndex) Discard(value interface{}, position int) bool {
	return fi.records.Discard(PositionRecord{Value: value, Position: position})
}

// Clear drops every record.
func (fi *FieldIndex) Clear() {
	fi.records.DiscardAll()
}

// Query returns the positions whose value satisfies op against value, in
// value order. Callers that need position order must sort the result.
func (fi *FieldIndex) Query(value interface{}, op domain.Operator) []int {
	if fi.records.Len() == 0 {
		return nil
	}

	switch op {
	case domain.OpEqual:
		return fi.equal(value)
	case domain.OpNotEqual:
		return fi.notEqual(value)
	case domain.OpLess:
		return fi.between(0, fi.below(value)+1)
	case domain.OpLessOrEqual:
		return fi.between(0, min(fi.atOrBelow(value)+1, fi.absentStart()))
	case domain.OpGreater:
		return fi.between(fi.atOrBelow(value)+1, fi.absentStart())
	case domain.OpGreaterOrEqual:
		return fi.between(fi.below(value)+1, fi.absentStart())
	case domain.OpIn:
		var out []int
		for _, candidate := range fi.candidates(value) {
			out = append(out, fi.equal(candidate)...)
		}
		return out
	case domain.OpNotIn:
		candidates := fi.candidates(value)
		if len(candidates) == 0 {
			return fi.between(0, fi.records.Len())
		}
		out := fi.notEqual(candidates[0])
		for _, candidate := range candidates[1:] {
			excluded := make(map[int]struct{})
			for _, p := range fi.equal(candidate) {
				excluded[p] = struct{}{}
			}
			out = slices.DeleteFunc(out, func(p int) bool {
				_, ok := excluded[p]
				return ok
			})
		}
		return out
	default:
		return nil
	}
}

func (fi *FieldIndex) equal(value interface{}) []int {
	target := PositionRecord{Value: value}
	first := fi.records.SearchWith(target, fi.compareValues, ordered.FindFirst)
	if first < 0 {
		return nil
	}
	last := fi.records.SearchWith(target, fi.compareValues, ordered.FindLast)
	return fi.between(first, last+1)
}

func (fi *FieldIndex) notEqual(value interface{}) []int {
	lower := fi.between(0, fi.below(value)+1)
	return append(lower, fi.between(fi.atOrBelow(value)+1, fi.records.Len())...)
}

// below returns the index of the last record whose value is less than value.
func (fi *FieldIndex) below(value interface{}) int {
	boundary := PositionRecord{Value: value, Position: -1}
	return fi.records.SearchWith(boundary, fi.compareRecords, ordered.InsertionAnchor)
}

// atOrBelow returns the index of the last record whose value is less than or
// equal to value.
func (fi *FieldIndex) atOrBelow(value interface{}) int {
	boundary := PositionRecord{Value: value, Position: math.MaxInt}
	return fi.records.SearchWith(boundary, fi.compareRecords, ordered.InsertionAnchor)
}

// absentStart returns the index of the first record with an absent value.
// Absent values never satisfy an ordering operator.
func (fi *FieldIndex) absentStart() int {
	return fi.below(nil) + 1
}

func (fi *FieldIndex) between(start, end int) []int {
	if start >= end {
		return nil
	}
	span := fi.records.Range(start, end)
	out := make([]int, 0, span.Len())
	for _, r := range span.All() {
		out = append(out, r.Position)
	}
	return out
}

// candidates normalizes an IN/NOT_IN operand into sorted distinct values.
func (fi *FieldIndex) candidates(value interface{}) []interface{} {
	return ordered.NewSequence(fi.compare, Candidates(value)...).Unique().Values()
}

// Candidates expands an IN/NOT_IN operand into its member values. Slices and
// arrays of any element type are expanded; any other non-nil value is a
// single candidate.
func Candidates(value interface{}) []interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case []interface{}:
		return v
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []interface{}{value}
	}
	list := make([]interface{}, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list
}

// Increment shifts every position at or after start by amount. It is applied
// once per structural edit of the owner, such as an insertion or removal.
func (fi *FieldIndex) Increment(amount, start int) {
	if amount == 0 {
		return
	}
	sorted := fi.records.Transform(func(r PositionRecord) PositionRecord {
		if r.Position >= start {
			r.Position += amount
		}
		return r
	})
	if !sorted {
		fi.records.Sort()
	}
}

// Length drops every record at or beyond newLength.
func (fi *FieldIndex) Length(newLength int) {
	fi.records.Retain(func(r PositionRecord) bool { return r.Position < newLength })
}

// Rebuild discards every record and re-indexes source, extracting values with
// getValue.
func (fi *FieldIndex) Rebuild(source iter.Seq2[int, interface{}], getValue Accessor) {
	var recs []PositionRecord
	if source != nil {
		for position, item := range source {
			recs = append(recs, PositionRecord{Value: getValue(item), Position: position})
		}
	}
	fi.records = ordered.NewSequence[PositionRecord](fi.compareRecords, recs...)
}

// Spawn builds an index over a view of the owner that keeps only the given
// original positions. Each kept position is renumbered to its index within
// keepPositions.
func (fi *FieldIndex) Spawn(keepPositions []int) *FieldIndex {
	renumber := make(map[int]int, len(keepPositions))
	for i, p := range keepPositions {
		if _, seen := renumber[p]; !seen {
			renumber[p] = i
		}
	}

	recs := make([]PositionRecord, 0, len(keepPositions))
	for _, r := range fi.records.All() {
		if np, ok := renumber[r.Position]; ok {
			recs = append(recs, PositionRecord{Value: r.Value, Position: np})
		}
	}

	child := &FieldIndex{compare: fi.compare}
	child.records = ordered.NewSequence[PositionRecord](child.compareRecords, recs...)
	return child
}
