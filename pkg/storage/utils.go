package storage

import (
	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/adfharrison1/go-sortdex/pkg/indexing"
	"github.com/adfharrison1/go-sortdex/pkg/ordered"
)

// MatchesFilter checks if a document satisfies every predicate in filter.
// Predicates use the same comparator as the indexes so scanned and indexed
// answers agree. A nil compare means ordered.CompareValues.
func MatchesFilter(doc domain.Document, filter domain.Matcher, compare ordered.Comparator[interface{}]) bool {
	if compare == nil {
		compare = ordered.CompareValues
	}
	return matchesAt(doc, "", filter, compare)
}

func matchesAt(doc domain.Document, prefix string, filter domain.Matcher, compare ordered.Comparator[interface{}]) bool {
	for key, expected := range filter {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := domain.AsMatcher(expected); ok {
			if !matchesAt(doc, path, nested, compare) {
				return false
			}
			continue
		}

		actual := compiledPaths.Accessor(path)(doc)
		if ops, ok := domain.AsOps(expected); ok {
			for op, operand := range ops {
				if !OperatorMatches(compare, op, actual, operand) {
					return false
				}
			}
			continue
		}

		if compare(actual, expected) != 0 {
			return false
		}
	}
	return true
}

// ValuesMatch compares two values for equality under the default comparator,
// so 42 matches 42.0 and a missing value matches nil.
func ValuesMatch(actual, expected interface{}) bool {
	return ordered.CompareValues(actual, expected) == 0
}

// OperatorMatches evaluates a single operator the way a FieldIndex would.
// Absent values never satisfy an ordering operator. Unknown operators never
// match.
func OperatorMatches(compare ordered.Comparator[interface{}], op domain.Operator, actual, operand interface{}) bool {
	switch op {
	case domain.OpEqual:
		return compare(actual, operand) == 0
	case domain.OpNotEqual:
		return compare(actual, operand) != 0
	case domain.OpGreater:
		return actual != nil && compare(actual, operand) > 0
	case domain.OpGreaterOrEqual:
		return actual != nil && compare(actual, operand) >= 0
	case domain.OpLess:
		return actual != nil && compare(actual, operand) < 0
	case domain.OpLessOrEqual:
		return actual != nil && compare(actual, operand) <= 0
	case domain.OpIn:
		for _, c := range indexing.Candidates(operand) {
			if compare(actual, c) == 0 {
				return true
			}
		}
		return false
	case domain.OpNotIn:
		for _, c := range indexing.Candidates(operand) {
			if compare(actual, c) == 0 {
				return false
			}
		}
		return true
	default:
		return false
	}
}
