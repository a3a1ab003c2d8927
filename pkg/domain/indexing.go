package domain

import "strings"

// Operator names a comparison understood by field indexes and filters
type Operator string

const (
	OpEqual          Operator = "$eq"
	OpNotEqual       Operator = "$ne"
	OpIn             Operator = "$in"
	OpNotIn          Operator = "$nin"
	OpGreater        Operator = "$gt"
	OpGreaterOrEqual Operator = "$gte"
	OpLess           Operator = "$lt"
	OpLessOrEqual    Operator = "$lte"
)

// Known reports whether op is one of the supported operators
func (op Operator) Known() bool {
	switch op {
	case OpEqual, OpNotEqual, OpIn, OpNotIn,
		OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual:
		return true
	}
	return false
}

// ParseOperator accepts either the "$gt" form or the bare "gt" form
func ParseOperator(s string) Operator {
	if !strings.HasPrefix(s, "$") {
		s = "$" + s
	}
	return Operator(strings.ToLower(s))
}

// Ops is a set of operators applied to a single field. All of them must hold.
type Ops map[Operator]interface{}

// Matcher maps field names to literals (equality), Ops, or nested matchers.
// Nested keys extend the dotted path: {"address": {"city": "Oslo"}} matches
// the path "address.city".
type Matcher map[string]interface{}

// AsOps interprets v as an operator set. A map counts as an operator set only
// when it is non-empty and every key is a $-prefixed operator name.
func AsOps(v interface{}) (Ops, bool) {
	switch m := v.(type) {
	case Ops:
		return m, true
	case Matcher:
		return opsFromMap(m)
	case map[string]interface{}:
		return opsFromMap(m)
	}
	return nil, false
}

func opsFromMap(m map[string]interface{}) (Ops, bool) {
	if len(m) == 0 {
		return nil, false
	}
	ops := make(Ops, len(m))
	for k, val := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
		ops[Operator(k)] = val
	}
	return ops, true
}

// AsMatcher interprets v as a nested matcher
func AsMatcher(v interface{}) (Matcher, bool) {
	var m map[string]interface{}
	switch t := v.(type) {
	case Matcher:
		m = t
	case Document:
		m = t
	case map[string]interface{}:
		m = t
	default:
		return nil, false
	}
	if _, isOps := opsFromMap(m); isOps {
		return nil, false
	}
	return Matcher(m), true
}
