package api

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// reserved query parameters that never become predicates
var paginationParams = map[string]bool{
	"limit":  true,
	"offset": true,
	"after":  true,
}

// parseMatcher turns query parameters into a matcher. "age=30" is equality,
// "age[gte]=18" applies an operator, and the in/nin operators take
// comma-separated lists. Dotted keys address nested fields.
func parseMatcher(values url.Values) (domain.Matcher, error) {
	matcher := domain.Matcher{}

	for key, vals := range values {
		if paginationParams[key] || len(vals) == 0 {
			continue
		}
		raw := vals[0] // Take first value if multiple provided

		field, opName, hasOp, err := splitOperatorKey(key)
		if err != nil {
			return nil, err
		}
		if !hasOp {
			if _, exists := matcher[field]; exists {
				return nil, fmt.Errorf("%w: field %q has both a value and operators", domain.ErrInvalidMatcher, field)
			}
			matcher[field] = parseScalar(raw)
			continue
		}

		op := domain.ParseOperator(opName)
		var operand interface{}
		if op == domain.OpIn || op == domain.OpNotIn {
			parts := strings.Split(raw, ",")
			list := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				if p == "" {
					continue
				}
				list = append(list, parseScalar(p))
			}
			operand = list
		} else {
			operand = parseScalar(raw)
		}

		ops, _ := matcher[field].(domain.Ops)
		if ops == nil {
			if _, literal := matcher[field]; literal {
				return nil, fmt.Errorf("%w: field %q has both a value and operators", domain.ErrInvalidMatcher, field)
			}
			ops = domain.Ops{}
			matcher[field] = ops
		}
		ops[op] = operand
	}

	return matcher, nil
}

// splitOperatorKey splits "field[op]" into its parts
func splitOperatorKey(key string) (field, op string, hasOp bool, err error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, "", false, nil
	}
	if open == 0 || !strings.HasSuffix(key, "]") || open+2 > len(key)-1 {
		return "", "", false, fmt.Errorf("%w: malformed query key %q", domain.ErrInvalidMatcher, key)
	}
	return key[:open], key[open+1 : len(key)-1], true, nil
}

// plain decimal numbers only; NaN, Inf and hex floats stay strings
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseScalar converts a raw query value to a number, bool or null when it
// reads as one, and otherwise keeps the string
func parseScalar(raw string) interface{} {
	if decimalPattern.MatchString(raw) {
		if num, err := strconv.ParseFloat(raw, 64); err == nil {
			return num
		}
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	return raw
}

// parsePagination reads limit, offset and after
func parsePagination(values url.Values) (*domain.PaginationOptions, error) {
	options := domain.DefaultPaginationOptions()

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("limit must be an integer")
		}
		options.Limit = limit
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("offset must be an integer")
		}
		options.Offset = offset
	}
	if after := values.Get("after"); after != "" {
		if _, err := domain.DecodeCursor(after); err != nil {
			return nil, err
		}
		options.After = after
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}
