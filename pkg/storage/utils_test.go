package storage

import (
	"testing"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMatchesFilter(t *testing.T) {
	doc := domain.Document{
		"name":    "Alice",
		"age":     30,
		"city":    "New York",
		"address": map[string]interface{}{"zip": "10001"},
	}

	tests := []struct {
		name   string
		filter domain.Matcher
		want   bool
	}{
		{"literal string", domain.Matcher{"name": "Alice"}, true},
		{"literal number across kinds", domain.Matcher{"age": 30.0}, true},
		{"two literals", domain.Matcher{"name": "Alice", "age": 30}, true},
		{"wrong value", domain.Matcher{"name": "Bob"}, false},
		{"case sensitive", domain.Matcher{"name": "alice"}, false},
		{"missing field against value", domain.Matcher{"country": "USA"}, false},
		{"missing field against nil", domain.Matcher{"country": nil}, true},
		{"dotted path", domain.Matcher{"address.zip": "10001"}, true},
		{"nested matcher", domain.Matcher{"address": map[string]interface{}{"zip": "10001"}}, true},
		{"nested matcher mismatch", domain.Matcher{"address": domain.Matcher{"zip": "99999"}}, false},
		{"range", domain.Matcher{"age": map[string]interface{}{"$gt": 18, "$lte": 30}}, true},
		{"range miss", domain.Matcher{"age": domain.Ops{domain.OpLess: 30}}, false},
		{"in", domain.Matcher{"city": domain.Ops{domain.OpIn: []string{"Boston", "New York"}}}, true},
		{"not in", domain.Matcher{"city": domain.Ops{domain.OpNotIn: []string{"Boston", "New York"}}}, false},
		{"not equal", domain.Matcher{"age": domain.Ops{domain.OpNotEqual: 31}}, true},
		{"absent never ordered", domain.Matcher{"country": domain.Ops{domain.OpGreater: "A"}}, false},
		{"absent is not equal", domain.Matcher{"country": domain.Ops{domain.OpNotEqual: "USA"}}, true},
		{"unknown operator", domain.Matcher{"name": domain.Ops{"$regex": "^A"}}, false},
		{"empty filter", domain.Matcher{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFilter(doc, tt.filter, nil))
		})
	}
}

func TestValuesMatch(t *testing.T) {
	assert.True(t, ValuesMatch(42, 42))
	assert.True(t, ValuesMatch(42, 42.0))
	assert.True(t, ValuesMatch(nil, nil))
	assert.False(t, ValuesMatch(nil, 1))
	assert.False(t, ValuesMatch("Alice", "Bob"))
	assert.False(t, ValuesMatch("Alice", "alice"))
	assert.False(t, ValuesMatch(42, 43))
}
