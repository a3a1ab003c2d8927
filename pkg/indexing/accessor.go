package indexing

import (
	"strconv"
	"strings"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// Accessor extracts one field value from an item. Missing fields yield nil.
type Accessor func(item interface{}) interface{}

type segment struct {
	key   string
	index int // -1 when key is not a valid slice index
}

// CompilePath turns a dotted path such as "address.city" or "tags.0" into an
// Accessor. The path is split once; the returned function only walks it.
func CompilePath(path string) Accessor {
	parts := strings.Split(path, ".")
	segments := make([]segment, len(parts))
	for i, p := range parts {
		idx, err := strconv.Atoi(p)
		if err != nil || idx < 0 {
			idx = -1
		}
		segments[i] = segment{key: p, index: idx}
	}

	return func(item interface{}) interface{} {
		cur := item
		for _, seg := range segments {
			switch v := cur.(type) {
			case domain.Document:
				cur = v[seg.key]
			case map[string]interface{}:
				cur = v[seg.key]
			case []interface{}:
				if seg.index < 0 || seg.index >= len(v) {
					return nil
				}
				cur = v[seg.index]
			default:
				return nil
			}
		}
		return cur
	}
}
