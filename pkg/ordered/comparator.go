package ordered

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Comparator returns a negative number when a sorts before b, a positive
// number when a sorts after b and zero when they are equal.
type Comparator[T any] func(a, b T) int

// Natural orders any cmp.Ordered type by its built-in order. NaN sorts
// before every other float.
func Natural[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Kind rank used by CompareValues. Absent always sorts last.
const (
	rankBool = iota
	rankNumber
	rankTime
	rankString
	rankComposite
	rankAbsent
)

// CompareValues is the default total order over document field values.
//
// nil is the absent marker and sorts after everything else. Numbers of any Go
// numeric kind compare by exact value, so large integers never collapse
// through float64; NaN equals NaN and sorts above every other number.
// Composite values compare by their canonical MessagePack encoding, taken
// after every nested number is normalized, so [1] equals [1.0].
func CompareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return sign(ra - rb)
	}

	switch ra {
	case rankAbsent:
		return 0
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case rankNumber:
		na, _ := toNumber(a)
		nb, _ := toNumber(b)
		return compareNumbers(na, nb)
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankString:
		return strings.Compare(a.(string), b.(string))
	default:
		return compareComposite(a, b)
	}
}

// ToFloat64 converts the numeric kinds that show up in decoded documents to
// float64.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankAbsent
	case bool:
		return rankBool
	case string:
		return rankString
	case time.Time:
		return rankTime
	}
	if _, ok := toNumber(v); ok {
		return rankNumber
	}
	return rankComposite
}

func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareComposite(a, b any) int {
	ea, errA := canonicalEncoding(normalize(a))
	eb, errB := canonicalEncoding(normalize(b))
	if errA != nil || errB != nil {
		return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
	}
	return bytes.Compare(ea, eb)
}

// normalize rewrites nested maps and slices into their generic forms and
// every number into a single encoding: int64 when the value is integral and
// fits, uint64 above that, float64 otherwise.
func normalize(v any) any {
	if n, ok := toNumber(v); ok {
		return n.canonical()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out[it.Key().String()] = normalize(it.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

func canonicalEncoding(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
