package ordered

import (
	"encoding/json"
	"math"
)

type numberKind int

const (
	signedNumber numberKind = iota
	unsignedNumber
	floatNumber
)

// number holds a numeric value without losing integer precision.
type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func toNumber(value any) (number, bool) {
	switch v := value.(type) {
	case int:
		return number{kind: signedNumber, i: int64(v)}, true
	case int8:
		return number{kind: signedNumber, i: int64(v)}, true
	case int16:
		return number{kind: signedNumber, i: int64(v)}, true
	case int32:
		return number{kind: signedNumber, i: int64(v)}, true
	case int64:
		return number{kind: signedNumber, i: v}, true
	case uint:
		return number{kind: unsignedNumber, u: uint64(v)}, true
	case uint8:
		return number{kind: unsignedNumber, u: uint64(v)}, true
	case uint16:
		return number{kind: unsignedNumber, u: uint64(v)}, true
	case uint32:
		return number{kind: unsignedNumber, u: uint64(v)}, true
	case uint64:
		return number{kind: unsignedNumber, u: v}, true
	case float32:
		return number{kind: floatNumber, f: float64(v)}, true
	case float64:
		return number{kind: floatNumber, f: v}, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return number{kind: signedNumber, i: i}, true
		}
		f, err := v.Float64()
		return number{kind: floatNumber, f: f}, err == nil
	default:
		return number{}, false
	}
}

const (
	two63 = float64(1 << 63)
	two64 = two63 * 2
)

func compareNumbers(a, b number) int {
	switch {
	case a.kind == floatNumber && b.kind == floatNumber:
		return compareFloats(a.f, b.f)
	case a.kind == floatNumber:
		return -compareIntFloat(b, a.f)
	case b.kind == floatNumber:
		return compareIntFloat(a, b.f)
	case a.kind == signedNumber && b.kind == signedNumber:
		return cmpInt(a.i, b.i)
	case a.kind == unsignedNumber && b.kind == unsignedNumber:
		return cmpInt(a.u, b.u)
	case a.kind == signedNumber:
		if a.i < 0 {
			return -1
		}
		return cmpInt(uint64(a.i), b.u)
	default:
		if b.i < 0 {
			return 1
		}
		return cmpInt(a.u, uint64(b.i))
	}
}

// compareIntFloat orders an integer against a float by exact value.
func compareIntFloat(n number, f float64) int {
	if math.IsNaN(f) {
		return -1
	}
	t := math.Trunc(f)
	var c int
	if n.kind == signedNumber {
		switch {
		case t < -two63:
			return 1
		case t >= two63:
			return -1
		}
		c = cmpInt(n.i, int64(t))
	} else {
		switch {
		case t < 0:
			return 1
		case t >= two64:
			return -1
		}
		c = cmpInt(n.u, uint64(t))
	}
	if c != 0 {
		return c
	}
	// integer parts match; the fraction decides
	return compareFloats(0, f-t)
}

func cmpInt[T int64 | uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// canonical returns the single Go value used when encoding n inside a
// composite.
func (n number) canonical() any {
	switch n.kind {
	case signedNumber:
		return n.i
	case unsignedNumber:
		if n.u <= math.MaxInt64 {
			return int64(n.u)
		}
		return n.u
	}
	f := n.f
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		if f >= -two63 && f < two63 {
			return int64(f)
		}
		if f >= 0 && f < two64 {
			return uint64(f)
		}
	}
	return f
}
