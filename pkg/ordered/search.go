package ordered

// SearchMode selects which index Search reports.
type SearchMode int

const (
	// FindFirst reports the left-most exact match, or -1.
	FindFirst SearchMode = iota
	// FindLast reports the right-most exact match, or -1.
	FindLast
	// InsertionAnchor reports the left-most exact match when one exists and
	// otherwise the index of the right-most element strictly less than the
	// target, or -1 when the target sorts before every element. New elements
	// are inserted immediately after the anchor.
	InsertionAnchor
)

func (m SearchMode) String() string {
	switch m {
	case FindFirst:
		return "find-first"
	case FindLast:
		return "find-last"
	case InsertionAnchor:
		return "insertion-anchor"
	default:
		return "unknown"
	}
}

// Search binary searches items, which must be sorted by cmp, for target.
// Duplicate boundaries are located with a second bounded binary search so
// every mode stays O(log n).
func Search[T any](items []T, target T, cmp Comparator[T], mode SearchMode) int {
	lo, hi := 0, len(items)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		c := cmp(items[mid], target)
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid - 1
		default:
			if mode == FindLast {
				return lastMatch(items, target, cmp, mid, hi)
			}
			return firstMatch(items, target, cmp, lo, mid)
		}
	}

	if mode == InsertionAnchor {
		// Everything after hi is greater than target, everything up to hi is less.
		return hi
	}
	return -1
}

// firstMatch narrows [lo, found] where items[found] equals target and every
// element before found is less than or equal to it.
func firstMatch[T any](items []T, target T, cmp Comparator[T], lo, found int) int {
	hi := found
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(items[mid], target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// lastMatch narrows [found, hi] where items[found] equals target and every
// element after found is greater than or equal to it.
func lastMatch[T any](items []T, target T, cmp Comparator[T], found, hi int) int {
	lo := found
	for lo < hi {
		mid := int(uint(lo+hi+1) >> 1)
		if cmp(items[mid], target) > 0 {
			hi = mid - 1
		} else {
			lo = mid
		}
	}
	return lo
}
