package indexing

import "slices"

// IntersectPositions returns the ascending, de-duplicated positions present in
// every set. It is used to combine per-field index results.
func IntersectPositions(sets ...[]int) []int {
	if len(sets) == 0 {
		return nil
	}

	result := sortedUnique(sets[0])
	for _, set := range sets[1:] {
		if len(result) == 0 {
			break
		}
		result = mergeIntersect(result, sortedUnique(set))
	}
	return result
}

func sortedUnique(positions []int) []int {
	out := slices.Clone(positions)
	slices.Sort(out)
	return slices.Compact(out)
}

func mergeIntersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
