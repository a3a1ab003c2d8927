package ordered

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequence_SortsInput(t *testing.T) {
	s := NewSequence(Natural[float64](), 4, 7, 5, 1, 3, 2, 9, 6, 8)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, s.Values())

	at := s.Add(4.5)
	assert.Equal(t, 4, at)
	assert.Equal(t, 4.5, s.Values()[4])
	assert.Equal(t, 10, s.Len())
}

func TestSequence_AddEdges(t *testing.T) {
	s := NewSequence(Natural[int]())
	assert.Equal(t, 0, s.Add(5))
	assert.Equal(t, 0, s.Add(1))  // below every element
	assert.Equal(t, 2, s.Add(10)) // above every element appends
	assert.Equal(t, []int{1, 5, 10}, s.Values())
}

type tagged struct {
	key int
	tag string
}

func byKey(a, b tagged) int { return Natural[int]()(a.key, b.key) }

func TestSequence_AddDuplicateLandsAfterLeftMostMatch(t *testing.T) {
	s := NewSequence[tagged](byKey,
		tagged{1, "a"}, tagged{1, "b"}, tagged{1, "c"}, tagged{0, "z"},
	)
	at := s.Add(tagged{1, "d"})
	assert.Equal(t, 2, at)

	var tags []string
	for _, v := range s.Values() {
		tags = append(tags, v.tag)
	}
	assert.Equal(t, []string{"z", "a", "d", "b", "c"}, tags)
}

func TestSequence_AddUniqueIsIdempotent(t *testing.T) {
	once := NewSequence(Natural[int](), 3, 1, 2)
	twice := NewSequence(Natural[int](), 3, 1, 2)

	assert.True(t, once.AddUnique(4))
	assert.True(t, twice.AddUnique(4))
	assert.False(t, twice.AddUnique(4))
	assert.False(t, twice.AddUnique(1))
	assert.Equal(t, once.Values(), twice.Values())
}

func TestSequence_Lookups(t *testing.T) {
	s := NewSequence(Natural[int](), 5, 1, 5, 3, 5, 9)

	assert.Equal(t, 2, s.IndexOf(5))
	assert.Equal(t, 4, s.LastIndexOf(5))
	assert.Equal(t, -1, s.IndexOf(4))
	assert.True(t, s.Includes(9))
	assert.False(t, s.Includes(10))

	v, ok := s.Find(3)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = s.FindLast(42)
	assert.False(t, ok)

	assert.Equal(t, []int{5, 5, 5}, s.FindAll(5).Values())
	assert.Equal(t, 0, s.FindAll(4).Len())
}

func TestSequence_Discard(t *testing.T) {
	s := NewSequence(Natural[int](), 1, 2, 2, 3)

	assert.True(t, s.Discard(2))
	assert.Equal(t, []int{1, 2, 3}, s.Values())
	assert.False(t, s.Discard(7))

	assert.False(t, s.DiscardAt(-1))
	assert.False(t, s.DiscardAt(3))
	assert.True(t, s.DiscardAt(0))
	assert.Equal(t, []int{2, 3}, s.Values())

	s.Add(2)
	s.Add(2)
	assert.Equal(t, 3, s.DiscardEqual(2))
	assert.Equal(t, []int{3}, s.Values())

	s.DiscardAll()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, -1, s.IndexOf(3))
}

func TestSequence_ValuesIsACopy(t *testing.T) {
	s := NewSequence(Natural[int](), 1, 2, 3)
	vals := s.Values()
	vals[0] = 100
	assert.Equal(t, []int{1, 2, 3}, s.Values())
}

func TestSequence_AtOutOfRange(t *testing.T) {
	s := NewSequence(Natural[int](), 1)
	_, ok := s.At(1)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
	v, ok := s.At(0)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSequence_SetComparatorResorts(t *testing.T) {
	s := NewSequence(Natural[int](), 3, 1, 2)
	s.SetComparator(func(a, b int) int { return Natural[int]()(b, a) })
	assert.Equal(t, []int{3, 2, 1}, s.Values())
	assert.Equal(t, 0, s.Add(4))
}

func TestSequence_UniqueConcatIntersection(t *testing.T) {
	a := NewSequence(Natural[int](), 1, 1, 2, 3, 3, 3, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, a.Unique().Values())
	assert.Equal(t, 7, a.Len(), "unique must not modify the receiver")

	b := NewSequence(Natural[int](), 0, 3, 5)
	c := NewSequence(Natural[int](), 2)
	assert.Equal(t, []int{0, 1, 1, 2, 2, 3, 3, 3, 3, 4, 5}, a.Concat(b, c).Values())

	assert.Equal(t, []int{3, 3, 3}, a.Intersection(b).Values())
	assert.Equal(t, 0, a.Intersection(NewSequence(Natural[int]())).Len())
}

func TestSequence_RangeClamps(t *testing.T) {
	s := NewSequence(Natural[int](), 1, 2, 3, 4)
	assert.Equal(t, []int{2, 3}, s.Range(1, 3).Values())
	assert.Equal(t, []int{1, 2, 3, 4}, s.Range(-5, 50).Values())
	assert.Equal(t, 0, s.Range(3, 1).Len())
}

func TestSequence_RetainAndTransform(t *testing.T) {
	s := NewSequence(Natural[int](), 1, 2, 3, 4, 5)
	s.Retain(func(v int) bool { return v%2 == 1 })
	assert.Equal(t, []int{1, 3, 5}, s.Values())

	assert.True(t, s.Transform(func(v int) int { return v * 10 }))
	assert.Equal(t, []int{10, 30, 50}, s.Values())

	assert.False(t, s.Transform(func(v int) int { return -v }))
	s.Sort()
	assert.Equal(t, []int{-50, -30, -10}, s.Values())
}

func TestSequence_All(t *testing.T) {
	s := NewSequence(Natural[int](), 2, 1)
	var got []int
	for i, v := range s.All() {
		got = append(got, i, v)
	}
	assert.Equal(t, []int{0, 1, 1, 2}, got)
}

// Random add/addUnique/discard/sort sequences must keep the order invariant
// and the lookup contracts.
func TestSequence_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSequence(Natural[int]())

	for step := 0; step < 2000; step++ {
		x := rng.Intn(50)
		before := s.Len()

		switch rng.Intn(4) {
		case 0:
			s.Add(x)
			require.Equal(t, before+1, s.Len())
			require.NotEqual(t, -1, s.IndexOf(x))
		case 1:
			s.AddUnique(x)
			s.AddUnique(x)
		case 2:
			s.Discard(x)
		case 3:
			s.Sort()
		}

		vals := s.Values()
		require.True(t, slices.IsSorted(vals), "step %d: %v", step, vals)

		first, last := s.IndexOf(x), s.LastIndexOf(x)
		want := slices.Index(vals, x)
		require.Equal(t, want, first)
		if first == -1 {
			require.Equal(t, -1, last)
			require.Equal(t, 0, s.FindAll(x).Len())
			continue
		}
		for i := first; i <= last; i++ {
			require.Equal(t, x, vals[i])
		}
		if last+1 < len(vals) {
			require.NotEqual(t, x, vals[last+1])
		}
		require.Equal(t, last-first+1, s.FindAll(x).Len())
	}
}
