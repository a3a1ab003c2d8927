package storage

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection(t *testing.T) *Collection {
	t.Helper()
	coll := NewCollection("users", nil)
	for _, doc := range []domain.Document{
		{"name": "Alice", "age": 25, "address": map[string]interface{}{"city": "Oslo"}},
		{"name": "Bob", "age": 30, "address": map[string]interface{}{"city": "Bergen"}},
		{"name": "Charlie", "age": 25, "address": map[string]interface{}{"city": "Oslo"}},
		{"name": "David", "age": 35, "address": map[string]interface{}{"city": "Trondheim"}},
		{"name": "Eve", "age": 28},
	} {
		coll.Insert(doc)
	}
	require.NoError(t, coll.CreateIndex("age"))
	require.NoError(t, coll.CreateIndex("address.city"))
	return coll
}

// scan answers a matcher without touching any index
func scan(coll *Collection, matcher domain.Matcher) []int {
	positions := []int{}
	for i, doc := range coll.docs {
		if MatchesFilter(doc, matcher, coll.compare) {
			positions = append(positions, i)
		}
	}
	return positions
}

func assertQueryAgreesWithScan(t *testing.T, coll *Collection, matcher domain.Matcher) {
	t.Helper()
	got, _ := coll.Query(matcher)
	assert.Equal(t, scan(coll, matcher), append([]int{}, got...), "matcher %v", matcher)
}

func sampleMatchers() []domain.Matcher {
	return []domain.Matcher{
		{"age": 25},
		{"age": domain.Ops{domain.OpGreaterOrEqual: 28}},
		{"age": domain.Ops{domain.OpLess: 30}, "name": "Alice"},
		{"address.city": "Oslo"},
		{"address": domain.Matcher{"city": domain.Ops{domain.OpIn: []interface{}{"Bergen", "Trondheim"}}}},
		{"address.city": domain.Ops{domain.OpNotEqual: "Oslo"}},
		{"address.city": domain.Ops{domain.OpNotIn: []interface{}{"Oslo"}}, "age": domain.Ops{domain.OpGreater: 20}},
		{"name": domain.Ops{domain.OpGreater: "B"}},
	}
}

func TestCollection_QueryUsesIndexes(t *testing.T) {
	coll := sampleCollection(t)

	positions, used := coll.Query(domain.Matcher{"age": 25})
	assert.True(t, used)
	assert.Equal(t, []int{0, 2}, positions)

	positions, used = coll.Query(domain.Matcher{"name": "Bob"})
	assert.False(t, used)
	assert.Equal(t, []int{1}, positions)

	positions, used = coll.Query(domain.Matcher{})
	assert.False(t, used)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, positions)

	positions, used = coll.Query(domain.Matcher{"age": domain.Ops{"$regex": "2.*"}})
	assert.False(t, used)
	assert.Empty(t, positions)

	for _, m := range sampleMatchers() {
		assertQueryAgreesWithScan(t, coll, m)
	}
}

func TestCollection_PositionalEditsKeepIndexesExact(t *testing.T) {
	coll := sampleCollection(t)

	require.NoError(t, coll.InsertAt(0, domain.Document{"name": "Zed", "age": 25}))
	assert.Equal(t, 6, coll.Len())
	positions, _ := coll.Query(domain.Matcher{"age": 25})
	assert.Equal(t, []int{0, 1, 3}, positions)

	removed, err := coll.RemoveAt(2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", removed["name"])
	positions, _ = coll.Query(domain.Matcher{"address.city": "Oslo"})
	assert.Equal(t, []int{1, 2}, positions)

	require.NoError(t, coll.Replace(0, domain.Document{"name": "Zed", "age": 40, "address": map[string]interface{}{"city": "Oslo"}}))
	positions, _ = coll.Query(domain.Matcher{"address.city": "Oslo"})
	assert.Equal(t, []int{0, 1, 2}, positions)

	require.NoError(t, coll.Truncate(2))
	positions, _ = coll.Query(domain.Matcher{"address.city": "Oslo"})
	assert.Equal(t, []int{0, 1}, positions)

	for _, m := range sampleMatchers() {
		assertQueryAgreesWithScan(t, coll, m)
	}
}

func TestCollection_PositionErrors(t *testing.T) {
	coll := sampleCollection(t)

	_, err := coll.Get(5)
	assert.ErrorIs(t, err, domain.ErrPositionOutOfRange)
	_, err = coll.RemoveAt(-1)
	assert.ErrorIs(t, err, domain.ErrPositionOutOfRange)
	assert.ErrorIs(t, coll.InsertAt(6, domain.Document{}), domain.ErrPositionOutOfRange)
	assert.NoError(t, coll.InsertAt(5, domain.Document{"name": "Tail"}))
	assert.ErrorIs(t, coll.Replace(9, domain.Document{}), domain.ErrPositionOutOfRange)
	assert.ErrorIs(t, coll.Truncate(-1), domain.ErrPositionOutOfRange)
	assert.NoError(t, coll.Truncate(100))
	assert.Equal(t, 6, coll.Len())
}

func TestCollection_SetField(t *testing.T) {
	coll := sampleCollection(t)

	require.NoError(t, coll.SetField(0, "age", 30))
	positions, _ := coll.Query(domain.Matcher{"age": 30})
	assert.Equal(t, []int{0, 1}, positions)

	// Eve has no address yet; the intermediate object is created.
	require.NoError(t, coll.SetField(4, "address.city", "Oslo"))
	positions, _ = coll.Query(domain.Matcher{"address.city": "Oslo"})
	assert.Equal(t, []int{0, 2, 4}, positions)

	// Overwriting an ancestor reindexes its descendants.
	require.NoError(t, coll.SetField(2, "address", map[string]interface{}{"city": "Bergen"}))
	positions, _ = coll.Query(domain.Matcher{"address.city": "Bergen"})
	assert.Equal(t, []int{1, 2}, positions)

	assert.Error(t, coll.SetField(0, "", 1))
	assert.ErrorIs(t, coll.SetField(10, "age", 1), domain.ErrPositionOutOfRange)

	for _, m := range sampleMatchers() {
		assertQueryAgreesWithScan(t, coll, m)
	}
}

func TestCollection_NumericExactness(t *testing.T) {
	coll := NewCollection("nums", nil)
	coll.Insert(domain.Document{"v": int64(1<<53 + 1)})
	coll.Insert(domain.Document{"v": []interface{}{1}})
	coll.Insert(domain.Document{"v": int64(1 << 53)})

	scanned := []domain.Matcher{
		{"v": int64(1 << 53)},
		{"v": []interface{}{1.0}},
		{"v": domain.Ops{domain.OpGreater: int64(1 << 53)}},
	}
	assert.Equal(t, []int{2}, scan(coll, scanned[0]))
	assert.Equal(t, []int{1}, scan(coll, scanned[1]))
	// composites order after every number
	assert.Equal(t, []int{0, 1}, scan(coll, scanned[2]))

	require.NoError(t, coll.CreateIndex("v"))
	for _, m := range scanned {
		assertQueryAgreesWithScan(t, coll, m)
	}
}

func TestCollection_SetFieldIntoArray(t *testing.T) {
	coll := NewCollection("posts", nil)
	coll.Insert(domain.Document{"tags": []interface{}{"a", "b"}, "title": "x"})
	coll.Insert(domain.Document{"tags": []interface{}{map[string]interface{}{"name": "c"}}})
	require.NoError(t, coll.CreateIndex("tags.0"))

	require.NoError(t, coll.SetField(0, "tags.0", "z"))
	doc, err := coll.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"z", "b"}, doc["tags"])

	positions, _ := coll.Query(domain.Matcher{"tags.0": "z"})
	assert.Equal(t, []int{0}, positions)

	require.NoError(t, coll.SetField(1, "tags.0.name", "d"))
	doc, err = coll.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "d"}}, doc["tags"])

	tests := []struct {
		name string
		path string
	}{
		{"index past the end", "tags.2"},
		{"non-numeric segment", "tags.first"},
		{"negative index", "tags.-1"},
		{"scalar intermediate", "title.sub"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, coll.SetField(0, tt.path, "q"), domain.ErrInvalidPath)
			doc, err := coll.Get(0)
			require.NoError(t, err)
			assert.Equal(t, []interface{}{"z", "b"}, doc["tags"])
			assert.Equal(t, "x", doc["title"])
		})
	}

	assertQueryAgreesWithScan(t, coll, domain.Matcher{"tags.0": "z"})
}

func TestCollection_SetFieldUnderIndexedObject(t *testing.T) {
	coll := sampleCollection(t)
	require.NoError(t, coll.CreateIndex("address"))
	builds := coll.IndexSet().BuildCount()

	require.NoError(t, coll.SetField(0, "address.city", "Bergen"))
	assert.Equal(t, builds+1, coll.IndexSet().BuildCount())

	positions, _ := coll.Query(domain.Matcher{"address": domain.Ops{domain.OpEqual: map[string]interface{}{"city": "Bergen"}}})
	assert.Equal(t, []int{0, 1}, positions)
}

func TestCollection_UpdateAppliesEveryPath(t *testing.T) {
	coll := sampleCollection(t)

	require.NoError(t, coll.Update(1, domain.Document{"age": 25, "address.city": "Oslo", "nickname": "B"}))
	doc, err := coll.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "B", doc["nickname"])

	positions, _ := coll.Query(domain.Matcher{"age": 25, "address.city": "Oslo"})
	assert.Equal(t, []int{0, 1, 2}, positions)
}

func TestCollection_InsertCopiesInput(t *testing.T) {
	coll := NewCollection("c", nil)
	require.NoError(t, coll.CreateIndex("address.city"))

	input := domain.Document{"address": map[string]interface{}{"city": "Oslo"}}
	coll.Insert(input)
	input["address"].(map[string]interface{})["city"] = "Bergen"

	positions, _ := coll.Query(domain.Matcher{"address.city": "Oslo"})
	assert.Equal(t, []int{0}, positions)
	assertQueryAgreesWithScan(t, coll, domain.Matcher{"address.city": "Oslo"})
}

func TestCollection_SortByAndReverse(t *testing.T) {
	coll := sampleCollection(t)
	builds := coll.IndexSet().BuildCount()

	coll.SortBy("age", false)
	names := func() []interface{} {
		out := []interface{}{}
		for _, d := range coll.Documents() {
			out = append(out, d["name"])
		}
		return out
	}
	assert.Equal(t, []interface{}{"Alice", "Charlie", "Eve", "Bob", "David"}, names())
	assert.Equal(t, builds+1, coll.IndexSet().BuildCount())

	positions, _ := coll.Query(domain.Matcher{"age": 25})
	assert.Equal(t, []int{0, 1}, positions)

	coll.SortBy("address.city", true)
	// Missing values sort greatest, so Eve leads a descending sort.
	assert.Equal(t, "Eve", names()[0])

	coll.Reverse()
	assert.Equal(t, "Eve", names()[4])

	for _, m := range sampleMatchers() {
		assertQueryAgreesWithScan(t, coll, m)
	}
}

func TestCollection_IndexLifecycle(t *testing.T) {
	coll := sampleCollection(t)
	assert.Equal(t, []string{"address.city", "age"}, coll.Indexes())

	assert.ErrorIs(t, coll.CreateIndex("age"), domain.ErrIndexExists)
	assert.Error(t, coll.CreateIndex(""))

	require.NoError(t, coll.DropIndex("age"))
	assert.ErrorIs(t, coll.DropIndex("age"), domain.ErrIndexNotFound)
	assert.Equal(t, []string{"address.city"}, coll.Indexes())

	positions, used := coll.Query(domain.Matcher{"age": 25})
	assert.False(t, used)
	assert.Equal(t, []int{0, 2}, positions)
}

func TestCollection_Find(t *testing.T) {
	coll := sampleCollection(t)

	page, err := coll.Find(domain.Matcher{"age": domain.Ops{domain.OpGreaterOrEqual: 25}}, &domain.PaginationOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, page.Positions)
	assert.Len(t, page.Documents, 2)
	assert.Equal(t, "Bob", page.Documents[1]["name"])
	assert.True(t, page.UsedIndexes)
	assert.True(t, page.HasNext)
	assert.Equal(t, int64(5), page.Total)

	page, err = coll.Find(domain.Matcher{"age": domain.Ops{domain.OpGreaterOrEqual: 25}}, &domain.PaginationOptions{Limit: 2, After: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, page.Positions)

	page, err = coll.Find(nil, nil)
	require.NoError(t, err)
	assert.Len(t, page.Documents, 5)

	_, err = coll.Find(nil, &domain.PaginationOptions{Limit: -1})
	assert.Error(t, err)
}

func TestCollection_Where(t *testing.T) {
	coll := sampleCollection(t)
	builds := coll.IndexSet().BuildCount()

	view := coll.Where(domain.Matcher{"address.city": domain.Ops{domain.OpNotEqual: "Bergen"}})
	assert.Equal(t, 4, view.Len())
	assert.Equal(t, builds, coll.IndexSet().BuildCount())
	assert.Equal(t, 0, view.IndexSet().BuildCount())
	assert.Equal(t, coll.Indexes(), view.Indexes())

	positions, used := view.Query(domain.Matcher{"age": 25})
	assert.True(t, used)
	assert.Equal(t, []int{0, 1}, positions)
	for _, m := range sampleMatchers() {
		assertQueryAgreesWithScan(t, view, m)
	}

	// The view owns its documents.
	require.NoError(t, view.SetField(0, "name", "Alicia"))
	doc, err := coll.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc["name"])
}

func TestCollection_RandomEditsAgreeWithScan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	coll := NewCollection("random", nil)
	require.NoError(t, coll.CreateIndex("n"))
	require.NoError(t, coll.CreateIndex("meta.tag"))

	randomDoc := func() domain.Document {
		doc := domain.Document{"n": rng.Intn(6)}
		if rng.Intn(4) > 0 {
			doc["meta"] = map[string]interface{}{"tag": fmt.Sprintf("t%d", rng.Intn(3))}
		}
		return doc
	}

	matchers := []domain.Matcher{
		{"n": 3},
		{"n": domain.Ops{domain.OpGreater: 2, domain.OpLessOrEqual: 4}},
		{"meta.tag": "t1"},
		{"meta.tag": domain.Ops{domain.OpNotIn: []interface{}{"t0", "t2"}}},
		{"n": domain.Ops{domain.OpIn: []interface{}{0, 5}}, "meta.tag": domain.Ops{domain.OpNotEqual: "t1"}},
	}

	for step := 0; step < 300; step++ {
		switch op := rng.Intn(7); {
		case op == 0 || coll.Len() == 0:
			coll.Insert(randomDoc())
		case op == 1:
			require.NoError(t, coll.InsertAt(rng.Intn(coll.Len()+1), randomDoc()))
		case op == 2:
			_, err := coll.RemoveAt(rng.Intn(coll.Len()))
			require.NoError(t, err)
		case op == 3:
			require.NoError(t, coll.Replace(rng.Intn(coll.Len()), randomDoc()))
		case op == 4:
			require.NoError(t, coll.SetField(rng.Intn(coll.Len()), "meta.tag", fmt.Sprintf("t%d", rng.Intn(3))))
		case op == 5:
			require.NoError(t, coll.SetField(rng.Intn(coll.Len()), "n", rng.Intn(6)))
		default:
			if rng.Intn(10) == 0 {
				require.NoError(t, coll.Truncate(rng.Intn(coll.Len()+1)))
			} else {
				coll.Insert(randomDoc())
			}
		}

		for _, m := range matchers {
			assertQueryAgreesWithScan(t, coll, m)
		}
	}
}

type recordingObserver struct {
	queries  int
	indexed  int
	rebuilds int
}

func (r *recordingObserver) QueryServed(collection string, usedIndexes bool, candidates, results int) {
	r.queries++
	if usedIndexes {
		r.indexed++
	}
}

func (r *recordingObserver) IndexRebuilt(collection string, indexes, documents int) {
	r.rebuilds++
}

func TestCollection_Observer(t *testing.T) {
	obs := &recordingObserver{}
	coll := NewCollection("observed", nil)
	coll.observer = obs

	coll.Insert(domain.Document{"a": 1})
	require.NoError(t, coll.CreateIndex("a"))
	assert.Equal(t, 1, obs.rebuilds)

	coll.Query(domain.Matcher{"a": 1})
	coll.Query(domain.Matcher{"b": 1})
	assert.Equal(t, 2, obs.queries)
	assert.Equal(t, 1, obs.indexed)
}
