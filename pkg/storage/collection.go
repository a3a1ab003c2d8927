package storage

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/adfharrison1/go-sortdex/pkg/indexing"
	"github.com/adfharrison1/go-sortdex/pkg/ordered"
)

// Collection is an ordered list of documents addressed by position. It owns
// one IndexSet and reports every structural edit to it, so indexed queries
// stay exact without rescanning. A Collection is not safe for concurrent use;
// StorageEngine serializes access to the collections it holds.
type Collection struct {
	Name     string
	docs     []domain.Document
	indexes  *indexing.IndexSet
	compare  ordered.Comparator[interface{}]
	observer Observer
}

// NewCollection creates an empty collection. A nil compare means
// ordered.CompareValues.
func NewCollection(name string, compare ordered.Comparator[interface{}]) *Collection {
	if compare == nil {
		compare = ordered.CompareValues
	}
	return &Collection{
		Name:    name,
		compare: compare,
		indexes: indexing.NewIndexSet(indexing.WithComparator(compare)),
	}
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	return len(c.docs)
}

// Documents returns the documents in position order.
func (c *Collection) Documents() []domain.Document {
	return slices.Clone(c.docs)
}

// IndexSet exposes the collection's indexes for inspection.
func (c *Collection) IndexSet() *indexing.IndexSet {
	return c.indexes
}

func (c *Collection) source() iter.Seq2[int, interface{}] {
	return func(yield func(int, interface{}) bool) {
		for i, d := range c.docs {
			if !yield(i, d) {
				return
			}
		}
	}
}

func (c *Collection) notify(m indexing.Mutation) {
	c.indexes.Notify(m)
	if m.Kind == indexing.MutationReorder && c.observer != nil {
		c.observer.IndexRebuilt(c.Name, len(c.indexes.Paths()), len(c.docs))
	}
}

func (c *Collection) checkPosition(pos int) error {
	if pos < 0 || pos >= len(c.docs) {
		return fmt.Errorf("%w: %d not in [0, %d) for collection %s", domain.ErrPositionOutOfRange, pos, len(c.docs), c.Name)
	}
	return nil
}

// Get returns the document at pos.
func (c *Collection) Get(pos int) (domain.Document, error) {
	if err := c.checkPosition(pos); err != nil {
		return nil, err
	}
	return c.docs[pos], nil
}

// Insert appends doc and returns its position.
func (c *Collection) Insert(doc domain.Document) int {
	pos := len(c.docs)
	c.docs = append(c.docs, doc.Clone())
	c.notify(indexing.Mutation{Kind: indexing.MutationInsert, Position: pos, Item: c.docs[pos]})
	return pos
}

// InsertAt inserts doc at pos, shifting later documents up. pos may equal Len.
func (c *Collection) InsertAt(pos int, doc domain.Document) error {
	if pos < 0 || pos > len(c.docs) {
		return fmt.Errorf("%w: %d not in [0, %d] for collection %s", domain.ErrPositionOutOfRange, pos, len(c.docs), c.Name)
	}
	c.docs = slices.Insert(c.docs, pos, doc.Clone())
	c.notify(indexing.Mutation{Kind: indexing.MutationInsert, Position: pos, Item: c.docs[pos]})
	return nil
}

// RemoveAt removes and returns the document at pos.
func (c *Collection) RemoveAt(pos int) (domain.Document, error) {
	if err := c.checkPosition(pos); err != nil {
		return nil, err
	}
	removed := c.docs[pos]
	c.docs = slices.Delete(c.docs, pos, pos+1)
	c.notify(indexing.Mutation{Kind: indexing.MutationRemove, Position: pos, Item: removed})
	return removed, nil
}

// Replace swaps the document at pos for doc.
func (c *Collection) Replace(pos int, doc domain.Document) error {
	if err := c.checkPosition(pos); err != nil {
		return err
	}
	previous := c.docs[pos]
	c.docs[pos] = doc.Clone()
	c.notify(indexing.Mutation{Kind: indexing.MutationReplace, Position: pos, Item: c.docs[pos], Previous: previous})
	return nil
}

// SetField sets the value at a dotted path of the document at pos, creating
// intermediate objects as needed.
func (c *Collection) SetField(pos int, path string, value interface{}) error {
	if err := c.checkPosition(pos); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	// An index on an ancestor of path holds the object about to be mutated in
	// place, so its records can only be recomputed.
	rebuild := false
	affected := make(map[string]interface{})
	for _, p := range c.indexes.Paths() {
		switch {
		case strings.HasPrefix(path, p+"."):
			rebuild = true
		case p == path || strings.HasPrefix(p, path+"."):
			affected[p], _ = c.indexes.Extract(p, c.docs[pos])
		}
	}

	if err := setPath(c.docs[pos], strings.Split(path, "."), domain.CloneValue(value)); err != nil {
		return err
	}

	if rebuild {
		c.notify(indexing.Mutation{Kind: indexing.MutationReorder, Source: c.source()})
		return nil
	}
	for p, previous := range affected {
		current, _ := c.indexes.Extract(p, c.docs[pos])
		c.notify(indexing.Mutation{
			Kind:          indexing.MutationSetField,
			Position:      pos,
			Path:          p,
			Value:         current,
			PreviousValue: previous,
		})
	}
	return nil
}

// Update applies every (dotted path, value) pair in updates to the document
// at pos.
func (c *Collection) Update(pos int, updates domain.Document) error {
	if err := c.checkPosition(pos); err != nil {
		return err
	}
	for _, path := range slices.Sorted(maps.Keys(updates)) {
		if err := c.SetField(pos, path, updates[path]); err != nil {
			return err
		}
	}
	return nil
}

// Truncate drops every document at or beyond length.
func (c *Collection) Truncate(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: negative length %d", domain.ErrPositionOutOfRange, length)
	}
	if length >= len(c.docs) {
		return nil
	}
	clear(c.docs[length:])
	c.docs = c.docs[:length]
	c.notify(indexing.Mutation{Kind: indexing.MutationTruncate, Length: length})
	return nil
}

// SortBy stably reorders the documents by the value at path.
func (c *Collection) SortBy(path string, descending bool) {
	get := indexing.CompilePath(path)
	slices.SortStableFunc(c.docs, func(a, b domain.Document) int {
		if descending {
			return c.compare(get(b), get(a))
		}
		return c.compare(get(a), get(b))
	})
	c.notify(indexing.Mutation{Kind: indexing.MutationReorder, Source: c.source()})
}

// Reverse reverses the document order.
func (c *Collection) Reverse() {
	slices.Reverse(c.docs)
	c.notify(indexing.Mutation{Kind: indexing.MutationReorder, Source: c.source()})
}

// CreateIndex registers path and populates it from the current documents.
func (c *Collection) CreateIndex(path string) error {
	if path == "" {
		return fmt.Errorf("field path cannot be empty")
	}
	if err := c.indexes.AddIndex(path); err != nil {
		return fmt.Errorf("collection %s: %w", c.Name, err)
	}
	c.notify(indexing.Mutation{Kind: indexing.MutationReorder, Source: c.source()})
	return nil
}

// DropIndex unregisters path.
func (c *Collection) DropIndex(path string) error {
	if err := c.indexes.RemoveIndex(path); err != nil {
		return fmt.Errorf("collection %s: %w", c.Name, err)
	}
	return nil
}

// Indexes returns the indexed paths.
func (c *Collection) Indexes() []string {
	return c.indexes.Paths()
}

// Query returns the ascending positions of documents matching matcher and
// whether any index narrowed the search.
func (c *Collection) Query(matcher domain.Matcher) ([]int, bool) {
	if len(matcher) == 0 {
		all := make([]int, len(c.docs))
		for i := range all {
			all[i] = i
		}
		return all, false
	}

	res := c.indexes.Query(matcher)
	candidates := res.Matches
	if !res.UsedIndexes {
		candidates = make([]int, len(c.docs))
		for i := range candidates {
			candidates[i] = i
		}
	}

	positions := make([]int, 0, len(candidates))
	for _, pos := range candidates {
		if pos < 0 || pos >= len(c.docs) {
			continue
		}
		if len(res.NonIndexedSearches) == 0 || MatchesFilter(c.docs[pos], res.NonIndexedSearches, c.compare) {
			positions = append(positions, pos)
		}
	}

	if c.observer != nil {
		c.observer.QueryServed(c.Name, res.UsedIndexes, len(candidates), len(positions))
	}
	return positions, res.UsedIndexes
}

// Find returns one page of documents matching matcher in position order.
func (c *Collection) Find(matcher domain.Matcher, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	if options == nil {
		options = domain.DefaultPaginationOptions()
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pagination options: %w", err)
	}

	positions, usedIndexes := c.Query(matcher)
	result, err := paginate(positions, options)
	if err != nil {
		return nil, err
	}
	result.UsedIndexes = usedIndexes
	for _, pos := range result.Positions {
		result.Documents = append(result.Documents, c.docs[pos])
	}
	return result, nil
}

// Where returns a new collection holding the documents matching matcher, in
// order. Its indexes are derived from this collection's without re-reading
// any document.
func (c *Collection) Where(matcher domain.Matcher) *Collection {
	positions, _ := c.Query(matcher)
	view := &Collection{
		Name:     c.Name,
		compare:  c.compare,
		observer: c.observer,
		indexes:  c.indexes.Spawn(positions),
		docs:     make([]domain.Document, len(positions)),
	}
	for i, pos := range positions {
		view.docs[i] = c.docs[pos].Clone()
	}
	return view
}

// setPath assigns value at the nested location described by segments.
// Missing objects along the way are created. A numeric segment addresses an
// existing array element; any other existing non-object value is an error and
// the document is left untouched.
func setPath(doc map[string]interface{}, segments []string, value interface{}) error {
	var cur interface{} = doc
	for i, seg := range segments {
		last := i == len(segments)-1
		switch node := cur.(type) {
		case domain.Document:
			cur = descend(node, seg, last, value)
		case map[string]interface{}:
			cur = descend(node, seg, last, value)
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return fmt.Errorf("%w: %q is not an index into an array of %d at %q",
					domain.ErrInvalidPath, seg, len(node), strings.Join(segments[:i], "."))
			}
			if last {
				node[idx] = value
			} else {
				cur = node[idx]
			}
		default:
			return fmt.Errorf("%w: %q holds a %T, not an object or array",
				domain.ErrInvalidPath, strings.Join(segments[:i], "."), cur)
		}
	}
	return nil
}

// descend assigns value under seg when last, and otherwise returns the child
// at seg, creating an empty object when it is absent.
func descend(node map[string]interface{}, seg string, last bool, value interface{}) interface{} {
	if last {
		node[seg] = value
		return nil
	}
	next, exists := node[seg]
	if !exists || next == nil {
		child := make(map[string]interface{})
		node[seg] = child
		return child
	}
	return next
}
