package storage

import (
	"log"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// Insert appends a document to a collection and returns its position
func (se *StorageEngine) Insert(collName string, doc domain.Document) (int, error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	coll, err := se.getCollectionInternal(collName)
	if err != nil {
		if !se.autoCreate {
			return 0, err
		}
		// Collection doesn't exist, create it
		coll = se.newCollection(collName)
		log.Printf("INFO: Created collection '%s' on first insert", collName)
	}

	return coll.Insert(doc), nil
}

// InsertAt inserts a document at a position, shifting later documents up
func (se *StorageEngine) InsertAt(collName string, pos int, doc domain.Document) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		return coll.InsertAt(pos, doc)
	})
}

// Get retrieves the document at a position
func (se *StorageEngine) Get(collName string, pos int) (domain.Document, error) {
	var doc domain.Document
	err := se.withCollectionRead(collName, func(coll *Collection) error {
		d, err := coll.Get(pos)
		if err != nil {
			return err
		}
		doc = d.Clone()
		return nil
	})
	return doc, err
}

// Replace swaps the document at a position for a new one
func (se *StorageEngine) Replace(collName string, pos int, doc domain.Document) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		return coll.Replace(pos, doc)
	})
}

// Update applies (dotted path, value) updates to the document at a position
func (se *StorageEngine) Update(collName string, pos int, updates domain.Document) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		return coll.Update(pos, updates)
	})
}

// RemoveAt removes the document at a position, shifting later documents down
func (se *StorageEngine) RemoveAt(collName string, pos int) (domain.Document, error) {
	var removed domain.Document
	err := se.withCollectionWrite(collName, func(coll *Collection) error {
		doc, err := coll.RemoveAt(pos)
		removed = doc
		return err
	})
	return removed, err
}

// Truncate cuts a collection down to length documents
func (se *StorageEngine) Truncate(collName string, length int) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		return coll.Truncate(length)
	})
}

// SortBy reorders a collection by the value at a field path
func (se *StorageEngine) SortBy(collName, path string, descending bool) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		coll.SortBy(path, descending)
		return nil
	})
}

// Find returns one page of documents matching the matcher, in position order.
// Indexed predicates narrow the candidates; the rest are checked by scanning.
func (se *StorageEngine) Find(collName string, matcher domain.Matcher, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	var result *domain.PaginationResult
	err := se.withCollectionRead(collName, func(coll *Collection) error {
		res, err := coll.Find(matcher, options)
		if err != nil {
			return err
		}
		for i, doc := range res.Documents {
			res.Documents[i] = doc.Clone()
		}
		result = res
		return nil
	})
	return result, err
}
