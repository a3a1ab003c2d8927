package storage

import (
	"sync"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/adfharrison1/go-sortdex/pkg/ordered"
)

// StorageEngine holds named collections and serializes access to them. Reads
// share the lock; any mutation takes it exclusively, which is what lets each
// Collection and its IndexSet stay single-writer.
type StorageEngine struct {
	mu          sync.RWMutex
	collections map[string]*Collection

	// Configuration
	compare    ordered.Comparator[interface{}]
	observer   Observer
	autoCreate bool
}

var _ domain.DatabaseEngine = (*StorageEngine)(nil)

// NewStorageEngine creates a new storage engine
func NewStorageEngine(options ...StorageOption) *StorageEngine {
	engine := &StorageEngine{
		collections: make(map[string]*Collection),
		compare:     ordered.CompareValues,
		autoCreate:  true,
	}

	// Apply options
	for _, option := range options {
		option(engine)
	}

	return engine
}

func (se *StorageEngine) newCollection(collName string) *Collection {
	coll := NewCollection(collName, se.compare)
	coll.observer = se.observer
	se.collections[collName] = coll
	return coll
}

// withCollectionRead runs fn against a collection under the shared lock
func (se *StorageEngine) withCollectionRead(collName string, fn func(*Collection) error) error {
	se.mu.RLock()
	defer se.mu.RUnlock()
	coll, err := se.getCollectionInternal(collName)
	if err != nil {
		return err
	}
	return fn(coll)
}

// withCollectionWrite runs fn against a collection under the exclusive lock
func (se *StorageEngine) withCollectionWrite(collName string, fn func(*Collection) error) error {
	se.mu.Lock()
	defer se.mu.Unlock()
	coll, err := se.getCollectionInternal(collName)
	if err != nil {
		return err
	}
	return fn(coll)
}
