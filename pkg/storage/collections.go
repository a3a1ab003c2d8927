package storage

import (
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// GetCollection returns a collection by name. The caller must not mutate it
// while the engine is shared.
func (se *StorageEngine) GetCollection(collName string) (*Collection, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return se.getCollectionInternal(collName)
}

// getCollectionInternal looks a collection up without locking
func (se *StorageEngine) getCollectionInternal(collName string) (*Collection, error) {
	coll, exists := se.collections[collName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, collName)
	}
	return coll, nil
}

// CreateCollection creates a new, empty collection
func (se *StorageEngine) CreateCollection(collName string) error {
	se.mu.Lock()
	defer se.mu.Unlock()

	if collName == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	if _, exists := se.collections[collName]; exists {
		return fmt.Errorf("%w: %s", domain.ErrCollectionExists, collName)
	}

	se.newCollection(collName)
	log.Printf("INFO: Created collection '%s'", collName)
	return nil
}

// DropCollection removes a collection and its indexes
func (se *StorageEngine) DropCollection(collName string) error {
	se.mu.Lock()
	defer se.mu.Unlock()

	coll, err := se.getCollectionInternal(collName)
	if err != nil {
		return err
	}
	coll.indexes.Clear()
	delete(se.collections, collName)
	log.Printf("INFO: Dropped collection '%s'", collName)
	return nil
}

// Collections returns the collection names in sorted order
func (se *StorageEngine) Collections() []string {
	se.mu.RLock()
	defer se.mu.RUnlock()
	return slices.Sorted(maps.Keys(se.collections))
}
