package storage

import "log"

// CreateIndex creates an index on a field path in a collection and builds it
// from the current documents
func (se *StorageEngine) CreateIndex(collName, path string) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		if err := coll.CreateIndex(path); err != nil {
			return err
		}
		log.Printf("INFO: Built index on '%s' for %d documents in collection '%s'", path, coll.Len(), collName)
		return nil
	})
}

// DropIndex removes an index from a collection
func (se *StorageEngine) DropIndex(collName, path string) error {
	return se.withCollectionWrite(collName, func(coll *Collection) error {
		return coll.DropIndex(path)
	})
}

// GetIndexes returns all indexed paths of a collection
func (se *StorageEngine) GetIndexes(collName string) ([]string, error) {
	var paths []string
	err := se.withCollectionRead(collName, func(coll *Collection) error {
		paths = coll.Indexes()
		return nil
	})
	return paths, err
}
