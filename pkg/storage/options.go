package storage

import "github.com/adfharrison1/go-sortdex/pkg/ordered"

type StorageOption func(*StorageEngine)

// Observer receives notifications about index activity. Implementations must
// be safe for concurrent use; queries are served under a shared lock.
type Observer interface {
	QueryServed(collection string, usedIndexes bool, candidates, results int)
	IndexRebuilt(collection string, indexes, documents int)
}

// WithComparator sets the value comparator used by every collection's indexes
// and filters (default: ordered.CompareValues)
func WithComparator(compare ordered.Comparator[interface{}]) StorageOption {
	return func(engine *StorageEngine) {
		engine.compare = compare
	}
}

// WithObserver attaches an observer, such as the Prometheus metrics collector
func WithObserver(observer Observer) StorageOption {
	return func(engine *StorageEngine) {
		engine.observer = observer
	}
}

// WithAutoCreate controls whether inserting into a missing collection creates
// it (default: true)
func WithAutoCreate(enabled bool) StorageOption {
	return func(engine *StorageEngine) {
		engine.autoCreate = enabled
	}
}
