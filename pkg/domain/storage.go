package domain

import "context"

// CollectionStore defines positional document operations over named collections
type CollectionStore interface {
	CreateCollection(collName string) error
	DropCollection(collName string) error
	Collections() []string
	Insert(collName string, doc Document) (int, error)
	InsertAt(collName string, pos int, doc Document) error
	Get(collName string, pos int) (Document, error)
	Replace(collName string, pos int, doc Document) error
	Update(collName string, pos int, updates Document) error
	RemoveAt(collName string, pos int) (Document, error)
	Truncate(collName string, length int) error
	SortBy(collName, path string, descending bool) error
	Find(collName string, matcher Matcher, options *PaginationOptions) (*PaginationResult, error)
}

// IndexManager defines the interface for secondary index management
type IndexManager interface {
	CreateIndex(collName, path string) error
	DropIndex(collName, path string) error
	GetIndexes(collName string) ([]string, error)
}

// StreamedDocument pairs a streamed document with its position at the time
// the stream was opened
type StreamedDocument struct {
	Position int      `json:"position"`
	Document Document `json:"document"`
}

// DocumentStreamer streams matching documents without building a page
type DocumentStreamer interface {
	FindStream(ctx context.Context, collName string, matcher Matcher) (<-chan StreamedDocument, error)
}

// DatabaseEngine combines CollectionStore, IndexManager and DocumentStreamer interfaces
type DatabaseEngine interface {
	CollectionStore
	IndexManager
	DocumentStreamer
}
