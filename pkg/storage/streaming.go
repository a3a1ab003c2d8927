package storage

import (
	"context"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// FindStream streams the documents in a collection that match matcher, in
// position order. An empty matcher streams every document. Matches are
// snapshotted under the read lock, so later writes do not affect the stream.
// The channel closes after the last document or when ctx is done.
func (se *StorageEngine) FindStream(ctx context.Context, collName string, matcher domain.Matcher) (<-chan domain.StreamedDocument, error) {
	var snapshot []domain.StreamedDocument
	err := se.withCollectionRead(collName, func(coll *Collection) error {
		positions, _ := coll.Query(matcher)
		snapshot = make([]domain.StreamedDocument, len(positions))
		for i, pos := range positions {
			snapshot[i] = domain.StreamedDocument{Position: pos, Document: coll.docs[pos].Clone()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(chan domain.StreamedDocument, 64)
	go func() {
		defer close(out)
		for _, doc := range snapshot {
			select {
			case out <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
