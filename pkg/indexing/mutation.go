package indexing

import "iter"

// MutationKind identifies a structural edit of the owning collection.
type MutationKind int

const (
	// MutationInsert: Item was inserted at Position, shifting later items up.
	MutationInsert MutationKind = iota
	// MutationRemove: Item was removed from Position, shifting later items down.
	MutationRemove
	// MutationReplace: the item at Position changed from Previous to Item.
	MutationReplace
	// MutationSetField: the field at Path of the item at Position changed
	// from PreviousValue to Value.
	MutationSetField
	// MutationTruncate: the collection was cut to Length items.
	MutationTruncate
	// MutationReorder: items moved arbitrarily; Source yields the new layout.
	MutationReorder
)

func (k MutationKind) String() string {
	switch k {
	case MutationInsert:
		return "insert"
	case MutationRemove:
		return "remove"
	case MutationReplace:
		return "replace"
	case MutationSetField:
		return "set-field"
	case MutationTruncate:
		return "truncate"
	case MutationReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// Mutation describes one edit of the owner. Only the fields relevant to Kind
// are read.
type Mutation struct {
	Kind          MutationKind
	Position      int
	Item          interface{}
	Previous      interface{}
	Path          string
	Value         interface{}
	PreviousValue interface{}
	Length        int
	Source        iter.Seq2[int, interface{}]
}

// Notify brings every index up to date after m, picking the incremental
// operation that expresses it or a full rebuild when none does.
func (s *IndexSet) Notify(m Mutation) {
	switch m.Kind {
	case MutationInsert:
		s.Increment(1, m.Position)
		s.Add(m.Item, m.Position)
	case MutationRemove:
		s.Discard(m.Item, m.Position)
		s.Increment(-1, m.Position+1)
	case MutationReplace:
		s.Discard(m.Previous, m.Position)
		s.Add(m.Item, m.Position)
	case MutationSetField:
		s.Update(m.Path, m.Position, m.Value, m.PreviousValue)
	case MutationTruncate:
		s.Length(m.Length)
	default:
		s.Rebuild(m.Source)
	}
}
