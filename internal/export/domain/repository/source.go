package repository

import (
	"context"
	"errors"
)

// ErrIteratorDone is returned by DocumentIterator.Next once the underlying
// stream is exhausted. It is a normal termination signal, not a failure.
var ErrIteratorDone = errors.New("document iterator exhausted")

// StructureSource is the read-only view of a hierarchical document store
// that structure discovery needs: the root collections, and through them
// every document and subcollection reachable below.
type StructureSource interface {
	// Collections lists the root collections of the source database.
	Collections(ctx context.Context) ([]CollectionRef, error)
}

// CollectionRef is a handle on one collection, root or nested. Both stream
// methods issue a fresh query; a partially consumed iterator cannot be
// rewound, only reissued.
type CollectionRef interface {
	// ID returns the collection's name.
	ID() string

	// Documents streams every document in the collection in store order.
	Documents(ctx context.Context) (DocumentIterator, error)

	// DocumentsOrderedBy streams at most limit documents ordered by the
	// given field, descending. When the store cannot satisfy the sort it
	// fails with the ordering-unsupported error class; any other failure
	// is fatal to the caller.
	DocumentsOrderedBy(ctx context.Context, orderField string, limit int) (DocumentIterator, error)
}

// DocumentSnapshot is one document as read from the store.
type DocumentSnapshot interface {
	// ID returns the document's identifier within its collection.
	ID() string

	// Data returns the document's top-level field values.
	Data() map[string]interface{}

	// Collections lists the subcollections attached to this document.
	// Discovering them is itself a read call against the store.
	Collections(ctx context.Context) ([]CollectionRef, error)
}

// DocumentIterator lazily yields document snapshots from a single query.
type DocumentIterator interface {
	// Next returns the next snapshot, or ErrIteratorDone when the stream
	// is exhausted.
	Next(ctx context.Context) (DocumentSnapshot, error)

	// Close releases the underlying cursor. Safe to call after Next has
	// returned ErrIteratorDone.
	Close(ctx context.Context) error
}
