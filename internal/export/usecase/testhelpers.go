package usecase

import (
	"context"

	"firestore-export/internal/export/domain/repository"
)

// Hand-written fakes implementing the repository interfaces. Tests wire
// these instead of a live store; error fields inject failures at each
// seam the pipeline crosses.

type fakeSource struct {
	collections []repository.CollectionRef
	err         error
}

func (s *fakeSource) Collections(ctx context.Context) ([]repository.CollectionRef, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.collections, nil
}

type fakeCollection struct {
	id   string
	docs []*fakeDocument

	orderedErr     error // returned by DocumentsOrderedBy
	documentsErr   error // returned by Documents
	streamErr      error // returned by Next after streamErrAfter snapshots
	streamErrAfter int

	orderedCalls   int
	unorderedCalls int
	pulls          int // Next calls actually served by this collection's iterators
	lastOrderField string
	lastLimit      int
}

func (c *fakeCollection) ID() string { return c.id }

func (c *fakeCollection) Documents(ctx context.Context) (repository.DocumentIterator, error) {
	c.unorderedCalls++
	if c.documentsErr != nil {
		return nil, c.documentsErr
	}
	return &fakeIterator{col: c, docs: c.docs}, nil
}

func (c *fakeCollection) DocumentsOrderedBy(ctx context.Context, orderField string, limit int) (repository.DocumentIterator, error) {
	c.orderedCalls++
	c.lastOrderField = orderField
	c.lastLimit = limit
	if c.orderedErr != nil {
		return nil, c.orderedErr
	}
	docs := c.docs
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return &fakeIterator{col: c, docs: docs}, nil
}

type fakeDocument struct {
	id             string
	data           map[string]interface{}
	subcollections []repository.CollectionRef
	collectionsErr error
}

func (d *fakeDocument) ID() string { return d.id }

func (d *fakeDocument) Data() map[string]interface{} { return d.data }

func (d *fakeDocument) Collections(ctx context.Context) ([]repository.CollectionRef, error) {
	if d.collectionsErr != nil {
		return nil, d.collectionsErr
	}
	return d.subcollections, nil
}

type fakeIterator struct {
	col    *fakeCollection
	docs   []*fakeDocument
	pos    int
	closed bool
}

func (it *fakeIterator) Next(ctx context.Context) (repository.DocumentSnapshot, error) {
	it.col.pulls++
	if it.col.streamErr != nil && it.pos >= it.col.streamErrAfter {
		return nil, it.col.streamErr
	}
	if it.pos >= len(it.docs) {
		return nil, repository.ErrIteratorDone
	}
	doc := it.docs[it.pos]
	it.pos++
	return doc, nil
}

func (it *fakeIterator) Close(ctx context.Context) error {
	it.closed = true
	return nil
}
