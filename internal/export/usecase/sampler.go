package usecase

import (
	"context"

	"firestore-export/internal/export/domain/repository"
	apperrors "firestore-export/internal/shared/errors"
	"firestore-export/internal/shared/logger"
)

// DefaultOrderField is the store's intrinsic document identifier, used to
// bias bounded samples toward the most recently created documents.
const DefaultOrderField = "__name__"

// Sampler produces a bounded stream of document snapshots for one
// collection. Limit and order field are explicit values threaded in at
// construction; the sampler keeps no ambient state.
type Sampler struct {
	limit      int
	orderField string
	log        logger.Logger
}

// NewSampler creates a sampler. A limit of zero (or below) means
// unbounded; an empty order field falls back to DefaultOrderField.
func NewSampler(limit int, orderField string, log logger.Logger) *Sampler {
	if orderField == "" {
		orderField = DefaultOrderField
	}
	return &Sampler{
		limit:      limit,
		orderField: orderField,
		log:        log.WithComponent("sampler"),
	}
}

// Limit returns the configured sample limit (0 means unbounded).
func (s *Sampler) Limit() int {
	if s.limit < 0 {
		return 0
	}
	return s.limit
}

// Sample streams documents from the collection. With a limit in effect it
// prefers a descending ordered query on the order field; when the store
// rejects that sort (ordering-unsupported class) it logs a warning and
// falls back to an unordered stream capped at the limit. Every other
// store error propagates to the caller untouched.
func (s *Sampler) Sample(ctx context.Context, collection repository.CollectionRef) (repository.DocumentIterator, error) {
	if s.Limit() == 0 {
		return collection.Documents(ctx)
	}

	iterator, err := collection.DocumentsOrderedBy(ctx, s.orderField, s.limit)
	if err == nil {
		return iterator, nil
	}
	if !apperrors.IsOrderingUnsupported(err) {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"collection":  collection.ID(),
		"order_field": s.orderField,
		"error":       err.Error(),
	}).Warn("Store cannot sort the sample query; falling back to unordered retrieval")

	unordered, err := collection.Documents(ctx)
	if err != nil {
		return nil, err
	}
	return newLimitIterator(unordered, s.limit), nil
}

// limitIterator caps an unordered stream at n documents and stops pulling
// from the source once the cap is reached.
type limitIterator struct {
	inner     repository.DocumentIterator
	remaining int
}

func newLimitIterator(inner repository.DocumentIterator, limit int) *limitIterator {
	return &limitIterator{inner: inner, remaining: limit}
}

func (it *limitIterator) Next(ctx context.Context) (repository.DocumentSnapshot, error) {
	if it.remaining <= 0 {
		return nil, repository.ErrIteratorDone
	}
	snapshot, err := it.inner.Next(ctx)
	if err != nil {
		return nil, err
	}
	it.remaining--
	return snapshot, nil
}

func (it *limitIterator) Close(ctx context.Context) error {
	return it.inner.Close(ctx)
}
