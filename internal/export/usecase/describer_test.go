package usecase

import (
	"context"
	"errors"
	"testing"

	"firestore-export/internal/export/domain/model"
	"firestore-export/internal/export/domain/repository"
	apperrors "firestore-export/internal/shared/errors"
	"firestore-export/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriber(limit int) *Describer {
	log := logger.NewLogger()
	return NewDescriber(NewSampler(limit, "", log), log)
}

func TestDescribeCollection_EmptyCollection(t *testing.T) {
	col := &fakeCollection{id: "users"}

	node, err := newDescriber(0).DescribeCollection(context.Background(), col)
	require.NoError(t, err)

	assert.True(t, node.IsEmpty())
	assert.Nil(t, node.Fields)
	assert.Nil(t, node.Subcollections)
}

func TestDescribeCollection_FirstTypeWinsAcrossDocuments(t *testing.T) {
	col := &fakeCollection{id: "events", docs: []*fakeDocument{
		{id: "e1", data: map[string]interface{}{"value": "text"}},
		{id: "e2", data: map[string]interface{}{"value": int64(5), "extra": true}},
	}}

	node, err := newDescriber(0).DescribeCollection(context.Background(), col)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"value": model.TypeString,
		"extra": model.TypeBoolean,
	}, node.Fields)
}

func TestDescribeCollection_VisitsExactlyLimit(t *testing.T) {
	col := &fakeCollection{id: "users", docs: makeDocs(10)}

	node, err := newDescriber(3).DescribeCollection(context.Background(), col)
	require.NoError(t, err)

	assert.NotNil(t, node.Fields)
	assert.Equal(t, 3, col.lastLimit)
	// ordered path served the sample: exactly limit+1 pulls (3 docs + done)
	assert.Equal(t, 4, col.pulls)
}

func TestDescribeCollection_StreamErrorAborts(t *testing.T) {
	boom := errors.New("quota exhausted")
	col := &fakeCollection{
		id:             "users",
		docs:           makeDocs(5),
		streamErr:      boom,
		streamErrAfter: 2,
	}

	_, err := newDescriber(0).DescribeCollection(context.Background(), col)
	assert.ErrorIs(t, err, boom)
}

func TestDescribeDocument_FieldsAndSubcollections(t *testing.T) {
	doc := &fakeDocument{
		id:   "u1",
		data: map[string]interface{}{"name": "a"},
		subcollections: []repository.CollectionRef{
			&fakeCollection{id: "orders", docs: []*fakeDocument{
				{id: "o1", data: map[string]interface{}{"total": int64(5)}},
			}},
			&fakeCollection{id: "reviews", docs: []*fakeDocument{
				{id: "r1", data: map[string]interface{}{"stars": int64(4)}},
			}},
		},
	}

	node, err := newDescriber(0).DescribeDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"name": model.TypeString}, node.Fields)
	require.Len(t, node.Subcollections, 2)
	assert.Equal(t, map[string]string{"total": model.TypeInteger}, node.Subcollections["orders"].Fields)
	assert.Equal(t, map[string]string{"stars": model.TypeInteger}, node.Subcollections["reviews"].Fields)
}

func TestDescribeDocument_EmptyDocumentKeepsEmptyFieldsMap(t *testing.T) {
	doc := &fakeDocument{id: "u1", data: map[string]interface{}{}}

	node, err := newDescriber(0).DescribeDocument(context.Background(), doc)
	require.NoError(t, err)

	// per-document node carries the empty map; the collection aggregate strips it
	assert.NotNil(t, node.Fields)
	assert.Empty(t, node.Fields)
}

func TestDescribeDocument_SubcollectionListingErrorAborts(t *testing.T) {
	boom := errors.New("permission denied")
	doc := &fakeDocument{id: "u1", data: map[string]interface{}{}, collectionsErr: boom}

	_, err := newDescriber(0).DescribeDocument(context.Background(), doc)
	assert.ErrorIs(t, err, boom)
}

func TestDescribeCollection_FallbackStillBoundsNestedTraversal(t *testing.T) {
	sub := &fakeCollection{id: "orders", docs: makeDocs(6)}
	col := &fakeCollection{
		id:         "users",
		orderedErr: apperrors.NewOrderingError("index required", nil),
		docs: []*fakeDocument{
			{id: "u1", data: map[string]interface{}{"name": "a"}, subcollections: []repository.CollectionRef{sub}},
		},
	}

	node, err := newDescriber(2).DescribeCollection(context.Background(), col)
	require.NoError(t, err)

	require.Contains(t, node.Subcollections, "orders")
	// nested collection obeys the same limit through its own ordered query
	assert.Equal(t, 2, sub.lastLimit)
}
