package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"firestore-export/internal/export/domain/repository"
	"firestore-export/internal/shared/firestore"
	"firestore-export/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage layout: every Firestore-style document lives as one record in
// the documents collection, keyed by its full hierarchical path; the
// collections collection holds one metadata record per collection, with
// parent_path empty for root collections.
const (
	documentsCollection   = "documents"
	collectionsCollection = "collections"
)

// documentIDField is the record field holding the intrinsic document
// identifier; the "__name__" order field maps onto it.
const documentIDField = "document_id"

// StructureSource implements repository.StructureSource over MongoDB.
type StructureSource struct {
	db         *mongo.Database
	projectID  string
	databaseID string
	log        logger.Logger
}

// NewStructureSource creates a read-only view of one project/database pair.
func NewStructureSource(db *mongo.Database, projectID, databaseID string, log logger.Logger) *StructureSource {
	return &StructureSource{
		db:         db,
		projectID:  projectID,
		databaseID: databaseID,
		log:        log.WithComponent("mongodb"),
	}
}

// Collections lists the root collections of the database.
func (s *StructureSource) Collections(ctx context.Context) ([]repository.CollectionRef, error) {
	filter := bson.M{
		"project_id":  s.projectID,
		"database_id": s.databaseID,
		"parent_path": "",
	}

	cursor, err := s.db.Collection(collectionsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list root collections: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []repository.CollectionRef
	for cursor.Next(ctx) {
		var record struct {
			CollectionID string `bson:"collection_id"`
			Path         string `bson:"path"`
		}
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode collection record: %w", err)
		}
		refs = append(refs, &collectionRef{
			source: s,
			id:     record.CollectionID,
			path:   record.Path,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	s.log.Debugf("Listed %d root collection(s) in database '%s'", len(refs), s.databaseID)
	return refs, nil
}

// listSubcollections finds the distinct subcollection names directly under
// a document path by grouping the first path segment below it.
func (s *StructureSource) listSubcollections(ctx context.Context, parentDocPath string) ([]string, error) {
	pipeline := mongo.Pipeline{
		{
			{Key: "$match", Value: bson.D{
				{Key: "project_id", Value: s.projectID},
				{Key: "database_id", Value: s.databaseID},
				{Key: "path", Value: bson.D{{Key: "$regex", Value: "^" + regexp.QuoteMeta(parentDocPath) + "/"}}},
			}},
		},
		{
			{Key: "$addFields", Value: bson.D{
				{Key: "subcollectionPath", Value: bson.D{
					{Key: "$arrayElemAt", Value: bson.A{
						bson.D{{Key: "$split", Value: bson.A{"$path", parentDocPath + "/"}}},
						1,
					}},
				}},
			}},
		},
		{
			{Key: "$addFields", Value: bson.D{
				{Key: "subcollectionId", Value: bson.D{
					{Key: "$arrayElemAt", Value: bson.A{
						bson.D{{Key: "$split", Value: bson.A{"$subcollectionPath", "/"}}},
						0,
					}},
				}},
			}},
		},
		{
			{Key: "$match", Value: bson.D{
				{Key: "subcollectionId", Value: bson.D{{Key: "$ne", Value: ""}}},
			}},
		},
		{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$subcollectionId"},
			}},
		},
		{
			{Key: "$project", Value: bson.D{
				{Key: "subcollectionId", Value: "$_id"},
				{Key: "_id", Value: 0},
			}},
		},
	}

	cursor, err := s.db.Collection(documentsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate subcollections: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var result struct {
			SubcollectionID string `bson:"subcollectionId"`
		}
		if err := cursor.Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode subcollection record: %w", err)
		}
		names = append(names, result.SubcollectionID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	// deterministic traversal order across runs
	sort.Strings(names)
	return names, nil
}

// collectionRef is a handle on one collection, root or nested.
type collectionRef struct {
	source *StructureSource
	id     string
	path   string
}

func (c *collectionRef) ID() string { return c.id }

// Documents streams every document directly inside the collection.
func (c *collectionRef) Documents(ctx context.Context) (repository.DocumentIterator, error) {
	return c.find(ctx, nil)
}

// DocumentsOrderedBy streams at most limit documents sorted descending on
// the order field. Failures the server reports for an unsatisfiable sort
// are classified into the recoverable ordering-unsupported class.
func (c *collectionRef) DocumentsOrderedBy(ctx context.Context, orderField string, limit int) (repository.DocumentIterator, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: sortKeyFor(orderField), Value: -1}}).
		SetLimit(int64(limit)).
		SetAllowDiskUse(false)

	iterator, err := c.find(ctx, opts)
	if err != nil {
		return nil, classifyOrderedQueryError(err, c.id, orderField)
	}
	return iterator, nil
}

func (c *collectionRef) find(ctx context.Context, opts *options.FindOptions) (repository.DocumentIterator, error) {
	filter := bson.M{
		"project_id":  c.source.projectID,
		"database_id": c.source.databaseID,
		// direct children only: one more path segment below the collection
		"path": bson.M{"$regex": "^" + regexp.QuoteMeta(c.path) + "/[^/]+$"},
	}

	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	cursor, err := c.source.db.Collection(documentsCollection).Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	return &documentIterator{source: c.source, cursor: cursor}, nil
}

// sortKeyFor maps an order field to the record field the sort runs on.
func sortKeyFor(orderField string) string {
	if orderField == "" || orderField == "__name__" {
		return documentIDField
	}
	return "fields." + orderField
}

// documentRecord is the stored form of one document.
type documentRecord struct {
	ProjectID    string                 `bson:"project_id"`
	DatabaseID   string                 `bson:"database_id"`
	CollectionID string                 `bson:"collection_id"`
	DocumentID   string                 `bson:"document_id"`
	Path         string                 `bson:"path"`
	Fields       map[string]interface{} `bson:"fields"`
}

// documentSnapshot adapts a stored record to repository.DocumentSnapshot.
type documentSnapshot struct {
	source *StructureSource
	record documentRecord
}

func (d *documentSnapshot) ID() string { return d.record.DocumentID }

func (d *documentSnapshot) Data() map[string]interface{} { return d.record.Fields }

// Collections lists the subcollections attached to this document.
func (d *documentSnapshot) Collections(ctx context.Context) ([]repository.CollectionRef, error) {
	names, err := d.source.listSubcollections(ctx, d.record.Path)
	if err != nil {
		return nil, err
	}

	refs := make([]repository.CollectionRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, &collectionRef{
			source: d.source,
			id:     name,
			path:   firestore.ChildPath(d.record.Path, name),
		})
	}
	return refs, nil
}

// documentIterator wraps a mongo cursor as a lazy snapshot stream.
type documentIterator struct {
	source *StructureSource
	cursor *mongo.Cursor
}

func (it *documentIterator) Next(ctx context.Context) (repository.DocumentSnapshot, error) {
	if it.cursor.Next(ctx) {
		var record documentRecord
		if err := it.cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode document record: %w", err)
		}
		return &documentSnapshot{source: it.source, record: record}, nil
	}
	if err := it.cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return nil, repository.ErrIteratorDone
}

func (it *documentIterator) Close(ctx context.Context) error {
	return it.cursor.Close(ctx)
}
