package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhtran-ct/collab-view/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// TenantStore is a bound handle on one tenant database. Every operation
// may fail with models.ErrStoreUnavailable; callers surface it without
// tearing the session down.
type TenantStore interface {
	Name() string
	ListUserCollections(ctx context.Context) ([]string, error)
	ListKeys(ctx context.Context, collection string) ([]string, error)
	GetByKey(ctx context.Context, collection, key string) (*models.Document, error)
	ListAll(ctx context.Context, collection string) ([]models.Document, error)
	ListAllWithTotal(ctx context.Context, collection string) (*DocumentsWithTotal, error)
	FindCollaborations(ctx context.Context, collection string, filter bson.M, sort bson.D) ([]models.Collaboration, error)
	GetCollaboration(ctx context.Context, collection string, id models.ObjectID) (*models.Collaboration, error)
	Insert(ctx context.Context, collection string, doc any) (string, error)
	EnsureCollection(ctx context.Context, name string) error
	UpdateField(ctx context.Context, collection string, id models.ObjectID, field string, value any) error
	UpdateFieldGuarded(ctx context.Context, collection string, id models.ObjectID, field string, value any, revField string, rev int64) error
}

type DocumentsWithTotal struct {
	Total     int64
	Documents []models.Document
}

type tenantStore struct {
	db *mongo.Database
}

func (s *tenantStore) Name() string {
	return s.db.Name()
}

func (s *tenantStore) ListUserCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, unavailable("list collections", err)
	}

	collections := make([]string, 0, len(names))
	for _, name := range names {
		if name == models.AuthenticatorCollection {
			continue
		}
		collections = append(collections, name)
	}
	return collections, nil
}

// ListKeys projects only the key field; the order is whatever the store
// returns and must not be assumed sorted.
func (s *tenantStore) ListKeys(ctx context.Context, collection string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"key": 1, "_id": 0})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, unavailable("list keys", err)
	}
	defer cursor.Close(ctx)

	var keys []string
	for cursor.Next(ctx) {
		var row struct {
			Key string `bson:"key"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode key row: %w", err)
		}
		keys = append(keys, row.Key)
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable("list keys cursor", err)
	}
	return keys, nil
}

func (s *tenantStore) GetByKey(ctx context.Context, collection, key string) (*models.Document, error) {
	var doc models.Document
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get by key", err)
	}
	return &doc, nil
}

func (s *tenantStore) ListAll(ctx context.Context, collection string) ([]models.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, unavailable("list documents", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable("list documents cursor", err)
	}
	return docs, nil
}

func (s *tenantStore) ListAllWithTotal(ctx context.Context, collection string) (*DocumentsWithTotal, error) {
	group, ctx := errgroup.WithContext(ctx)
	var docs []models.Document
	var total int64

	group.Go(func() error {
		var err error
		docs, err = s.ListAll(ctx, collection)
		return err
	})
	group.Go(func() error {
		var err error
		total, err = s.db.Collection(collection).CountDocuments(ctx, bson.M{})
		if err != nil {
			return unavailable("count documents", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &DocumentsWithTotal{Total: total, Documents: docs}, nil
}

func (s *tenantStore) FindCollaborations(ctx context.Context, collection string, filter bson.M, sort bson.D) ([]models.Collaboration, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("find collaborations", err)
	}
	defer cursor.Close(ctx)

	var records []models.Collaboration
	for cursor.Next(ctx) {
		var rec models.Collaboration
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode collaboration: %w", err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable("find collaborations cursor", err)
	}
	return records, nil
}

func (s *tenantStore) GetCollaboration(ctx context.Context, collection string, id models.ObjectID) (*models.Collaboration, error) {
	var rec models.Collaboration
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get collaboration", err)
	}
	return &rec, nil
}

func (s *tenantStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	result, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", unavailable("insert", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("invalid inserted id: %T %+v", result.InsertedID, result.InsertedID)
	}
	return oid.Hex(), nil
}

// EnsureCollection creates the collection when it is absent, checked by
// name rather than by failure-and-retry.
func (s *tenantStore) EnsureCollection(ctx context.Context, name string) error {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return unavailable("list collections", err)
	}
	if len(names) > 0 {
		return nil
	}
	if err := s.db.CreateCollection(ctx, name); err != nil {
		return unavailable("create collection", err)
	}
	return nil
}

func (s *tenantStore) UpdateField(ctx context.Context, collection string, id models.ObjectID, field string, value any) error {
	result, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return unavailable("update field", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateFieldGuarded writes the field only when the revision counter still
// holds the value the caller read. A zero revision also matches records
// that predate the counter.
func (s *tenantStore) UpdateFieldGuarded(ctx context.Context, collection string, id models.ObjectID, field string, value any, revField string, rev int64) error {
	var revMatch any = rev
	if rev == 0 {
		revMatch = bson.M{"$in": bson.A{int64(0), nil}}
	}

	result, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id, revField: revMatch},
		bson.M{
			"$set": bson.M{field: value},
			"$inc": bson.M{revField: 1},
		},
	)
	if err != nil {
		return unavailable("guarded update", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrCommentConflict
	}
	return nil
}
