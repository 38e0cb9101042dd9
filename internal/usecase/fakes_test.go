package usecase

import (
	"context"

	"github.com/minhtran-ct/collab-view/internal/kafka"
	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

type insertedDoc struct {
	collection string
	doc        any
}

// fakeStore is an in-memory mongodb.TenantStore for usecase tests.
type fakeStore struct {
	name        string
	collections []string
	keys        map[string][]string
	docs        map[string]map[string]models.Document
	collabs     map[models.ObjectID]*models.Collaboration

	findResult []models.Collaboration
	findErr    error
	lastFilter bson.M
	lastSort   bson.D
	findCalls  int

	inserted      []insertedDoc
	ensured       []string
	forceConflict int // UpdateFieldGuarded fails this many times first
	guardedCalls  int
}

func newFakeStore(name string) *fakeStore {
	return &fakeStore{
		name:    name,
		keys:    make(map[string][]string),
		docs:    make(map[string]map[string]models.Document),
		collabs: make(map[models.ObjectID]*models.Collaboration),
	}
}

func (s *fakeStore) Name() string { return s.name }

func (s *fakeStore) ListUserCollections(context.Context) ([]string, error) {
	return s.collections, nil
}

func (s *fakeStore) ListKeys(_ context.Context, collection string) ([]string, error) {
	return s.keys[collection], nil
}

func (s *fakeStore) GetByKey(_ context.Context, collection, key string) (*models.Document, error) {
	doc, ok := s.docs[collection][key]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &doc, nil
}

func (s *fakeStore) ListAll(_ context.Context, collection string) ([]models.Document, error) {
	var docs []models.Document
	for _, doc := range s.docs[collection] {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *fakeStore) ListAllWithTotal(ctx context.Context, collection string) (*mongodb.DocumentsWithTotal, error) {
	docs, err := s.ListAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return &mongodb.DocumentsWithTotal{Total: int64(len(docs)), Documents: docs}, nil
}

func (s *fakeStore) FindCollaborations(_ context.Context, _ string, filter bson.M, sort bson.D) ([]models.Collaboration, error) {
	s.findCalls++
	s.lastFilter = filter
	s.lastSort = sort
	return s.findResult, s.findErr
}

func (s *fakeStore) GetCollaboration(_ context.Context, _ string, id models.ObjectID) (*models.Collaboration, error) {
	rec, ok := s.collabs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *rec
	copied.Comments = make(map[string][]string, len(rec.Comments))
	for member, list := range rec.Comments {
		copied.Comments[member] = append([]string(nil), list...)
	}
	return &copied, nil
}

func (s *fakeStore) Insert(_ context.Context, collection string, doc any) (string, error) {
	s.inserted = append(s.inserted, insertedDoc{collection: collection, doc: doc})
	return "000000000000000000000001", nil
}

func (s *fakeStore) EnsureCollection(_ context.Context, name string) error {
	s.ensured = append(s.ensured, name)
	return nil
}

func (s *fakeStore) UpdateField(_ context.Context, _ string, id models.ObjectID, field string, value any) error {
	rec, ok := s.collabs[id]
	if !ok {
		return models.ErrNotFound
	}
	if field == "comments" {
		rec.Comments = value.(map[string][]string)
	}
	return nil
}

func (s *fakeStore) UpdateFieldGuarded(_ context.Context, _ string, id models.ObjectID, field string, value any, _ string, rev int64) error {
	s.guardedCalls++
	if s.forceConflict > 0 {
		s.forceConflict--
		return models.ErrCommentConflict
	}
	rec, ok := s.collabs[id]
	if !ok {
		return models.ErrCommentConflict
	}
	if rec.CommentsRev != rev {
		return models.ErrCommentConflict
	}
	if field == "comments" {
		rec.Comments = value.(map[string][]string)
	}
	rec.CommentsRev++
	return nil
}

// fakeDirectory backs the access gate in tests.
type fakeDirectory struct {
	tenants map[string]bool
	secrets map[string]string // absent key = no Authenticator record
	opened  []string
}

func (d *fakeDirectory) Exists(_ context.Context, tenant string) (bool, error) {
	return d.tenants[tenant], nil
}

func (d *fakeDirectory) Secret(_ context.Context, tenant string) (string, error) {
	secret, ok := d.secrets[tenant]
	if !ok {
		return "", models.ErrNotFound
	}
	return secret, nil
}

func (d *fakeDirectory) Open(tenant string) mongodb.TenantStore {
	d.opened = append(d.opened, tenant)
	return newFakeStore(tenant)
}

type fakePublisher struct {
	events []kafka.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event kafka.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
