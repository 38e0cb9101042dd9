package usecase

import (
	"context"
	"testing"

	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBrowseGetDocument(t *testing.T) {
	store := newFakeStore("acme")
	store.docs["reports"] = map[string]models.Document{
		"rep-1": {
			Key:         "rep-1",
			Description: "weekly",
			Data:        []bson.M{{"x": int32(1)}},
		},
	}
	uc := NewBrowseUsecase()

	doc, err := uc.GetDocument(context.Background(), store, "reports", "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "rep-1", doc.Key)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, payload.KindTable, doc.Items[0].Content.Kind)
}

func TestBrowseGetDocumentNotFound(t *testing.T) {
	store := newFakeStore("acme")
	uc := NewBrowseUsecase()

	_, err := uc.GetDocument(context.Background(), store, "reports", "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBrowseListDocuments(t *testing.T) {
	store := newFakeStore("acme")
	store.docs["reports"] = map[string]models.Document{
		"rep-1": {Key: "rep-1", Description: "only text"},
		"rep-2": {Key: "rep-2", Data: []bson.M{{"x": int32(2)}}},
	}
	uc := NewBrowseUsecase()

	listing, err := uc.ListDocuments(context.Background(), store, "reports")
	require.NoError(t, err)
	assert.EqualValues(t, 2, listing.Total)
	assert.Len(t, listing.Documents, 2)
}

func TestBrowseListCollectionsAndKeys(t *testing.T) {
	store := newFakeStore("acme")
	store.collections = []string{"reports", "designs"}
	store.keys["reports"] = []string{"rep-1", "rep-2"}
	uc := NewBrowseUsecase()

	collections, err := uc.ListCollections(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []string{"reports", "designs"}, collections)

	keys, err := uc.ListKeys(context.Background(), store, "reports")
	require.NoError(t, err)
	assert.Equal(t, []string{"rep-1", "rep-2"}, keys)
}
