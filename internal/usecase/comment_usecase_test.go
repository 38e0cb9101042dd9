package usecase

import (
	"context"
	"testing"

	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/minhtran-ct/collab-view/internal/kafka"
	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordID = models.ObjectID("65a000000000000000000001")

func newCommentTestUsecase(publisher *fakePublisher) CommentUsecase {
	conf := &config.Config{Collab: config.CollabConfig{Collection: "collaborations"}}
	return NewCommentUsecase(conf, publisher)
}

func storeWithRecord() *fakeStore {
	store := newFakeStore("acme")
	store.collabs[recordID] = &models.Collaboration{
		ID:     recordID,
		Key:    "ex-1",
		Sender: "alice@x.com",
	}
	return store
}

// These tests validate the compare-and-swap append, not the original
// unguarded mapping overwrite.
func TestAddCommentCreatesMemberList(t *testing.T) {
	store := storeWithRecord()
	publisher := &fakePublisher{}
	uc := newCommentTestUsecase(publisher)

	err := uc.AddComment(context.Background(), store, recordID, "bob@x.com", "looks good")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"bob@x.com": {"looks good"}}, store.collabs[recordID].Comments)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.PatternCommentAdded, publisher.events[0].Pattern)
}

func TestAddCommentAppendsInOrder(t *testing.T) {
	store := storeWithRecord()
	uc := newCommentTestUsecase(&fakePublisher{})

	require.NoError(t, uc.AddComment(context.Background(), store, recordID, "bob@x.com", "looks good"))
	require.NoError(t, uc.AddComment(context.Background(), store, recordID, "bob@x.com", "also fine"))

	assert.Equal(t, []string{"looks good", "also fine"}, store.collabs[recordID].Comments["bob@x.com"])
}

func TestAddCommentEmptyAfterTrim(t *testing.T) {
	store := storeWithRecord()
	uc := newCommentTestUsecase(&fakePublisher{})

	err := uc.AddComment(context.Background(), store, recordID, "bob@x.com", "   ")
	assert.ErrorIs(t, err, models.ErrEmptyComment)
	assert.Empty(t, store.collabs[recordID].Comments, "record must stay unmodified")
	assert.Zero(t, store.guardedCalls)
}

func TestAddCommentRetriesOnConflict(t *testing.T) {
	store := storeWithRecord()
	store.forceConflict = 1
	uc := newCommentTestUsecase(&fakePublisher{})

	err := uc.AddComment(context.Background(), store, recordID, "bob@x.com", "looks good")
	require.NoError(t, err)
	assert.Equal(t, 2, store.guardedCalls)
	assert.Equal(t, []string{"looks good"}, store.collabs[recordID].Comments["bob@x.com"])
}

func TestAddCommentGivesUpAfterRetryBudget(t *testing.T) {
	store := storeWithRecord()
	store.forceConflict = commentRetries
	uc := newCommentTestUsecase(&fakePublisher{})

	err := uc.AddComment(context.Background(), store, recordID, "bob@x.com", "looks good")
	assert.ErrorIs(t, err, models.ErrCommentConflict)
	assert.Equal(t, commentRetries, store.guardedCalls)
}

func TestAddCommentUnknownRecord(t *testing.T) {
	store := newFakeStore("acme")
	uc := newCommentTestUsecase(&fakePublisher{})

	err := uc.AddComment(context.Background(), store, recordID, "bob@x.com", "hello")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddCommentSucceedsWhenAuditFails(t *testing.T) {
	store := storeWithRecord()
	publisher := &fakePublisher{err: assert.AnError}
	uc := newCommentTestUsecase(publisher)

	err := uc.AddComment(context.Background(), store, recordID, "bob@x.com", "looks good")
	assert.NoError(t, err)
}
