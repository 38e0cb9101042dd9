package usecase

import (
	"context"

	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

type CollabUsecase interface {
	FindSent(ctx context.Context, store mongodb.TenantStore, criteria models.SentCriteria) (*models.MatchResult, error)
	FindReceived(ctx context.Context, store mongodb.TenantStore, criteria models.ReceivedCriteria) (*models.MatchResult, error)
}

type collabUsecase struct {
	collection string
}

func NewCollabUsecase(conf *config.Config) CollabUsecase {
	return &collabUsecase{collection: conf.Collab.Collection}
}

// collabSort is a total order (date, key, _id) so ordinals are stable
// across calls instead of following raw cursor order.
var collabSort = bson.D{
	{Key: "date", Value: 1},
	{Key: "key", Value: 1},
	{Key: "_id", Value: 1},
}

func (uc *collabUsecase) FindSent(ctx context.Context, store mongodb.TenantStore, criteria models.SentCriteria) (*models.MatchResult, error) {
	if criteria.Sender == "" {
		return &models.MatchResult{Searched: false}, nil
	}

	records, err := store.FindCollaborations(ctx, uc.collection, bson.M{"sender": criteria.Sender}, collabSort)
	if err != nil {
		return nil, err
	}
	return matchResult(records), nil
}

// FindReceived requires all three criteria; anything less means "not yet
// searched", which callers must keep distinct from an empty result. A
// sender listed in their own team members sees the record in their own
// received view; matching is plain string equality with no self-exclusion.
func (uc *collabUsecase) FindReceived(ctx context.Context, store mongodb.TenantStore, criteria models.ReceivedCriteria) (*models.MatchResult, error) {
	if !criteria.Complete() {
		return &models.MatchResult{Searched: false}, nil
	}

	filter := bson.M{
		"sender":       criteria.Sender,
		"team members": criteria.Receiver,
		"date":         criteria.Date,
	}
	records, err := store.FindCollaborations(ctx, uc.collection, filter, collabSort)
	if err != nil {
		return nil, err
	}
	return matchResult(records), nil
}

func matchResult(records []models.Collaboration) *models.MatchResult {
	matches := make([]models.MatchedRecord, len(records))
	for i, rec := range records {
		matches[i] = models.MatchedRecord{Ordinal: i + 1, Record: rec}
	}
	return &models.MatchResult{Searched: true, Matches: matches}
}
