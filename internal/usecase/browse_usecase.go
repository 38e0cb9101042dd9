package usecase

import (
	"context"
	"fmt"

	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/payload"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
	"github.com/minhtran-ct/collab-view/pkg/util"
)

// RenderedDocument is a document with its payload items interpreted for
// display.
type RenderedDocument struct {
	Key         string         `json:"key"`
	Description string         `json:"description"`
	Items       []payload.Item `json:"items"`
}

// DocumentListing is every document of a collection, rendered.
type DocumentListing struct {
	Total     int64              `json:"total"`
	Documents []RenderedDocument `json:"documents"`
}

type BrowseUsecase interface {
	ListCollections(ctx context.Context, store mongodb.TenantStore) ([]string, error)
	ListKeys(ctx context.Context, store mongodb.TenantStore, collection string) ([]string, error)
	GetDocument(ctx context.Context, store mongodb.TenantStore, collection, key string) (*RenderedDocument, error)
	ListDocuments(ctx context.Context, store mongodb.TenantStore, collection string) (*DocumentListing, error)
}

type browseUsecase struct{}

func NewBrowseUsecase() BrowseUsecase {
	return &browseUsecase{}
}

func (uc *browseUsecase) ListCollections(ctx context.Context, store mongodb.TenantStore) ([]string, error) {
	return store.ListUserCollections(ctx)
}

func (uc *browseUsecase) ListKeys(ctx context.Context, store mongodb.TenantStore, collection string) ([]string, error) {
	return store.ListKeys(ctx, collection)
}

func (uc *browseUsecase) GetDocument(ctx context.Context, store mongodb.TenantStore, collection, key string) (*RenderedDocument, error) {
	doc, err := store.GetByKey(ctx, collection, key)
	if err != nil {
		return nil, err
	}
	return renderDocument(doc)
}

func (uc *browseUsecase) ListDocuments(ctx context.Context, store mongodb.TenantStore, collection string) (*DocumentListing, error) {
	result, err := store.ListAllWithTotal(ctx, collection)
	if err != nil {
		return nil, err
	}

	documents, err := util.ConvertListE(result.Documents, func(doc models.Document) (RenderedDocument, error) {
		rendered, err := renderDocument(&doc)
		if err != nil {
			return RenderedDocument{}, err
		}
		return *rendered, nil
	})
	if err != nil {
		return nil, err
	}

	return &DocumentListing{
		Total:     result.Total,
		Documents: documents,
	}, nil
}

func renderDocument(doc *models.Document) (*RenderedDocument, error) {
	items, err := payload.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render %q: %w", doc.Key, err)
	}
	return &RenderedDocument{
		Key:         doc.Key,
		Description: doc.Description,
		Items:       items,
	}, nil
}
