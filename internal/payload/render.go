// Package payload turns the heterogeneous content embedded in a document
// into a uniform sequence of renderable items.
package payload

import (
	"encoding/base64"
	"fmt"

	"github.com/minhtran-ct/collab-view/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type Kind string

const (
	KindTable Kind = "table"
	KindImage Kind = "image"
	KindEmpty Kind = "empty"
)

// Content is the tabular-or-image body of one item. Exactly the fields
// for its kind are set.
type Content struct {
	Kind   Kind     `json:"kind"`
	Rows   []bson.M `json:"rows,omitempty"`
	Image  []byte   `json:"image,omitempty"`
	Format string   `json:"format,omitempty"`
}

// Item is one renderable unit of a document.
type Item struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Content     Content `json:"content"`
}

// Render interprets a document into its items: one table per payload-list
// entry in list order, then the document-level data table or image if
// present. A document with no content at all yields a single empty item so
// key and description still show.
func Render(doc *models.Document) ([]Item, error) {
	items := make([]Item, 0, len(doc.Payloads)+1)
	for _, pf := range doc.Payloads {
		items = append(items, Item{
			Label:       pf.Key,
			Description: pf.Description,
			Content:     Content{Kind: KindTable, Rows: pf.Data},
		})
	}

	switch {
	case len(doc.Data) > 0:
		items = append(items, Item{
			Label:       doc.Key,
			Description: doc.Description,
			Content:     Content{Kind: KindTable, Rows: doc.Data},
		})
	case doc.Image != "":
		img, err := base64.StdEncoding.DecodeString(doc.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: image of %q: %v", models.ErrMalformedPayload, doc.Key, err)
		}
		items = append(items, Item{
			Label:       doc.Key,
			Description: doc.Description,
			Content:     Content{Kind: KindImage, Image: img, Format: doc.ImageFormat},
		})
	case len(items) == 0:
		items = append(items, Item{
			Label:       doc.Key,
			Description: doc.Description,
			Content:     Content{Kind: KindEmpty},
		})
	}

	return items, nil
}
