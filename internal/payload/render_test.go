package payload

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRenderPayloadList(t *testing.T) {
	doc := &models.Document{
		Key:         "report",
		Description: "monthly",
		Payloads: []models.PayloadField{
			{Key: "A", Description: "d", Data: []bson.M{{"x": int32(1)}}},
			{Key: "B", Description: "e", Data: []bson.M{{"x": int32(2)}}},
		},
	}

	items, err := Render(doc)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "A", items[0].Label)
	assert.Equal(t, "d", items[0].Description)
	assert.Equal(t, KindTable, items[0].Content.Kind)
	require.Len(t, items[0].Content.Rows, 1)
	assert.Equal(t, int32(1), items[0].Content.Rows[0]["x"])

	assert.Equal(t, "B", items[1].Label)
	require.Len(t, items[1].Content.Rows, 1)
	assert.Equal(t, int32(2), items[1].Content.Rows[0]["x"])
}

func TestRenderDocumentTable(t *testing.T) {
	doc := &models.Document{
		Key:         "sales",
		Description: "q1 numbers",
		Data:        []bson.M{{"region": "north", "total": int32(40)}},
	}

	items, err := Render(doc)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sales", items[0].Label)
	assert.Equal(t, KindTable, items[0].Content.Kind)
	assert.Equal(t, "north", items[0].Content.Rows[0]["region"])
}

func TestRenderImage(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	doc := &models.Document{
		Key:         "logo",
		Image:       base64.StdEncoding.EncodeToString(raw),
		ImageFormat: "png",
	}

	items, err := Render(doc)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, KindImage, items[0].Content.Kind)
	assert.Equal(t, raw, items[0].Content.Image)
	assert.Equal(t, "png", items[0].Content.Format)
}

func TestRenderCorruptImage(t *testing.T) {
	doc := &models.Document{Key: "logo", Image: "%%% not base64 %%%"}

	_, err := Render(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMalformedPayload))
}

func TestRenderEmptyDocument(t *testing.T) {
	doc := &models.Document{Key: "note", Description: "text only"}

	items, err := Render(doc)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, KindEmpty, items[0].Content.Kind)
	assert.Equal(t, "note", items[0].Label)
	assert.Equal(t, "text only", items[0].Description)
}

func TestRenderPayloadsThenDocumentData(t *testing.T) {
	doc := &models.Document{
		Key:      "mixed",
		Payloads: []models.PayloadField{{Key: "P", Data: []bson.M{{"x": int32(1)}}}},
		Data:     []bson.M{{"y": int32(2)}},
	}

	items, err := Render(doc)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "P", items[0].Label)
	assert.Equal(t, "mixed", items[1].Label)
}
