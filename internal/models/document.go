package models

import (
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// PayloadFieldPrefix marks legacy sub-document fields ("data_1", "data_2", ...)
// that older writers stored directly on the record instead of in the
// payloads list. They are decoded into Payloads when a document is read.
const PayloadFieldPrefix = "data_"

// PayloadField is one named payload embedded in a document: a description
// plus tabular rows sharing column keys.
type PayloadField struct {
	Name        string   `bson:"-" json:"name,omitempty"` // legacy field name, if decoded from one
	Key         string   `bson:"key" json:"key"`
	Description string   `bson:"description" json:"description"`
	Data        []bson.M `bson:"data,omitempty" json:"data,omitempty"`
}

// Document is a record in a tenant collection. Field names are a wire
// contract with existing stored data and must not change.
type Document struct {
	ID          ObjectID       `bson:"_id,omitempty" json:"id,omitempty"`
	Key         string         `bson:"key" json:"key"`
	Description string         `bson:"description" json:"description"`
	Data        []bson.M       `bson:"data,omitempty" json:"data,omitempty"`
	Image       string         `bson:"image,omitempty" json:"image,omitempty"` // base64 at rest
	ImageFormat string         `bson:"image_format,omitempty" json:"image_format,omitempty"`
	Payloads    []PayloadField `bson:"payloads,omitempty" json:"payloads,omitempty"`
}

func (d *Document) UnmarshalBSON(data []byte) error {
	type plain Document
	var p plain
	if err := bson.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Document(p)

	legacy, err := decodeLegacyPayloads(data)
	if err != nil {
		return err
	}
	d.Payloads = append(legacy, d.Payloads...)
	return nil
}

// decodeLegacyPayloads collects prefixed sub-document fields into an
// explicit payload list. The suffix ordering is imposed here so callers
// get the same order on every read regardless of field iteration order.
func decodeLegacyPayloads(data []byte) ([]PayloadField, error) {
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return nil, err
	}

	var fields []PayloadField
	for _, el := range elems {
		name := el.Key()
		if !strings.HasPrefix(name, PayloadFieldPrefix) {
			continue
		}
		doc, ok := el.Value().DocumentOK()
		if !ok {
			continue
		}
		var pf PayloadField
		if err := bson.Unmarshal(doc, &pf); err != nil {
			return nil, err
		}
		pf.Name = name
		fields = append(fields, pf)
	}

	sort.SliceStable(fields, func(i, j int) bool {
		a, aok := payloadSuffix(fields[i].Name)
		b, bok := payloadSuffix(fields[j].Name)
		if aok && bok {
			return a < b
		}
		return fields[i].Name < fields[j].Name
	})
	return fields, nil
}

func payloadSuffix(name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, PayloadFieldPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}
