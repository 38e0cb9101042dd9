package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Collaboration describes one data exchange between a sender and a set of
// receiver identities on a given date. "team members" (with the space) and
// "date" (a plain string, compared exactly) are part of the stored wire
// contract.
type Collaboration struct {
	ID          ObjectID            `bson:"_id,omitempty" json:"id,omitempty"`
	Key         string              `bson:"key" json:"key"`
	Description string              `bson:"description" json:"description"`
	Sender      string              `bson:"sender" json:"sender"`
	TeamMembers []string            `bson:"team members" json:"team_members"`
	Date        string              `bson:"date" json:"date"`
	Comments    map[string][]string `bson:"comments,omitempty" json:"comments,omitempty"`
	CommentsRev int64               `bson:"comments_rev,omitempty" json:"-"`
	Payloads    []PayloadField      `bson:"payloads,omitempty" json:"payloads,omitempty"`
}

func (c *Collaboration) UnmarshalBSON(data []byte) error {
	type plain Collaboration
	var p plain
	if err := bson.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Collaboration(p)

	legacy, err := decodeLegacyPayloads(data)
	if err != nil {
		return err
	}
	c.Payloads = append(legacy, c.Payloads...)
	return nil
}

// Doc returns the renderable view of the record.
func (c *Collaboration) Doc() *Document {
	return &Document{
		ID:          c.ID,
		Key:         c.Key,
		Description: c.Description,
		Payloads:    c.Payloads,
	}
}

// SentCriteria filters the sender's own view.
type SentCriteria struct {
	Sender string `json:"sender" validate:"required"`
}

// ReceivedCriteria filters the receiver view. All three values are
// required before a search runs.
type ReceivedCriteria struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Date     string `json:"date"`
}

func (c ReceivedCriteria) Complete() bool {
	return c.Sender != "" && c.Receiver != "" && c.Date != ""
}

// MatchedRecord pairs a collaboration with its 1-based position in the
// result, used for selection in the presentation layer.
type MatchedRecord struct {
	Ordinal int           `json:"ordinal"`
	Record  Collaboration `json:"record"`
}

// MatchResult distinguishes "not yet searched" (incomplete criteria) from
// "searched, zero results".
type MatchResult struct {
	Searched bool            `json:"searched"`
	Matches  []MatchedRecord `json:"matches"`
}
