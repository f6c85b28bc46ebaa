package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Metadata struct {
	Repository      string    `json:"Repository"`
	FilePath        string    `json:"FilePath"`
	OfficialRepo    bool      `json:"OfficialRepository"`
	RepositoryStars int       `json:"RepositoryStars"`
	Committed       time.Time `json:"Committed"`
	Sha             string    `json:"Sha"`
}

// Hit is one manifest returned by the catalog.
type Hit struct {
	ID          string              `json:"Id"`
	Name        string              `json:"Name"`
	NamePartial string              `json:"NamePartial"`
	NameSuffix  string              `json:"NameSuffix"`
	Description string              `json:"Description"`
	Notes       *string             `json:"Notes"`
	Homepage    string              `json:"Homepage"`
	License     string              `json:"License"`
	Version     string              `json:"Version"`
	Score       float64             `json:"@search.score"`
	Highlights  map[string][]string `json:"@search.highlights"`
	Metadata    Metadata            `json:"Metadata"`
}

// Highlighted joins the highlight fragments of field, or returns "" when the
// catalog sent none.
func (h Hit) Highlighted(field string) string {
	return strings.Join(h.Highlights[field], " … ")
}

// Envelope is a page of results in the order the catalog returned them.
type Envelope struct {
	TotalCount int
	Items      []Hit
}

type rawEnvelope struct {
	Count *int   `json:"@odata.count"`
	Value *[]Hit `json:"value"`
}

var errMissingFields = errors.New("response is missing @odata.count or value")

func decodeEnvelope(b []byte) (Envelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(b, &raw); err != nil {
		return Envelope{}, fmt.Errorf("decode search response: %w", err)
	}
	if raw.Count == nil || raw.Value == nil {
		return Envelope{}, errMissingFields
	}
	return Envelope{TotalCount: *raw.Count, Items: *raw.Value}, nil
}
