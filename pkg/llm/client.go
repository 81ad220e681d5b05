package llm

import "time"

// EnrichInput carries one ingested article plus the catalog topics the
// model is allowed to pick from.
type EnrichInput struct {
	Title   string
	Summary string
	Content string
	Topics  []string
}

type Person struct {
	WikidataID  string `json:"wikidata_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

type EnrichResult struct {
	NeutralSummary string
	SentimentScore int
	Topics         []string
	People         []Person
	PromptVersion  string
	ModelUsed      string
}

type Enricher interface {
	Enrich(input EnrichInput) (*EnrichResult, error)
}

// DigestInput is one enriched article handed to the digest writer.
type DigestInput struct {
	ID          int64
	Title       string
	Summary     string
	Source      string
	PublishedAt time.Time
	Topics      []string
}

type DigestResult struct {
	Paragraph string
	Bullets   []string
	ModelUsed string
}

type Story struct {
	Headline  string   `json:"headline"`
	Summary   string   `json:"summary"`
	Angles    []string `json:"angles"`
	Topics    []string `json:"topics"`
	Sources   []string `json:"sources"`
	TimeRange string   `json:"time_range"`
}

type ClusterResult struct {
	Stories   []Story
	ModelUsed string
}

type Digester interface {
	Digest(articles []DigestInput) (*DigestResult, error)
}

type ClusterDigester interface {
	ClusterAndDigest(articles []DigestInput) (*ClusterResult, error)
}
