package model

import (
	"errors"
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var (
	ErrMissingURL      = errors.New("article URL is required")
	ErrMissingTitle    = errors.New("article title is required")
	ErrMissingSource   = errors.New("article source domain is required")
	ErrZeroPublishedAt = errors.New("article published time is required")
)

// Article is the canonical aggregated article. Fetchers create it in
// status pending; the enricher fills the enrichment fields and moves it
// to completed.
type Article struct {
	ID           int64
	ExternalID   string
	URL          string
	Title        string
	Summary      string
	Content      string
	SourceDomain string
	Byline       string
	Language     string
	Country      string
	ImageURL     string
	PublishedAt  time.Time
	AddedAt      time.Time
	UpdatedAt    time.Time
	Status       string

	// Set by the enricher.
	NeutralSummary string
	SentimentScore int
	ModelUsed      string
	PromptVersion  string

	// Loaded from join tables when requested.
	Topics      []string
	People      []Person
	Journalists []string
}

// ValidateIngested checks the fields a connector must provide before an
// article can be stored.
func (a *Article) ValidateIngested() error {
	if a.URL == "" {
		return ErrMissingURL
	}
	if a.Title == "" {
		return ErrMissingTitle
	}
	if a.SourceDomain == "" {
		return ErrMissingSource
	}
	if a.PublishedAt.IsZero() {
		return ErrZeroPublishedAt
	}
	return nil
}

// Enrichment is everything the enricher derived for one article.
type Enrichment struct {
	ArticleID      int64
	NeutralSummary string
	SentimentScore int
	ModelUsed      string
	PromptVersion  string
	TopicIDs       []int64
	People         []Person
}

type ProcessingError struct {
	ID           int64
	ArticleID    int64
	ErrorMessage string
	ErrorType    string
	CreatedAt    time.Time
}
