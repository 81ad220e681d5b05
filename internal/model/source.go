package model

import (
	"errors"
	"time"
)

// SourceKind selects the connector used to pull a source.
type SourceKind string

const (
	SourceKindRSS      SourceKind = "rss"
	SourceKindFinnhub  SourceKind = "finnhub"
	SourceKindNewsData SourceKind = "newsdata"
)

var validSourceKinds = map[SourceKind]bool{
	SourceKindRSS:      true,
	SourceKindFinnhub:  true,
	SourceKindNewsData: true,
}

func (k SourceKind) Valid() bool {
	return validSourceKinds[k]
}

var (
	ErrMissingDomain     = errors.New("source domain is required")
	ErrMissingSourceName = errors.New("source name is required")
	ErrInvalidSourceKind = errors.New("unknown source kind")
	ErrMissingFeedURL    = errors.New("feed URL is required for rss sources")
)

// Source is a publication articles are pulled from.
type Source struct {
	Domain          string
	Name            string
	Description     string
	HomepageURL     string
	Kind            SourceKind
	FeedURL         string
	Country         string
	Language        string
	Category        string
	Paywall         bool
	Rank            int
	AvgMonthlyPosts int
	Enabled         bool
	AddedAt         time.Time
	UpdatedAt       time.Time
}

func (s *Source) Validate() error {
	if s.Domain == "" {
		return ErrMissingDomain
	}
	if s.Name == "" {
		return ErrMissingSourceName
	}
	if !s.Kind.Valid() {
		return ErrInvalidSourceKind
	}
	if s.Kind == SourceKindRSS && s.FeedURL == "" {
		return ErrMissingFeedURL
	}
	return nil
}

// SourceFilter narrows source listings.
type SourceFilter struct {
	Category string
	Country  string
	Language string
	Limit    int
	Offset   int
}
