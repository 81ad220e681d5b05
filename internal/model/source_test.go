package model

import (
	"errors"
	"testing"
	"time"
)

func TestSourceValidate(t *testing.T) {
	valid := Source{
		Domain:  "example.com",
		Name:    "Example Times",
		Kind:    SourceKindRSS,
		FeedURL: "https://example.com/rss",
	}

	tests := []struct {
		name    string
		mutate  func(*Source)
		wantErr error
	}{
		{"valid rss", func(s *Source) {}, nil},
		{"finnhub needs no feed url", func(s *Source) { s.Kind = SourceKindFinnhub; s.FeedURL = "" }, nil},
		{"newsdata needs no feed url", func(s *Source) { s.Kind = SourceKindNewsData; s.FeedURL = "" }, nil},
		{"missing domain", func(s *Source) { s.Domain = "" }, ErrMissingDomain},
		{"missing name", func(s *Source) { s.Name = "" }, ErrMissingSourceName},
		{"unknown kind", func(s *Source) { s.Kind = "scraper" }, ErrInvalidSourceKind},
		{"rss without feed url", func(s *Source) { s.FeedURL = "" }, ErrMissingFeedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestArticleValidateIngested(t *testing.T) {
	valid := Article{
		URL:          "https://example.com/story",
		Title:        "A headline",
		SourceDomain: "example.com",
		PublishedAt:  time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(*Article)
		wantErr error
	}{
		{"valid", func(a *Article) {}, nil},
		{"missing url", func(a *Article) { a.URL = "" }, ErrMissingURL},
		{"missing title", func(a *Article) { a.Title = "" }, ErrMissingTitle},
		{"missing source", func(a *Article) { a.SourceDomain = "" }, ErrMissingSource},
		{"zero published time", func(a *Article) { a.PublishedAt = time.Time{} }, ErrZeroPublishedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			if err := a.ValidateIngested(); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateIngested() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestContactPointValidate(t *testing.T) {
	tests := []struct {
		name    string
		cp      ContactPoint
		wantErr error
	}{
		{"valid email", ContactPoint{Type: ContactEmail, Value: "tips@example.com"}, nil},
		{"valid with status", ContactPoint{Type: ContactTwitter, Value: "@reporter", Status: ContactStatusVerified}, nil},
		{"unknown type", ContactPoint{Type: "carrier-pigeon", Value: "x"}, ErrInvalidContactType},
		{"missing value", ContactPoint{Type: ContactPhone}, ErrMissingContactValue},
		{"unknown status", ContactPoint{Type: ContactEmail, Value: "a@b.c", Status: "maybe"}, ErrInvalidContactStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cp.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
