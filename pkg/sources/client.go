package sources

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Item is one fetched article before it is stamped with catalog
// metadata and persisted.
type Item struct {
	ExternalID  string
	Title       string
	Summary     string
	Content     string
	URL         string
	ImageURL    string
	Byline      string
	Language    string
	Country     string
	PublishedAt time.Time
}

// Client pulls recent items from one catalog source.
type Client interface {
	Fetch(limit int) ([]Item, error)
	Name() string
}

// ExternalID derives a stable item identifier from a URL or feed GUID.
func ExternalID(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return fmt.Sprintf("%x", sum)[:16]
}

// SplitByline breaks a raw byline into individual author names.
func SplitByline(byline string) []string {
	s := strings.TrimSpace(byline)
	s = strings.TrimPrefix(s, "By ")
	s = strings.TrimPrefix(s, "by ")
	s = strings.ReplaceAll(s, " and ", ",")
	s = strings.ReplaceAll(s, "&", ",")
	s = strings.ReplaceAll(s, ";", ",")

	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}
