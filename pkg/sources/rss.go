package sources

import (
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// maxItemAge drops feed items older than a week so a newly added feed
// does not backfill its whole archive.
const maxItemAge = 7 * 24 * time.Hour

type RSSClient struct {
	domain  string
	feedURL string
	parser  *gofeed.Parser
}

func NewRSSClient(domain, feedURL string) *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &RSSClient{domain: domain, feedURL: feedURL, parser: parser}
}

func (c *RSSClient) Name() string {
	return c.domain
}

func (c *RSSClient) Fetch(limit int) ([]Item, error) {
	feed, err := c.parser.ParseURL(c.feedURL)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", c.feedURL, err)
	}

	cutoff := time.Now().Add(-maxItemAge)

	items := make([]Item, 0, len(feed.Items))
	for _, raw := range feed.Items {
		if len(items) >= limit {
			break
		}

		var publishedAt time.Time
		if raw.PublishedParsed != nil {
			publishedAt = *raw.PublishedParsed
		} else if raw.UpdatedParsed != nil {
			publishedAt = *raw.UpdatedParsed
		}

		if !publishedAt.IsZero() && publishedAt.Before(cutoff) {
			continue
		}

		ref := raw.GUID
		if ref == "" {
			ref = raw.Link
		}

		item := Item{
			ExternalID:  ExternalID(ref),
			Title:       strings.TrimSpace(raw.Title),
			Summary:     stripHTML(raw.Description),
			Content:     stripHTML(raw.Content),
			URL:         raw.Link,
			Byline:      feedByline(raw),
			PublishedAt: publishedAt,
		}

		if raw.Image != nil {
			item.ImageURL = raw.Image.URL
		} else {
			for _, enc := range raw.Enclosures {
				if strings.HasPrefix(enc.Type, "image/") {
					item.ImageURL = enc.URL
					break
				}
			}
		}

		items = append(items, item)
	}

	return items, nil
}

func feedByline(item *gofeed.Item) string {
	var names []string
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 && item.Author != nil && item.Author.Name != "" {
		names = append(names, item.Author.Name)
	}
	return strings.Join(names, ", ")
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML flattens feed markup into plain text.
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
