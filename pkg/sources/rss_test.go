package sources

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func rssFeed(recent, stale time.Time) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example Wire</title>
<item>
	<title>Fed holds rates steady</title>
	<link>https://example.com/fed-rates</link>
	<guid>https://example.com/fed-rates</guid>
	<description>&lt;p&gt;The central bank left rates &lt;b&gt;unchanged&lt;/b&gt;.&lt;/p&gt;</description>
	<author>jane.doe@example.com (Jane Doe)</author>
	<pubDate>%s</pubDate>
</item>
<item>
	<title>Last month's briefing</title>
	<link>https://example.com/old-briefing</link>
	<pubDate>%s</pubDate>
</item>
</channel>
</rss>`, recent.Format(time.RFC1123Z), stale.Format(time.RFC1123Z))
}

func TestRSSFetch(t *testing.T) {
	recent := time.Now().Add(-2 * time.Hour)
	stale := time.Now().Add(-30 * 24 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed(recent, stale))
	}))
	defer srv.Close()

	client := NewRSSClient("example.com", srv.URL)
	items, err := client.Fetch(10)

	assert.Equal(t, nil, err)
	assert.Equal(t, "example.com", client.Name())
	assert.Equal(t, 1, len(items))

	item := items[0]
	assert.Equal(t, "Fed holds rates steady", item.Title)
	assert.Equal(t, "The central bank left rates unchanged.", item.Summary)
	assert.Equal(t, "https://example.com/fed-rates", item.URL)
	assert.Equal(t, "Jane Doe", item.Byline)
	assert.Equal(t, ExternalID("https://example.com/fed-rates"), item.ExternalID)
	assert.Equal(t, recent.Year(), item.PublishedAt.Year())
}

func TestRSSFetchLimit(t *testing.T) {
	recent := time.Now().Add(-time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>W</title>
<item><title>one</title><link>https://example.com/1</link><pubDate>%[1]s</pubDate></item>
<item><title>two</title><link>https://example.com/2</link><pubDate>%[1]s</pubDate></item>
<item><title>three</title><link>https://example.com/3</link><pubDate>%[1]s</pubDate></item>
</channel></rss>`, recent.Format(time.RFC1123Z))
	}))
	defer srv.Close()

	client := NewRSSClient("example.com", srv.URL)
	items, err := client.Fetch(2)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))
}

func TestRSSFetchBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not xml at all")
	}))
	defer srv.Close()

	client := NewRSSClient("example.com", srv.URL)
	_, err := client.Fetch(10)

	assert.NotEqual(t, nil, err)
}
