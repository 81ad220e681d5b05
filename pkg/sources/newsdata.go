package sources

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type NewsDataClient struct {
	domain     string
	apiKey     string
	httpClient *http.Client
}

func NewNewsDataClient(domain, apiKey string) *NewsDataClient {
	return &NewsDataClient{
		domain:     domain,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsDataClient) Name() string {
	return c.domain
}

func (c *NewsDataClient) Fetch(limit int) ([]Item, error) {
	url := fmt.Sprintf(
		"https://newsdata.io/api/1/latest?size=%d&domainurl=%s&apikey=%s",
		limit, c.domain, c.apiKey,
	)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("newsdata fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw newsdataResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsdata decode: %w", err)
	}

	items := make([]Item, 0, len(raw.Results))
	for _, result := range raw.Results {
		publishedAt, err := time.Parse("2006-01-02 15:04:05", result.PubDate)
		if err != nil {
			publishedAt = time.Time{}
		}

		item := Item{
			ExternalID:  result.ArticleID,
			Title:       result.Title,
			Summary:     result.Description,
			Content:     result.Content,
			URL:         result.Link,
			ImageURL:    result.ImageURL,
			Byline:      strings.Join(result.Creator, ", "),
			Language:    result.Language,
			PublishedAt: publishedAt,
		}

		if len(result.Country) > 0 {
			item.Country = result.Country[0]
		}

		items = append(items, item)
	}

	return items, nil
}

type newsdataResponse struct {
	Results []newsdataResult `json:"results"`
}

type newsdataResult struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Link        string   `json:"link"`
	ImageURL    string   `json:"image_url"`
	PubDate     string   `json:"pubDate"`
	Creator     []string `json:"creator"`
	Language    string   `json:"language"`
	Country     []string `json:"country"`
}
