package sources

import (
	"context"
	"strconv"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnhubClient struct {
	domain string
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(domain, apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{domain: domain, client: client}
}

func (c *FinnhubClient) Name() string {
	return c.domain
}

func (c *FinnhubClient) Fetch(limit int) ([]Item, error) {
	res, _, err := c.client.MarketNews(context.Background()).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(res))
	for _, news := range res {
		if len(items) >= limit {
			break
		}

		item := Item{Language: "en"}

		if news.Id != nil {
			item.ExternalID = strconv.FormatInt(*news.Id, 10)
		}

		if news.Headline != nil {
			item.Title = *news.Headline
		}

		if news.Summary != nil {
			item.Summary = *news.Summary
		}

		if news.Url != nil {
			item.URL = *news.Url
		}

		if news.Image != nil {
			item.ImageURL = *news.Image
		}

		if news.Datetime != nil {
			item.PublishedAt = time.Unix(*news.Datetime, 0)
		}

		items = append(items, item)
	}

	return items, nil
}
