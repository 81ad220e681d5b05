package main

import (
	"log"
	"log/slog"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"newswire/pkg/sources"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	sourceRepo := repository.NewSourceRepository(db.DB)
	articleRepo := repository.NewArticleRepository(db.DB)

	catalog, err := sourceRepo.ListEnabled()
	if err != nil {
		log.Fatalf("error loading source catalog: %v", err)
	}

	if len(catalog) == 0 {
		slog.Error("no enabled sources in catalog")
		return
	}

	for _, source := range catalog {
		client := clientFor(source)
		if client == nil {
			slog.Warn("skipping source, connector not configured", "domain", source.Domain, "kind", source.Kind)
			continue
		}

		items, err := client.Fetch(50)
		if err != nil {
			slog.Error("error fetching articles", "source", source.Domain, "error", err)
			continue
		}

		var saved, duplicated, errors int

		for _, item := range items {
			article := model.Article{
				ExternalID:   item.ExternalID,
				URL:          item.URL,
				Title:        item.Title,
				Summary:      item.Summary,
				Content:      item.Content,
				SourceDomain: source.Domain,
				Byline:       item.Byline,
				Language:     item.Language,
				Country:      item.Country,
				ImageURL:     item.ImageURL,
				PublishedAt:  item.PublishedAt,
			}

			if article.Language == "" {
				article.Language = source.Language
			}
			if article.Country == "" {
				article.Country = source.Country
			}

			if err := article.ValidateIngested(); err != nil {
				slog.Warn("skipping invalid item", "source", source.Domain, "url", item.URL, "error", err)
				continue
			}

			success, err := articleRepo.SaveIngested(&article, sources.SplitByline(item.Byline))
			if err != nil {
				slog.Error("error saving article", "source", source.Domain, "error", err)
				errors++
				continue
			}

			if !success {
				slog.Info("duplicate article skipped", "source", source.Domain, "url", item.URL)
				duplicated++
				continue
			}

			saved++

			err = db.PushToQueue(db.EnrichQueueKey, strconv.FormatInt(article.ID, 10))
			if err != nil {
				slog.Error("error pushing to Redis queue", "source", source.Domain, "error", err, "article_id", article.ID)
				errors++
			}
		}

		slog.Info("fetch complete", "source", source.Domain, "saved", saved, "duplicated", duplicated, "errors", errors)
	}

	if depth, err := db.QueueLength(db.EnrichQueueKey); err == nil {
		slog.Info("enrich queue depth", "depth", depth)
	}
}

// clientFor picks the connector for a catalog entry. API-backed kinds
// need their key in the environment.
func clientFor(source model.Source) sources.Client {
	switch source.Kind {
	case model.SourceKindRSS:
		return sources.NewRSSClient(source.Domain, source.FeedURL)
	case model.SourceKindFinnhub:
		if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
			return sources.NewFinnhubClient(source.Domain, key)
		}
	case model.SourceKindNewsData:
		if key := os.Getenv("NEWSDATA_API_KEY"); key != "" {
			return sources.NewNewsDataClient(source.Domain, key)
		}
	}
	return nil
}
