package main

import (
	"log"
	"log/slog"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"newswire/pkg/llm"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	topicRepo := repository.NewTopicRepository(db.DB)

	enricher := newEnricher()
	if enricher == nil {
		slog.Error("no LLM API key configured")
		return
	}

	catalog, err := topicRepo.GetAll()
	if err != nil {
		log.Fatalf("error loading topic catalog: %v", err)
	}

	topicNames := make([]string, len(catalog))
	topicIDs := make(map[string]int64, len(catalog))
	for i, t := range catalog {
		topicNames[i] = t.Name
		topicIDs[t.Name] = t.ID
	}

	if _, ok := topicIDs[model.OtherTopic]; !ok {
		log.Fatalf("topic catalog is missing the %q fallback topic", model.OtherTopic)
	}

	for {
		id, err := db.PopFromQueue(db.EnrichQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		articleID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			slog.Error("invalid article id in queue", "id", id, "error", err)
			continue
		}

		errorCount, err := articleRepo.GetErrorCount(articleID)
		if err != nil {
			slog.Error("error getting error count", "error", err, "article_id", articleID)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("article exceeded max retries, moving to dead letter queue", "article_id", articleID, "error_count", errorCount)
			articleRepo.UpdateStatus(articleID, model.StatusFailed)
			db.PushToQueue(db.DeadLetterKey, id)
			continue
		}

		article, err := articleRepo.GetIngestedByID(articleID)
		if err != nil {
			slog.Error("error getting article from DB", "error", err, "article_id", articleID)
			continue
		}

		if article == nil {
			slog.Warn("article not found in DB", "article_id", articleID)
			continue
		}

		input := llm.EnrichInput{
			Title:   article.Title,
			Summary: article.Summary,
			Content: article.Content,
			Topics:  topicNames,
		}

		result, err := enricher.Enrich(input)
		if err != nil {
			slog.Error("error enriching article", "error", err, "article_id", articleID)

			articleRepo.SaveError(articleID, err.Error(), "llm_error")

			db.PushToQueue(db.EnrichQueueKey, strconv.FormatInt(articleID, 10))

			time.Sleep(5 * time.Second)
			continue
		}

		var ids []int64
		for _, name := range result.Topics {
			topicID, ok := topicIDs[name]
			if !ok {
				slog.Warn("LLM returned unknown topic, falling back to Other", "topic", name, "article_id", articleID)
				topicID = topicIDs[model.OtherTopic]
			}
			ids = appendUnique(ids, topicID)
		}
		if len(ids) == 0 {
			ids = append(ids, topicIDs[model.OtherTopic])
		}

		people := make([]model.Person, len(result.People))
		for i, p := range result.People {
			people[i] = model.Person{
				WikidataID:  p.WikidataID,
				Name:        p.Name,
				Description: p.Description,
				Occupation:  p.Occupation,
			}
		}

		enrichment := model.Enrichment{
			ArticleID:      articleID,
			NeutralSummary: result.NeutralSummary,
			SentimentScore: result.SentimentScore,
			ModelUsed:      result.ModelUsed,
			PromptVersion:  result.PromptVersion,
			TopicIDs:       ids,
			People:         people,
		}

		err = articleRepo.SaveEnrichment(&enrichment)
		if err != nil {
			slog.Error("error saving enrichment", "error", err, "article_id", articleID)
			continue
		}

		slog.Info("article enriched successfully", "article_id", articleID)
	}
}

// newEnricher prefers OpenAI and falls back to Anthropic.
func newEnricher() llm.Enricher {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return llm.NewOpenAIClient(key)
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return llm.NewAnthropicClient(key)
	}
	return nil
}

func appendUnique(ids []int64, id int64) []int64 {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}
