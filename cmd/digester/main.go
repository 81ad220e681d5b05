package main

import (
	"log"
	"log/slog"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"newswire/pkg/llm"
	"os"

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

	digestRepo := repository.NewDigestRepository(db.DB)
	articleRepo := repository.NewArticleRepository(db.DB)
	openAIClient := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))

	fromID, err := digestRepo.GetLastToArticleID()
	if err != nil {
		log.Fatalf("error getting last digest article id: %v", err)
	}

	articles, err := digestRepo.GetArticlesSince(fromID)
	if err != nil {
		log.Fatalf("error fetching articles for digest: %v", err)
	}

	if len(articles) == 0 {
		slog.Info("no new articles to digest, exiting")
		return
	}

	slog.Info("digesting articles", "count", len(articles), "from_id", fromID)

	var ids []int64
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	topicMap, err := articleRepo.TopicsByArticleIDs(ids)
	if err != nil {
		log.Fatalf("error fetching article topics: %v", err)
	}

	inputs := make([]llm.DigestInput, len(articles))
	for i, a := range articles {
		inputs[i] = llm.DigestInput{
			ID:          a.ID,
			Title:       a.Title,
			Summary:     a.Summary,
			Source:      a.SourceDomain,
			PublishedAt: a.PublishedAt,
			Topics:      topicMap[a.ID],
		}
	}

	result, err := openAIClient.Digest(inputs)
	if err != nil {
		log.Fatalf("error generating digest: %v", err)
	}

	digest := &model.Digest{
		Paragraph:     result.Paragraph,
		Bullets:       result.Bullets,
		ArticleCount:  len(articles),
		FromArticleID: articles[0].ID,
		ToArticleID:   articles[len(articles)-1].ID,
		ModelUsed:     result.ModelUsed,
	}

	// Ranked stories are best effort. A digest without them is still
	// worth saving.
	var stories []model.DigestStory

	clusters, err := openAIClient.ClusterAndDigest(inputs)
	if err != nil {
		slog.Error("error clustering stories, saving digest without them", "error", err)
	} else {
		for i, s := range clusters.Stories {
			stories = append(stories, model.DigestStory{
				Rank:      i + 1,
				Headline:  s.Headline,
				Summary:   s.Summary,
				Angles:    s.Angles,
				Topics:    s.Topics,
				Sources:   s.Sources,
				TimeRange: s.TimeRange,
			})
		}
	}

	err = digestRepo.Save(digest, stories)
	if err != nil {
		log.Fatalf("error saving digest: %v", err)
	}

	slog.Info("digest saved successfully", "digest_id", digest.ID, "article_count", digest.ArticleCount, "stories", len(stories))
}
