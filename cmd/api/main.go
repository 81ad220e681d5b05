package main

import (
	"log"
	"log/slog"
	"newswire/db"
	"newswire/internal/handler"
	"newswire/internal/middleware"
	"newswire/internal/repository"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	articleHandler := handler.NewArticleHandler(articleRepo)

	sourceRepo := repository.NewSourceRepository(db.DB)
	sourceHandler := handler.NewSourceHandler(sourceRepo)

	journalistRepo := repository.NewJournalistRepository(db.DB)
	journalistHandler := handler.NewJournalistHandler(journalistRepo)

	topicRepo := repository.NewTopicRepository(db.DB)
	topicHandler := handler.NewTopicHandler(topicRepo)

	digestRepo := repository.NewDigestRepository(db.DB)
	digestHandler := handler.NewDigestHandler(digestRepo)

	accountRepo := repository.NewAccountRepository(db.DB)
	keyRepo := repository.NewKeyRepository(db.DB)
	searchRepo := repository.NewSavedSearchRepository(db.DB)
	accountHandler := handler.NewAccountHandler(accountRepo, keyRepo, searchRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", middleware.HeaderAPIKey},
	}))

	r.GET("/health", articleHandler.GetHealth)
	r.GET("/v1/plans", accountHandler.GetPlans)

	v1 := r.Group("/v1",
		middleware.RequireKey(keyRepo),
		middleware.RateLimit(),
		middleware.DailyQuota(keyRepo),
	)

	v1.GET("/articles", articleHandler.GetArticles)
	v1.POST("/articles/search", articleHandler.SearchArticles)
	v1.GET("/articles/:id", articleHandler.GetArticle)
	v1.GET("/sources", sourceHandler.GetSources)
	v1.GET("/sources/:domain", sourceHandler.GetSource)
	v1.GET("/journalists", journalistHandler.GetJournalists)
	v1.GET("/journalists/:id", journalistHandler.GetJournalist)
	v1.GET("/topics", topicHandler.GetTopics)
	v1.GET("/digests", digestHandler.GetDigests)
	v1.GET("/digests/latest", digestHandler.GetLatestDigest)
	v1.GET("/account", accountHandler.GetAccount)
	v1.GET("/account/usage", accountHandler.GetUsage)
	v1.POST("/account/keys", accountHandler.CreateKey)
	v1.GET("/account/keys", accountHandler.GetKeys)
	v1.DELETE("/account/keys/:id", accountHandler.RevokeKey)
	v1.POST("/account/searches", accountHandler.CreateSavedSearch)
	v1.GET("/account/searches", accountHandler.GetSavedSearches)
	v1.DELETE("/account/searches/:id", accountHandler.DeleteSavedSearch)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
