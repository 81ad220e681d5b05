package handler

import (
	"log/slog"
	"net/http"
	"newswire/internal/middleware"
	"newswire/internal/model"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type ArticleStore interface {
	Search(req *model.SearchRequest) ([]model.Article, error)
	SearchTotal(req *model.SearchRequest) (int, error)
	TopicsByArticleIDs(ids []int64) (map[int64][]string, error)
	GetByID(id int64) (*model.Article, error)
}

type ArticleHandler struct {
	repository ArticleStore
}

func NewArticleHandler(repository ArticleStore) *ArticleHandler {
	return &ArticleHandler{repository: repository}
}

// GetArticles lists articles filtered by query parameters. The same
// filters are available with boolean combinations through POST /search.
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	req, ok := searchFromQuery(c)
	if !ok {
		return
	}

	h.respondSearch(c, req)
}

// SearchArticles runs the filter body against the article store.
func (h *ArticleHandler) SearchArticles(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	h.respondSearch(c, &req)
}

func (h *ArticleHandler) respondSearch(c *gin.Context, req *model.SearchRequest) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.repository.Search(req)
	if err != nil {
		slog.Error("error searching articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.SearchTotal(req)
	if err != nil {
		slog.Error("error counting articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var ids []int64
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	topicMap, err := h.repository.TopicsByArticleIDs(ids)
	if err != nil {
		slog.Error("error fetching article topics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	mode := accessMode(c)

	var articleRes []ArticleResponse
	for _, a := range articles {
		a.Topics = topicMap[a.ID]
		articleRes = append(articleRes, toArticleResponse(a, mode))
	}

	c.JSON(http.StatusOK, ArticlesResponse{
		Articles: articleRes,
		Total:    total,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")

	articleID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid article id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.repository.GetByID(articleID)
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", articleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if article == nil || article.Status != model.StatusCompleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*article, accessMode(c)))
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	req := &model.SearchRequest{}
	req.Normalize()

	_, err := h.repository.SearchTotal(req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// accessMode resolves how much article body the caller may see: the
// key's mode clamped to its plan's ceiling.
func accessMode(c *gin.Context) model.AccessMode {
	pr := middleware.GetPrincipal(c)
	if pr == nil {
		return model.AccessMetadata
	}
	return pr.Key.AccessMode.AtMost(pr.Plan.MaxAccessMode)
}

// searchFromQuery maps the articles listing query parameters onto a
// search request. Reports false after writing a 400 for a bad time.
func searchFromQuery(c *gin.Context) (*model.SearchRequest, bool) {
	req := &model.SearchRequest{
		SearchQuery: model.SearchQuery{
			Q:           c.Query("q"),
			Title:       c.Query("title"),
			Sources:     queryList(c, "source"),
			Topics:      queryList(c, "topic"),
			Journalists: queryList(c, "journalist"),
			People:      queryList(c, "person"),
			Languages:   queryList(c, "language"),
			Countries:   queryList(c, "country"),
			SortBy:      model.SortOrder(c.DefaultQuery("sortBy", string(model.SortPubDate))),
			Limit:       getQueryLimit(c),
			Offset:      getQueryOffset(c),
		},
	}

	var ok bool
	if req.From, ok = getQueryTime(c, "from"); !ok {
		return nil, false
	}
	if req.To, ok = getQueryTime(c, "to"); !ok {
		return nil, false
	}

	return req, true
}

// queryList gathers a repeatable query parameter, splitting any
// comma-separated values.
func queryList(c *gin.Context, name string) []string {
	var values []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// getQueryTime parses an RFC 3339 timestamp or a plain date. Writes a
// 400 and reports false when the value is malformed.
func getQueryTime(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		slog.Warn("invalid time query parameter", "param", name, "value", raw, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid '" + name + "' time"})
		return time.Time{}, false
	}

	return t, true
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	limit := getQueryInt("limit", model.DefaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", model.DefaultLimit)
		return model.DefaultLimit
	}

	if limit > model.MaxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", model.MaxLimit)
		return model.MaxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
