package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"newswire/internal/middleware"
	"newswire/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

// fakeAuth resolves any non-empty token to a principal with the given
// key and plan access modes.
type fakeAuth struct {
	mode    model.AccessMode
	planMax model.AccessMode
}

func (f *fakeAuth) GetByToken(token string) (*model.APIKey, *model.Organization, *model.BillingPlan, error) {
	if token == "" {
		return nil, nil, nil, nil
	}
	key := &model.APIKey{ID: 1, OrgID: 7, Name: "test", Token: token, AccessMode: f.mode, Enabled: true}
	org := &model.Organization{ID: 7, Name: "Acme Media", Slug: "acme-media", PlanID: 1, CreatedAt: time.Now()}
	plan := &model.BillingPlan{
		ID: 1, Name: "Pro", Slug: "pro",
		RequestLimit: 10000, RateLimit: 10, Burst: 20, MaxAccessMode: f.planMax,
	}
	return key, org, plan, nil
}

type fakeArticleStore struct {
	articles []model.Article
	total    int
	topicMap map[int64][]string
	article  *model.Article
	lastReq  *model.SearchRequest
	err      error
}

func (f *fakeArticleStore) Search(req *model.SearchRequest) ([]model.Article, error) {
	f.lastReq = req
	return f.articles, f.err
}

func (f *fakeArticleStore) SearchTotal(req *model.SearchRequest) (int, error) {
	return f.total, f.err
}

func (f *fakeArticleStore) TopicsByArticleIDs(ids []int64) (map[int64][]string, error) {
	return f.topicMap, f.err
}

func (f *fakeArticleStore) GetByID(id int64) (*model.Article, error) {
	return f.article, f.err
}

func newArticleRouter(store ArticleStore, auth middleware.PrincipalStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(store)
	r.GET("/health", h.GetHealth)
	v1 := r.Group("/v1", middleware.RequireKey(auth))
	v1.GET("/articles", h.GetArticles)
	v1.POST("/articles/search", h.SearchArticles)
	v1.GET("/articles/:id", h.GetArticle)
	return r
}

func authedGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set(middleware.HeaderAPIKey, "nw_test")
	r.ServeHTTP(w, req)
	return w
}

func authedPost(r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderAPIKey, "nw_test")
	r.ServeHTTP(w, req)
	return w
}

func completedArticle(id int64) model.Article {
	return model.Article{
		ID:             id,
		Title:          "Fed holds rates steady",
		URL:            "https://reuters.com/markets/fed",
		SourceDomain:   "reuters.com",
		Summary:        "The central bank left rates unchanged.",
		NeutralSummary: "Rates unchanged.",
		Content:        "Full article body.",
		PublishedAt:    time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		AddedAt:        time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC),
		Status:         model.StatusCompleted,
	}
}

func TestGetArticles_ReturnArticles(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{completedArticle(1)},
		total:    1,
		topicMap: map[int64][]string{1: {"Markets"}},
	}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles?limit=10&offset=0")
	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "Fed holds rates steady", res.Articles[0].Title)
	assert.Equal(t, []string{"Markets"}, res.Articles[0].Topics)
	assert.Equal(t, "The central bank left rates unchanged.", res.Articles[0].Summary)
	assert.Equal(t, "", res.Articles[0].Content)
}

func TestGetArticles_MetadataModeHidesBody(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{completedArticle(1)},
		total:    1,
	}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessMetadata, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles")

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "", res.Articles[0].Summary)
	assert.Equal(t, "", res.Articles[0].NeutralSummary)
	assert.Equal(t, "", res.Articles[0].Content)
}

func TestGetArticles_PlanCapsKeyMode(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{completedArticle(1)},
		total:    1,
	}
	// Key asks for full but the plan tops out at metadata.
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessFull, planMax: model.AccessMetadata})

	w := authedGet(r, "/v1/articles")

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "", res.Articles[0].Summary)
	assert.Equal(t, "", res.Articles[0].Content)
}

func TestGetArticles_FullModeIncludesContent(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{completedArticle(1)},
		total:    1,
	}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessFull, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles")

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Full article body.", res.Articles[0].Content)
}

func TestGetArticles_Unauthorized(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetArticles_DefaultLimit(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles")

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 0, res.Offset)
}

func TestGetArticles_InvalidFromTime(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles?from=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetArticles_QueryFilters(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	authedGet(r, "/v1/articles?source=reuters.com,ft.com&topic=Markets&from=2025-06-01")

	assert.Equal(t, []string{"reuters.com", "ft.com"}, store.lastReq.Sources)
	assert.Equal(t, []string{"Markets"}, store.lastReq.Topics)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), store.lastReq.From)
}

func TestSearchArticles_FilterBody(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{completedArticle(1)},
		total:    1,
	}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	body := `{
		"topics": ["Crypto"],
		"filter": {"or": [{"field": "title", "value": "bitcoin"}, {"field": "source", "value": "coindesk.com"}]}
	}`
	w := authedPost(r, "/v1/articles/search", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Crypto"}, store.lastReq.Topics)
	assert.NotEqual(t, nil, store.lastReq.Filter)
	assert.Equal(t, 10, store.lastReq.Limit)
}

func TestSearchArticles_InvalidClause(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedPost(r, "/v1/articles/search", `{"filter": {"field": "publisher", "value": "x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchArticles_BadJSON(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedPost(r, "/v1/articles/search", `{"topics": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchArticles_DBError(t *testing.T) {
	store := &fakeArticleStore{err: errors.New("DB down")}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedPost(r, "/v1/articles/search", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetArticle_Found(t *testing.T) {
	a := completedArticle(1)
	a.Topics = []string{"Markets"}
	a.Journalists = []string{"Sam Carter"}
	store := &fakeArticleStore{article: &a}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessFull, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles/1")
	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Fed holds rates steady", res.Title)
	assert.Equal(t, "Full article body.", res.Content)
	assert.Equal(t, []string{"Sam Carter"}, res.Journalists)
}

func TestGetArticle_NotFound(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArticle_PendingHidden(t *testing.T) {
	a := completedArticle(1)
	a.Status = model.StatusPending
	store := &fakeArticleStore{article: &a}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArticle_InvalidID(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/articles/aaa")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth_Healthy(t *testing.T) {
	store := &fakeArticleStore{}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}

func TestGetHealth_Unhealthy(t *testing.T) {
	store := &fakeArticleStore{err: errors.New("DB down")}
	r := newArticleRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
