package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"newswire/internal/middleware"
	"newswire/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeSourceStore struct {
	sources    []model.Source
	total      int
	source     *model.Source
	lastFilter model.SourceFilter
	err        error
}

func (f *fakeSourceStore) List(filter model.SourceFilter) ([]model.Source, error) {
	f.lastFilter = filter
	return f.sources, f.err
}

func (f *fakeSourceStore) Total(filter model.SourceFilter) (int, error) {
	return f.total, f.err
}

func (f *fakeSourceStore) GetByDomain(domain string) (*model.Source, error) {
	return f.source, f.err
}

func newSourceRouter(store SourceStore, auth middleware.PrincipalStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSourceHandler(store)
	v1 := r.Group("/v1", middleware.RequireKey(auth))
	v1.GET("/sources", h.GetSources)
	v1.GET("/sources/:domain", h.GetSource)
	return r
}

func TestGetSources_ReturnSources(t *testing.T) {
	store := &fakeSourceStore{
		sources: []model.Source{{
			Domain:   "reuters.com",
			Name:     "Reuters",
			Kind:     model.SourceKindRSS,
			Country:  "us",
			Language: "en",
			Rank:     98,
			AddedAt:  time.Now(),
		}},
		total: 1,
	}
	r := newSourceRouter(store, proAuth())

	w := authedGet(r, "/v1/sources?country=us&limit=25")
	assert.Equal(t, http.StatusOK, w.Code)

	var res SourcesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "reuters.com", res.Sources[0].Domain)
	assert.Equal(t, 98, res.Sources[0].Rank)

	assert.Equal(t, "us", store.lastFilter.Country)
	assert.Equal(t, 25, store.lastFilter.Limit)
}

func TestGetSources_DBError(t *testing.T) {
	store := &fakeSourceStore{err: errors.New("DB down")}
	r := newSourceRouter(store, proAuth())

	w := authedGet(r, "/v1/sources")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSource_Found(t *testing.T) {
	store := &fakeSourceStore{source: &model.Source{
		Domain:  "ft.com",
		Name:    "Financial Times",
		Kind:    model.SourceKindRSS,
		Paywall: true,
		AddedAt: time.Now(),
	}}
	r := newSourceRouter(store, proAuth())

	w := authedGet(r, "/v1/sources/ft.com")
	assert.Equal(t, http.StatusOK, w.Code)

	var res SourceResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Financial Times", res.Name)
	assert.Equal(t, true, res.Paywall)
}

func TestGetSource_NotFound(t *testing.T) {
	store := &fakeSourceStore{}
	r := newSourceRouter(store, proAuth())

	w := authedGet(r, "/v1/sources/unknown.example")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
