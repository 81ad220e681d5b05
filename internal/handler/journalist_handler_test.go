package handler

import (
	"encoding/json"
	"net/http"
	"newswire/internal/middleware"
	"newswire/internal/model"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeJournalistStore struct {
	journalists []model.Journalist
	total       int
	journalist  *model.Journalist
	lastFilter  model.JournalistFilter
	err         error
}

func (f *fakeJournalistStore) List(filter model.JournalistFilter) ([]model.Journalist, error) {
	f.lastFilter = filter
	return f.journalists, f.err
}

func (f *fakeJournalistStore) Total(filter model.JournalistFilter) (int, error) {
	return f.total, f.err
}

func (f *fakeJournalistStore) GetByID(id string) (*model.Journalist, error) {
	return f.journalist, f.err
}

func newJournalistRouter(store JournalistStore, auth middleware.PrincipalStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewJournalistHandler(store)
	v1 := r.Group("/v1", middleware.RequireKey(auth))
	v1.GET("/journalists", h.GetJournalists)
	v1.GET("/journalists/:id", h.GetJournalist)
	return r
}

func testJournalist() model.Journalist {
	return model.Journalist{
		ID:              "b9a1c3d0",
		Name:            "Sam Carter",
		Title:           "Markets Reporter",
		TopTopics:       []string{"Markets", "Crypto"},
		AvgMonthlyPosts: 18,
		ContactPoints: []model.ContactPoint{{
			ID:     1,
			Type:   model.ContactEmail,
			Value:  "sam.carter@reuters.com",
			Status: model.ContactStatusVerified,
		}},
	}
}

func TestGetJournalists_ReturnJournalists(t *testing.T) {
	j := testJournalist()
	store := &fakeJournalistStore{journalists: []model.Journalist{j}, total: 1}
	r := newJournalistRouter(store, proAuth())

	w := authedGet(r, "/v1/journalists?topic=Markets")
	assert.Equal(t, http.StatusOK, w.Code)

	var res JournalistsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Sam Carter", res.Journalists[0].Name)
	assert.Equal(t, []string{"Markets", "Crypto"}, res.Journalists[0].TopTopics)
	assert.Equal(t, "Markets", store.lastFilter.Topic)
}

func TestGetJournalists_ContactPointsNeedFullAccess(t *testing.T) {
	j := testJournalist()
	store := &fakeJournalistStore{journalists: []model.Journalist{j}, total: 1}
	r := newJournalistRouter(store, &fakeAuth{mode: model.AccessSnippet, planMax: model.AccessFull})

	w := authedGet(r, "/v1/journalists")

	var res JournalistsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, len(res.Journalists[0].ContactPoints))
}

func TestGetJournalist_FullAccessSeesContactPoints(t *testing.T) {
	j := testJournalist()
	store := &fakeJournalistStore{journalist: &j}
	r := newJournalistRouter(store, &fakeAuth{mode: model.AccessFull, planMax: model.AccessFull})

	w := authedGet(r, "/v1/journalists/b9a1c3d0")
	assert.Equal(t, http.StatusOK, w.Code)

	var res JournalistResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.ContactPoints))
	assert.Equal(t, "sam.carter@reuters.com", res.ContactPoints[0].Value)
	assert.Equal(t, "verified", res.ContactPoints[0].Status)
}

func TestGetJournalist_NotFound(t *testing.T) {
	store := &fakeJournalistStore{}
	r := newJournalistRouter(store, proAuth())

	w := authedGet(r, "/v1/journalists/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
