package handler

import (
	"encoding/json"
	"net/http"
	"newswire/internal/middleware"
	"newswire/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeDigestStore struct {
	digests []model.Digest
	total   int
	latest  *model.Digest
	stories []model.DigestStory
	err     error
}

func (f *fakeDigestStore) List(limit, offset int) ([]model.Digest, error) {
	return f.digests, f.err
}

func (f *fakeDigestStore) Total() (int, error) {
	return f.total, f.err
}

func (f *fakeDigestStore) GetLatest() (*model.Digest, error) {
	return f.latest, f.err
}

func (f *fakeDigestStore) StoriesByDigest(digestID int64) ([]model.DigestStory, error) {
	return f.stories, f.err
}

type fakeTopicStore struct {
	topics []model.Topic
	err    error
}

func (f *fakeTopicStore) GetAll() ([]model.Topic, error) {
	return f.topics, f.err
}

func newDigestRouter(store DigestStore, topics TopicStore, auth middleware.PrincipalStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	dh := NewDigestHandler(store)
	th := NewTopicHandler(topics)
	v1 := r.Group("/v1", middleware.RequireKey(auth))
	v1.GET("/digests", dh.GetDigests)
	v1.GET("/digests/latest", dh.GetLatestDigest)
	v1.GET("/topics", th.GetTopics)
	return r
}

func testDigest(id int64) model.Digest {
	return model.Digest{
		ID:            id,
		Paragraph:     "Markets rallied while regulators circled the crypto exchanges.",
		Bullets:       []string{"S&P closes up 1.2%", "SEC opens exchange probe"},
		ArticleCount:  40,
		FromArticleID: 100,
		ToArticleID:   140,
		ModelUsed:     "gpt-4o-mini",
		CreatedAt:     time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetDigests_LatestAndHistory(t *testing.T) {
	store := &fakeDigestStore{
		digests: []model.Digest{testDigest(2), testDigest(1)},
		total:   2,
	}
	r := newDigestRouter(store, &fakeTopicStore{}, proAuth())

	w := authedGet(r, "/v1/digests")
	assert.Equal(t, http.StatusOK, w.Code)

	var res DigestsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, int64(2), res.Latest.ID)
	assert.Equal(t, 1, len(res.History))
	assert.Equal(t, int64(1), res.History[0].ID)
}

func TestGetDigests_Empty(t *testing.T) {
	store := &fakeDigestStore{}
	r := newDigestRouter(store, &fakeTopicStore{}, proAuth())

	w := authedGet(r, "/v1/digests")

	var res DigestsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, len(res.History))
	if res.Latest != nil {
		t.Errorf("expected no latest digest, got %+v", res.Latest)
	}
}

func TestGetLatestDigest_WithStories(t *testing.T) {
	d := testDigest(3)
	store := &fakeDigestStore{
		latest: &d,
		stories: []model.DigestStory{{
			ID: 7, DigestID: 3, Rank: 1,
			Headline: "SEC opens exchange probe",
			Summary:  "Regulators requested trading records from two exchanges.",
			Angles:   []string{"enforcement", "market impact"},
			Topics:   []string{"Crypto"},
			Sources:  []string{"reuters.com", "coindesk.com"},
		}},
	}
	r := newDigestRouter(store, &fakeTopicStore{}, proAuth())

	w := authedGet(r, "/v1/digests/latest")
	assert.Equal(t, http.StatusOK, w.Code)

	var res DigestResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, 1, len(res.Stories))
	assert.Equal(t, "SEC opens exchange probe", res.Stories[0].Headline)
	assert.Equal(t, []string{"reuters.com", "coindesk.com"}, res.Stories[0].Sources)
}

func TestGetLatestDigest_NoneAvailable(t *testing.T) {
	store := &fakeDigestStore{}
	r := newDigestRouter(store, &fakeTopicStore{}, proAuth())

	w := authedGet(r, "/v1/digests/latest")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTopics_ReturnTopics(t *testing.T) {
	topics := &fakeTopicStore{topics: []model.Topic{
		{ID: 1, Name: "Crypto", Category: "finance"},
		{ID: 2, Name: "Markets", Category: "finance"},
	}}
	r := newDigestRouter(&fakeDigestStore{}, topics, proAuth())

	w := authedGet(r, "/v1/topics")
	assert.Equal(t, http.StatusOK, w.Code)

	var res []TopicResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "Crypto", res[0].Name)
}
