package handler

import (
	"log/slog"
	"net/http"
	"newswire/internal/model"

	"github.com/gin-gonic/gin"
)

type DigestStore interface {
	List(limit, offset int) ([]model.Digest, error)
	Total() (int, error)
	GetLatest() (*model.Digest, error)
	StoriesByDigest(digestID int64) ([]model.DigestStory, error)
}

type DigestHandler struct {
	repository DigestStore
}

func NewDigestHandler(repository DigestStore) *DigestHandler {
	return &DigestHandler{repository: repository}
}

func (h *DigestHandler) GetDigests(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	digests, err := h.repository.List(limit, offset)
	if err != nil {
		slog.Error("error fetching digests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.Total()
	if err != nil {
		slog.Error("error fetching digest total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := DigestsResponse{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		History: []DigestResponse{},
	}

	if len(digests) > 0 {
		latest := toDigestResponse(digests[0])
		res.Latest = &latest
		for _, d := range digests[1:] {
			res.History = append(res.History, toDigestResponse(d))
		}
	}

	c.JSON(http.StatusOK, res)
}

// GetLatestDigest returns the newest digest with its ranked stories.
func (h *DigestHandler) GetLatestDigest(c *gin.Context) {
	digest, err := h.repository.GetLatest()
	if err != nil {
		slog.Error("error fetching latest digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if digest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No digest available"})
		return
	}

	stories, err := h.repository.StoriesByDigest(digest.ID)
	if err != nil {
		slog.Error("error fetching digest stories", "error", err, "digest_id", digest.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := toDigestResponse(*digest)
	for _, s := range stories {
		res.Stories = append(res.Stories, toStoryResponse(s))
	}

	c.JSON(http.StatusOK, res)
}
