package handler

import (
	"log/slog"
	"net/http"
	"newswire/internal/model"

	"github.com/gin-gonic/gin"
)

type JournalistStore interface {
	List(filter model.JournalistFilter) ([]model.Journalist, error)
	Total(filter model.JournalistFilter) (int, error)
	GetByID(id string) (*model.Journalist, error)
}

type JournalistHandler struct {
	repository JournalistStore
}

func NewJournalistHandler(repository JournalistStore) *JournalistHandler {
	return &JournalistHandler{repository: repository}
}

func (h *JournalistHandler) GetJournalists(c *gin.Context) {
	filter := model.JournalistFilter{
		Topic:  c.Query("topic"),
		Source: c.Query("source"),
		Limit:  getQueryLimit(c),
		Offset: getQueryOffset(c),
	}

	journalists, err := h.repository.List(filter)
	if err != nil {
		slog.Error("error fetching journalists", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.Total(filter)
	if err != nil {
		slog.Error("error counting journalists", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	mode := accessMode(c)

	var journalistRes []JournalistResponse
	for _, j := range journalists {
		journalistRes = append(journalistRes, toJournalistResponse(j, mode))
	}

	c.JSON(http.StatusOK, JournalistsResponse{
		Journalists: journalistRes,
		Total:       total,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
}

func (h *JournalistHandler) GetJournalist(c *gin.Context) {
	id := c.Param("id")

	journalist, err := h.repository.GetByID(id)
	if err != nil {
		slog.Error("error fetching journalist", "error", err, "journalist_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if journalist == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journalist not found"})
		return
	}

	c.JSON(http.StatusOK, toJournalistResponse(*journalist, accessMode(c)))
}
