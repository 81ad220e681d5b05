package handler

import (
	"log/slog"
	"net/http"
	"newswire/internal/model"

	"github.com/gin-gonic/gin"
)

type TopicStore interface {
	GetAll() ([]model.Topic, error)
}

type TopicHandler struct {
	repository TopicStore
}

func NewTopicHandler(repository TopicStore) *TopicHandler {
	return &TopicHandler{repository: repository}
}

func (h *TopicHandler) GetTopics(c *gin.Context) {
	topics, err := h.repository.GetAll()
	if err != nil {
		slog.Error("error fetching topics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var res []TopicResponse
	for _, t := range topics {
		res = append(res, TopicResponse{
			ID:          t.ID,
			Name:        t.Name,
			Category:    t.Category,
			Subcategory: t.Subcategory,
		})
	}

	c.JSON(http.StatusOK, res)
}
