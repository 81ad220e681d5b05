package handler

import (
	"log/slog"
	"net/http"
	"newswire/internal/model"

	"github.com/gin-gonic/gin"
)

type SourceStore interface {
	List(filter model.SourceFilter) ([]model.Source, error)
	Total(filter model.SourceFilter) (int, error)
	GetByDomain(domain string) (*model.Source, error)
}

type SourceHandler struct {
	repository SourceStore
}

func NewSourceHandler(repository SourceStore) *SourceHandler {
	return &SourceHandler{repository: repository}
}

func (h *SourceHandler) GetSources(c *gin.Context) {
	filter := model.SourceFilter{
		Category: c.Query("category"),
		Country:  c.Query("country"),
		Language: c.Query("language"),
		Limit:    getQueryLimit(c),
		Offset:   getQueryOffset(c),
	}

	sources, err := h.repository.List(filter)
	if err != nil {
		slog.Error("error fetching sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.Total(filter)
	if err != nil {
		slog.Error("error counting sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var sourceRes []SourceResponse
	for _, s := range sources {
		sourceRes = append(sourceRes, toSourceResponse(s))
	}

	c.JSON(http.StatusOK, SourcesResponse{
		Sources: sourceRes,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (h *SourceHandler) GetSource(c *gin.Context) {
	domain := c.Param("domain")

	source, err := h.repository.GetByDomain(domain)
	if err != nil {
		slog.Error("error fetching source", "error", err, "domain", domain)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if source == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
		return
	}

	c.JSON(http.StatusOK, toSourceResponse(*source))
}
