package handler

import (
	"errors"
	"net/http"

	"museum-map-api/internal/models"
	"museum-map-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MuseumsHandler handles museum listing requests
type MuseumsHandler struct {
	service MuseumSearcher
}

// MuseumSearcher interface for dependency injection
type MuseumSearcher interface {
	SearchMuseums(query string) ([]models.Museum, error)
}

// NewMuseumsHandler creates a new museums handler
func NewMuseumsHandler(svc MuseumSearcher) *MuseumsHandler {
	return &MuseumsHandler{service: svc}
}

// List handles GET /museums requests. An empty q returns the full
// prefecture-sorted list.
func (h *MuseumsHandler) List(c *gin.Context) {
	museums, err := h.service.SearchMuseums(c.Query("q"))
	if err != nil {
		status, body := loadErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(museums),
		"museums": museums,
	})
}

// loadErrorResponse distinguishes "still loading" from "failed to load";
// both are unavailable, neither is an empty result.
func loadErrorResponse(err error) (int, gin.H) {
	switch {
	case errors.Is(err, service.ErrLoading):
		return http.StatusServiceUnavailable, gin.H{"error": "data is still loading"}
	case errors.Is(err, service.ErrLoadFailed):
		return http.StatusServiceUnavailable, gin.H{"error": "failed to load data"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal server error"}
	}
}
