package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matchasource/backend/internal/domain"
	"github.com/matchasource/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		searchService: searchService,
		logger:        logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "matchasource-backend",
		"version": "1.0.0",
	})
}

// Search handles product search requests
func (h *Handler) Search(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "search service not configured",
		})
		return
	}

	var input domain.SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidQuery.Error()})
		case errors.Is(err, domain.ErrCatalogUnavailable):
			h.logger.Error("catalog unavailable", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "product catalog is temporarily unavailable"})
		default:
			h.logger.Error("search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
