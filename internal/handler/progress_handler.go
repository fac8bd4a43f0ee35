package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/service"
)

// ProgressHandler handles progress-related HTTP requests
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// UpdateProgress stores the full progress state of a problem
// POST /api/progress/:id
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	var req domain.UpdateProgressRequest
	// An empty body is a valid full state: no code, not completed
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	if _, err := h.progressService.UpdateProgress(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, err, "Failed to update progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Progress updated",
	})
}

// GetAllProgress returns every progress record
// GET /api/progress
func (h *ProgressHandler) GetAllProgress(c *gin.Context) {
	progress, err := h.progressService.GetAllProgress(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve progress")
		return
	}

	c.JSON(http.StatusOK, progress)
}
