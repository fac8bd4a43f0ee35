package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsa-study/backend/internal/data"
	"github.com/dsa-study/backend/internal/service"
)

// maxCatalogBytes caps the size of a catalog posted to the seed endpoint
const maxCatalogBytes = 8 << 20

// LessonHandler handles lesson completion and exercise seeding requests
type LessonHandler struct {
	lessonService *service.LessonService
	importer      *data.Importer
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService *service.LessonService, importer *data.Importer) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		importer:      importer,
	}
}

// MarkComplete marks a lesson as completed
// POST /api/lessons/complete/:id
func (h *LessonHandler) MarkComplete(c *gin.Context) {
	if _, err := h.lessonService.MarkComplete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to mark lesson complete")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lesson marked complete",
	})
}

// GetCompleted returns all completed lessons
// GET /api/lessons/completed
func (h *LessonHandler) GetCompleted(c *gin.Context) {
	lessons, err := h.lessonService.GetCompletedLessons(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve completed lessons")
		return
	}

	c.JSON(http.StatusOK, lessons)
}

// SeedExercises imports the exercises of the catalog sent in the request body
// POST /api/seed-lesson-exercises
func (h *LessonHandler) SeedExercises(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCatalogBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(err)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("Lesson catalog exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		respondBindError(c, err)
		return
	}

	catalog, err := data.DecodeCatalog(raw)
	if err != nil {
		respondError(c, err, "Invalid lesson catalog")
		return
	}

	result, err := h.importer.Import(c.Request.Context(), catalog)
	if err != nil {
		respondError(c, err, "Failed to seed exercises")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Seeded %d exercises", result.Imported),
		"imported": result.Imported,
	})
}
