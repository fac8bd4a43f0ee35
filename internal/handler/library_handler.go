package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/service"
)

// LibraryHandler handles resource and note requests
type LibraryHandler struct {
	libraryService *service.LibraryService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryService *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

// GetResources returns all resources
// GET /api/resources
func (h *LibraryHandler) GetResources(c *gin.Context) {
	resources, err := h.libraryService.GetResources(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve resources")
		return
	}

	c.JSON(http.StatusOK, resources)
}

// CreateResource adds a resource
// POST /api/resources
func (h *LibraryHandler) CreateResource(c *gin.Context) {
	var req domain.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resource, err := h.libraryService.CreateResource(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create resource")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      resource.ID,
		"message": "Resource created",
	})
}

// UpdateResource replaces a resource
// PUT /api/resources/:id
func (h *LibraryHandler) UpdateResource(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "resource")
	if !ok {
		return
	}

	var req domain.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.libraryService.UpdateResource(c.Request.Context(), id, &req); err != nil {
		respondError(c, err, "Failed to update resource")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource updated"})
}

// DeleteResource removes a resource
// DELETE /api/resources/:id
func (h *LibraryHandler) DeleteResource(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "resource")
	if !ok {
		return
	}

	if err := h.libraryService.DeleteResource(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete resource")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}

// ToggleFavorite flips the favorite flag of a resource
// PATCH /api/resources/:id/favorite
func (h *LibraryHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "resource")
	if !ok {
		return
	}

	favorite, err := h.libraryService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to toggle favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Favorite toggled",
		"is_favorite": favorite,
	})
}

// GetNotes returns all notes
// GET /api/notes
func (h *LibraryHandler) GetNotes(c *gin.Context) {
	notes, err := h.libraryService.GetNotes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve notes")
		return
	}

	c.JSON(http.StatusOK, notes)
}

// CreateNote adds a note
// POST /api/notes
func (h *LibraryHandler) CreateNote(c *gin.Context) {
	var req domain.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	note, err := h.libraryService.CreateNote(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create note")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      note.ID,
		"message": "Note created",
	})
}

// UpdateNote replaces a note
// PUT /api/notes/:id
func (h *LibraryHandler) UpdateNote(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "note")
	if !ok {
		return
	}

	var req domain.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.libraryService.UpdateNote(c.Request.Context(), id, &req); err != nil {
		respondError(c, err, "Failed to update note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note updated"})
}

// DeleteNote removes a note
// DELETE /api/notes/:id
func (h *LibraryHandler) DeleteNote(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "note")
	if !ok {
		return
	}

	if err := h.libraryService.DeleteNote(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
