package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/service"
)

// ProblemHandler handles problem-related HTTP requests
type ProblemHandler struct {
	problemService *service.ProblemService
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{
		problemService: problemService,
	}
}

// GetProblems returns all problems with their progress
// GET /api/problems
func (h *ProblemHandler) GetProblems(c *gin.Context) {
	problems, err := h.problemService.GetAllProblems(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve problems")
		return
	}

	responses := make([]domain.ProblemResponse, len(problems))
	for i := range problems {
		responses[i] = problems[i].ToResponse()
	}

	c.JSON(http.StatusOK, responses)
}

// GetProblem returns a specific problem by ID
// GET /api/problems/:id
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	problem, err := h.problemService.GetProblemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve problem")
		return
	}

	c.JSON(http.StatusOK, problem.ToResponse())
}

// CreateProblem adds a user problem
// POST /api/problems
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	var req domain.CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.problemService.CreateProblem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create problem")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Problem created",
	})
}

// UpdateProblem edits the mutable fields of a problem
// PUT /api/problems/:id
func (h *ProblemHandler) UpdateProblem(c *gin.Context) {
	var update domain.ProblemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.problemService.UpdateProblem(c.Request.Context(), c.Param("id"), &update); err != nil {
		respondError(c, err, "Failed to update problem")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Problem updated",
	})
}

// DeleteProblem removes a problem and its progress
// DELETE /api/problems/:id
func (h *ProblemHandler) DeleteProblem(c *gin.Context) {
	if err := h.problemService.DeleteProblem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete problem")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Problem deleted",
	})
}

// GetProblemStats returns statistics about the tracked problems
// GET /api/problems/stats
func (h *ProblemHandler) GetProblemStats(c *gin.Context) {
	stats, err := h.problemService.GetProblemStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve problem statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
