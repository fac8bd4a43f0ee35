package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dsa-study/backend/internal/domain"
)

// respondError writes the HTTP status matching err's domain category.
// Storage and unexpected failures are reported with fallback instead of the raw cause.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStorage):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     fallback,
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrProblemNotFound):
		return "Problem not found"
	case errors.Is(err, domain.ErrResourceNotFound):
		return "Resource not found"
	case errors.Is(err, domain.ErrNoteNotFound):
		return "Note not found"
	default:
		return "Not found"
	}
}

// respondBindError reports a request body that could not be decoded or bound
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// parseUintParam reads a numeric path parameter, answering 400 when it is malformed
func parseUintParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + label + " ID",
		})
		return 0, false
	}
	return uint(id), true
}
