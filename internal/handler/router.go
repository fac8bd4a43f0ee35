package handler

import "github.com/gin-gonic/gin"

// Handlers groups the API handlers mounted by RegisterRoutes
type Handlers struct {
	Problems *ProblemHandler
	Progress *ProgressHandler
	Lessons  *LessonHandler
	Library  *LibraryHandler
}

// RegisterRoutes mounts the study tracker API on the /api group
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	problems := api.Group("/problems")
	{
		problems.GET("", h.Problems.GetProblems)
		problems.POST("", h.Problems.CreateProblem)
		problems.GET("/stats", h.Problems.GetProblemStats)
		problems.GET("/:id", h.Problems.GetProblem)
		problems.PUT("/:id", h.Problems.UpdateProblem)
		problems.DELETE("/:id", h.Problems.DeleteProblem)
	}

	progress := api.Group("/progress")
	{
		progress.GET("", h.Progress.GetAllProgress)
		progress.POST("/:id", h.Progress.UpdateProgress)
	}

	lessons := api.Group("/lessons")
	{
		lessons.POST("/complete/:id", h.Lessons.MarkComplete)
		lessons.GET("/completed", h.Lessons.GetCompleted)
	}
	api.POST("/seed-lesson-exercises", h.Lessons.SeedExercises)

	resources := api.Group("/resources")
	{
		resources.GET("", h.Library.GetResources)
		resources.POST("", h.Library.CreateResource)
		resources.PUT("/:id", h.Library.UpdateResource)
		resources.DELETE("/:id", h.Library.DeleteResource)
		resources.PATCH("/:id/favorite", h.Library.ToggleFavorite)
	}

	notes := api.Group("/notes")
	{
		notes.GET("", h.Library.GetNotes)
		notes.POST("", h.Library.CreateNote)
		notes.PUT("/:id", h.Library.UpdateNote)
		notes.DELETE("/:id", h.Library.DeleteNote)
	}
}
