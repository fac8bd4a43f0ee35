package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// LessonCompletion records that a lesson has been completed.
// CompletedAt is set on first completion and never changed afterwards.
type LessonCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	LessonID    string    `json:"lesson_id" gorm:"type:varchar(191);not null;uniqueIndex"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (LessonCompletion) TableName() string {
	return "lesson_completion"
}

// LessonCompletionRepository defines the interface for lesson completion data access
type LessonCompletionRepository interface {
	// MarkComplete inserts a completion unless one exists and reports whether it inserted
	MarkComplete(ctx context.Context, completion *LessonCompletion) (bool, error)
	FindByLessonID(ctx context.Context, lessonID string) (*LessonCompletion, error)
	FindAll(ctx context.Context) ([]LessonCompletion, error)
}

// Catalog is the external lesson curriculum: category name to ordered lessons
type Catalog map[string][]Lesson

// Lesson is a catalog entry. Only the fields needed for exercise import are decoded.
type Lesson struct {
	ID         string    `json:"id" validate:"required"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	Exercise   *Exercise `json:"exercise,omitempty"`
}

// Exercise is the practice problem optionally embedded in a lesson
type Exercise struct {
	Title       string            `json:"title,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	Description *string           `json:"description,omitempty"`
	StarterCode *string           `json:"starterCode,omitempty"`
	Solution    *string           `json:"solution,omitempty"`
	TestCases   []json.RawMessage `json:"testCases,omitempty"`
}

// ExerciseProblem builds the problem imported for a lesson's exercise in the given category.
// Title and difficulty fall back to the lesson's own values when the exercise omits them.
// A lesson without an exercise yields ErrNoExercise.
func (l *Lesson) ExerciseProblem(category string) (*Problem, error) {
	if l.Exercise == nil {
		return nil, ErrNoExercise
	}

	title := strings.TrimSpace(l.Exercise.Title)
	if title == "" {
		title = l.Title
	}
	difficulty := strings.TrimSpace(l.Exercise.Difficulty)
	if difficulty == "" {
		difficulty = l.Difficulty
	}

	testCases, err := EncodeTestCases(l.Exercise.TestCases)
	if err != nil {
		return nil, err
	}

	lessonID := l.ID
	return &Problem{
		ID:               ExerciseProblemID(l.ID),
		Title:            title,
		Category:         category,
		Difficulty:       difficulty,
		Description:      l.Exercise.Description,
		IsLessonExercise: true,
		LessonID:         &lessonID,
		StarterCode:      l.Exercise.StarterCode,
		Solution:         l.Exercise.Solution,
		TestCases:        testCases,
	}, nil
}

// ImportResult reports the outcome of an exercise import
type ImportResult struct {
	Imported int `json:"imported"`
}
