package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ExerciseIDSuffix is appended to a lesson id to derive the id of its imported exercise
const ExerciseIDSuffix = "-exercise"

// ExerciseProblemID returns the problem id used for the exercise embedded in a lesson
func ExerciseProblemID(lessonID string) string {
	return lessonID + ExerciseIDSuffix
}

// Problem represents a coding exercise, either imported from a lesson or added by the user
type Problem struct {
	ID               string         `json:"id" gorm:"type:varchar(191);primaryKey"`
	Title            string         `json:"title" gorm:"not null"`
	Category         string         `json:"category" gorm:"not null;index"`
	Difficulty       string         `json:"difficulty" gorm:"type:varchar(32);not null"`
	Description      *string        `json:"description"`
	Platform         *string        `json:"platform"`
	IsLessonExercise bool           `json:"is_lesson_exercise" gorm:"not null"`
	LessonID         *string        `json:"lesson_id" gorm:"type:varchar(191);index"`
	StarterCode      *string        `json:"starter_code"`
	Solution         *string        `json:"solution"`
	TestCases        datatypes.JSON `json:"test_cases"`
	TimeComplexity   *string        `json:"time_complexity"`
	SpaceComplexity  *string        `json:"space_complexity"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null;index"`

	// Relationships
	Progress *Progress `json:"-" gorm:"foreignKey:ProblemID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Problem) TableName() string {
	return "problems"
}

// ProblemRepository defines the interface for problem data access
type ProblemRepository interface {
	// Create inserts a problem and fails with ErrProblemExists when the id is taken
	Create(ctx context.Context, problem *Problem) error
	// CreateIfAbsent inserts a problem unless one with the same id exists.
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, problem *Problem) (bool, error)
	FindByID(ctx context.Context, id string) (*Problem, error)
	FindAll(ctx context.Context) ([]Problem, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, update ProblemUpdate) error
	// Delete removes the problem and its progress in one transaction
	Delete(ctx context.Context, id string) error
}

// CreateProblemRequest represents the data needed to create a problem
type CreateProblemRequest struct {
	ID               string            `json:"id"`
	Title            string            `json:"title" binding:"required"`
	Category         string            `json:"category" binding:"required"`
	Difficulty       string            `json:"difficulty" binding:"required"`
	Description      *string           `json:"description"`
	Platform         *string           `json:"platform"`
	IsLessonExercise bool              `json:"is_lesson_exercise"`
	LessonID         *string           `json:"lesson_id"`
	StarterCode      *string           `json:"starter_code"`
	Solution         *string           `json:"solution"`
	TestCases        []json.RawMessage `json:"test_cases"`
	TimeComplexity   *string           `json:"time_complexity"`
	SpaceComplexity  *string           `json:"space_complexity"`
}

// Validate checks the required fields of a create request
func (r *CreateProblemRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" ||
		strings.TrimSpace(r.Category) == "" ||
		strings.TrimSpace(r.Difficulty) == "" {
		return NewDomainError(ErrValidation, "title, category and difficulty are required")
	}
	return nil
}

// ProblemUpdate holds the editable fields of a problem. Nil fields are left unchanged.
// Identity fields (id, is_lesson_exercise, lesson_id, created_at) are intentionally absent.
type ProblemUpdate struct {
	Title           *string           `json:"title"`
	Category        *string           `json:"category"`
	Difficulty      *string           `json:"difficulty"`
	Description     *string           `json:"description"`
	Platform        *string           `json:"platform"`
	StarterCode     *string           `json:"starter_code"`
	Solution        *string           `json:"solution"`
	TestCases       []json.RawMessage `json:"test_cases"`
	TimeComplexity  *string           `json:"time_complexity"`
	SpaceComplexity *string           `json:"space_complexity"`
}

// Validate rejects updates that would blank a required field
func (u *ProblemUpdate) Validate() error {
	for _, field := range []*string{u.Title, u.Category, u.Difficulty} {
		if field != nil && strings.TrimSpace(*field) == "" {
			return NewDomainError(ErrValidation, "title, category and difficulty cannot be empty")
		}
	}
	return nil
}

// Columns returns the column assignments for the fields present in the update
func (u *ProblemUpdate) Columns() (map[string]interface{}, error) {
	columns := make(map[string]interface{})
	set := func(name string, value *string) {
		if value != nil {
			columns[name] = *value
		}
	}

	set("title", u.Title)
	set("category", u.Category)
	set("difficulty", u.Difficulty)
	set("description", u.Description)
	set("platform", u.Platform)
	set("starter_code", u.StarterCode)
	set("solution", u.Solution)
	set("time_complexity", u.TimeComplexity)
	set("space_complexity", u.SpaceComplexity)

	if u.TestCases != nil {
		encoded, err := EncodeTestCases(u.TestCases)
		if err != nil {
			return nil, err
		}
		columns["test_cases"] = encoded
	}

	return columns, nil
}

// EncodeTestCases serializes opaque test-case records, defaulting to an empty list
func EncodeTestCases(testCases []json.RawMessage) (datatypes.JSON, error) {
	if len(testCases) == 0 {
		return datatypes.JSON("[]"), nil
	}
	encoded, err := json.Marshal(testCases)
	if err != nil {
		return nil, NewDomainError(ErrValidation, "test_cases must be a list of JSON values")
	}
	return datatypes.JSON(encoded), nil
}

// ProblemResponse is the denormalized view of a problem joined with its progress
type ProblemResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	Difficulty       string          `json:"difficulty"`
	Description      *string         `json:"description"`
	Platform         *string         `json:"platform"`
	IsLessonExercise bool            `json:"is_lesson_exercise"`
	LessonID         *string         `json:"lesson_id"`
	StarterCode      *string         `json:"starter_code"`
	Solution         *string         `json:"solution"`
	TestCases        json.RawMessage `json:"test_cases"`
	TimeComplexity   *string         `json:"time_complexity"`
	SpaceComplexity  *string         `json:"space_complexity"`
	CreatedAt        time.Time       `json:"created_at"`

	// Progress fields, null until the first progress write
	Completed     *bool      `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	UserCode      *string    `json:"user_code"`
	LastAttempted *time.Time `json:"last_attempted"`
}

// ToResponse converts a Problem (with its progress preloaded) to a ProblemResponse
func (p *Problem) ToResponse() ProblemResponse {
	testCases := json.RawMessage(p.TestCases)
	if len(testCases) == 0 {
		testCases = json.RawMessage("[]")
	}

	resp := ProblemResponse{
		ID:               p.ID,
		Title:            p.Title,
		Category:         p.Category,
		Difficulty:       p.Difficulty,
		Description:      p.Description,
		Platform:         p.Platform,
		IsLessonExercise: p.IsLessonExercise,
		LessonID:         p.LessonID,
		StarterCode:      p.StarterCode,
		Solution:         p.Solution,
		TestCases:        testCases,
		TimeComplexity:   p.TimeComplexity,
		SpaceComplexity:  p.SpaceComplexity,
		CreatedAt:        p.CreatedAt,
	}

	if p.Progress != nil {
		completed := p.Progress.Completed
		lastAttempted := p.Progress.LastAttempted
		resp.Completed = &completed
		resp.CompletedAt = p.Progress.CompletedAt
		resp.UserCode = p.Progress.UserCode
		resp.LastAttempted = &lastAttempted
	}

	return resp
}

// DecodeTestCases returns the stored test cases as individual records
func (p *Problem) DecodeTestCases() ([]json.RawMessage, error) {
	if len(p.TestCases) == 0 {
		return []json.RawMessage{}, nil
	}
	var testCases []json.RawMessage
	if err := json.Unmarshal(p.TestCases, &testCases); err != nil {
		return nil, err
	}
	return testCases, nil
}

// ProblemStats represents statistics about the tracked problems
type ProblemStats struct {
	Total           int            `json:"total"`
	Completed       int            `json:"completed"`
	LessonExercises int            `json:"lesson_exercises"`
	ByDifficulty    map[string]int `json:"by_difficulty"`
	ByCategory      map[string]int `json:"by_category"`
}
