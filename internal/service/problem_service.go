package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/domain"
)

// ProblemService handles problem-related business logic
type ProblemService struct {
	problemRepo domain.ProblemRepository
	tracer      trace.Tracer
	logger      *zap.Logger
	now         func() time.Time
}

// NewProblemService creates a new problem service
func NewProblemService(
	problemRepo domain.ProblemRepository,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ProblemService {
	return &ProblemService{
		problemRepo: problemRepo,
		tracer:      tracer,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateProblem stores a user-supplied problem and returns its id.
// A random UUID is generated when the request carries no id.
func (s *ProblemService) CreateProblem(ctx context.Context, req *domain.CreateProblemRequest) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.CreateProblem")
	defer span.End()

	if err := req.Validate(); err != nil {
		return "", err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.New().String()
	}
	span.SetAttributes(attribute.String("problem.id", id))

	testCases, err := domain.EncodeTestCases(req.TestCases)
	if err != nil {
		return "", err
	}

	problem := &domain.Problem{
		ID:               id,
		Title:            req.Title,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		Description:      req.Description,
		Platform:         req.Platform,
		IsLessonExercise: req.IsLessonExercise,
		LessonID:         req.LessonID,
		StarterCode:      req.StarterCode,
		Solution:         req.Solution,
		TestCases:        testCases,
		TimeComplexity:   req.TimeComplexity,
		SpaceComplexity:  req.SpaceComplexity,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.problemRepo.Create(ctx, problem); err != nil {
		return "", err
	}

	s.logger.Info("Problem created",
		zap.String("problem_id", id),
		zap.String("category", problem.Category),
	)
	return id, nil
}

// GetAllProblems returns all problems joined with their progress, newest first
func (s *ProblemService) GetAllProblems(ctx context.Context) ([]domain.Problem, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetAllProblems")
	defer span.End()

	return s.problemRepo.FindAll(ctx)
}

// GetProblemByID returns a specific problem joined with its progress
func (s *ProblemService) GetProblemByID(ctx context.Context, id string) (*domain.Problem, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetProblemByID")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", id))
	return s.problemRepo.FindByID(ctx, id)
}

// UpdateProblem applies the editable fields present in update
func (s *ProblemService) UpdateProblem(ctx context.Context, id string, update *domain.ProblemUpdate) error {
	ctx, span := s.tracer.Start(ctx, "ProblemService.UpdateProblem")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", id))

	if err := update.Validate(); err != nil {
		return err
	}
	return s.problemRepo.Update(ctx, id, *update)
}

// DeleteProblem removes a problem together with its progress
func (s *ProblemService) DeleteProblem(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "ProblemService.DeleteProblem")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", id))

	if err := s.problemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Problem deleted", zap.String("problem_id", id))
	return nil
}

// GetProblemStats returns statistics about the tracked problems
func (s *ProblemService) GetProblemStats(ctx context.Context) (*domain.ProblemStats, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetProblemStats")
	defer span.End()

	problems, err := s.problemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.ProblemStats{
		Total:        len(problems),
		ByDifficulty: make(map[string]int),
		ByCategory:   make(map[string]int),
	}

	for _, p := range problems {
		stats.ByDifficulty[p.Difficulty]++
		stats.ByCategory[p.Category]++
		if p.IsLessonExercise {
			stats.LessonExercises++
		}
		if p.Progress != nil && p.Progress.Completed {
			stats.Completed++
		}
	}

	return stats, nil
}
