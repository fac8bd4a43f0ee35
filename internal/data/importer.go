package data

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/infrastructure"
)

// exerciseRecord is the validated shape of a problem derived from a lesson exercise
type exerciseRecord struct {
	ID         string `validate:"required"`
	LessonID   string `validate:"required"`
	Title      string `validate:"required"`
	Category   string `validate:"required"`
	Difficulty string `validate:"required"`
}

// Importer promotes exercises embedded in the lesson catalog to problems.
// Imports are convergent: an exercise whose problem id already exists is skipped,
// so running Import any number of times, concurrently or across restarts,
// leaves the same set of problems.
type Importer struct {
	problemRepo domain.ProblemRepository
	validate    *validator.Validate
	tracer      trace.Tracer
	metrics     *infrastructure.TelemetryMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewImporter creates a new exercise importer
func NewImporter(
	problemRepo domain.ProblemRepository,
	tracer trace.Tracer,
	metrics *infrastructure.TelemetryMetrics,
	logger *zap.Logger,
) *Importer {
	return &Importer{
		problemRepo: problemRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		tracer:      tracer,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Import inserts every catalog exercise that is not yet stored and returns how
// many problems were created. Existing problems are never updated.
func (i *Importer) Import(ctx context.Context, catalog domain.Catalog) (domain.ImportResult, error) {
	ctx, span := i.tracer.Start(ctx, "Importer.Import")
	defer span.End()

	var result domain.ImportResult
	skipped := 0
	importedAt := i.now().UTC()

	for _, category := range sortedCategories(catalog) {
		for _, lesson := range catalog[category] {
			if lesson.Exercise == nil {
				continue
			}

			problem, err := i.exerciseProblem(category, lesson)
			if err != nil {
				i.logger.Warn("Skipping invalid lesson exercise",
					zap.String("category", category),
					zap.String("lesson_id", lesson.ID),
					zap.Error(err),
				)
				skipped++
				continue
			}
			problem.CreatedAt = importedAt

			created, err := i.problemRepo.CreateIfAbsent(ctx, problem)
			if err != nil {
				span.RecordError(err)
				return result, err
			}
			if !created {
				continue
			}

			result.Imported++
			i.logger.Debug("Imported lesson exercise",
				zap.String("problem_id", problem.ID),
				zap.String("title", problem.Title),
			)
		}
	}

	span.SetAttributes(
		attribute.Int("import.imported", result.Imported),
		attribute.Int("import.invalid", skipped),
	)
	if result.Imported > 0 {
		i.metrics.ExercisesImported.Add(ctx, int64(result.Imported),
			metric.WithAttributes(attribute.String("source", "catalog")),
		)
	}

	i.logger.Info("Lesson exercise import finished",
		zap.Int("imported", result.Imported),
		zap.Int("invalid", skipped),
		zap.Int("categories", len(catalog)),
	)
	return result, nil
}

// exerciseProblem derives and validates the problem for a lesson's exercise
func (i *Importer) exerciseProblem(category string, lesson domain.Lesson) (*domain.Problem, error) {
	if err := i.validate.Struct(lesson); err != nil {
		return nil, domain.WrapError(domain.ErrValidation, err.Error())
	}

	problem, err := lesson.ExerciseProblem(category)
	if err != nil {
		return nil, err
	}

	record := exerciseRecord{
		ID:         problem.ID,
		LessonID:   lesson.ID,
		Title:      problem.Title,
		Category:   problem.Category,
		Difficulty: problem.Difficulty,
	}
	if err := i.validate.Struct(record); err != nil {
		return nil, domain.WrapError(domain.ErrValidation, err.Error())
	}
	return problem, nil
}

// sortedCategories returns the catalog keys in a stable order
func sortedCategories(catalog domain.Catalog) []string {
	categories := make([]string, 0, len(catalog))
	for category := range catalog {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
