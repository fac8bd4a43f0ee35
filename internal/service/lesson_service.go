package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/infrastructure"
)

// LessonService tracks which lessons have been completed
type LessonService struct {
	lessonRepo domain.LessonCompletionRepository
	tracer     trace.Tracer
	metrics    *infrastructure.TelemetryMetrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewLessonService creates a new lesson service
func NewLessonService(
	lessonRepo domain.LessonCompletionRepository,
	tracer trace.Tracer,
	metrics *infrastructure.TelemetryMetrics,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// MarkComplete records the lesson as completed. Repeated calls keep the first
// completion time and report false.
func (s *LessonService) MarkComplete(ctx context.Context, lessonID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "LessonService.MarkComplete")
	defer span.End()

	if strings.TrimSpace(lessonID) == "" {
		return false, domain.NewDomainError(domain.ErrValidation, "lesson id is required")
	}
	span.SetAttributes(attribute.String("lesson.id", lessonID))

	created, err := s.lessonRepo.MarkComplete(ctx, &domain.LessonCompletion{
		LessonID:    lessonID,
		CompletedAt: s.now().UTC(),
	})
	if err != nil {
		return false, err
	}

	if created {
		s.metrics.LessonsCompleted.Add(ctx, 1)
		s.logger.Info("Lesson completed", zap.String("lesson_id", lessonID))
	}
	return created, nil
}

// GetCompletedLessons returns every completed lesson
func (s *LessonService) GetCompletedLessons(ctx context.Context) ([]domain.LessonCompletion, error) {
	ctx, span := s.tracer.Start(ctx, "LessonService.GetCompletedLessons")
	defer span.End()

	return s.lessonRepo.FindAll(ctx)
}
