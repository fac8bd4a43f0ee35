package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/infrastructure"
)

// ProgressService keeps exactly one progress record per problem
type ProgressService struct {
	progressRepo domain.ProgressRepository
	tracer       trace.Tracer
	metrics      *infrastructure.TelemetryMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo domain.ProgressRepository,
	tracer trace.Tracer,
	metrics *infrastructure.TelemetryMetrics,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		tracer:       tracer,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// UpdateProgress replaces the progress state of a problem with req.
// last_attempted is always the server time of this call; omitted optional
// fields are cleared rather than merged with the previous record.
func (s *ProgressService) UpdateProgress(ctx context.Context, problemID string, req *domain.UpdateProgressRequest) (*domain.Progress, error) {
	ctx, span := s.tracer.Start(ctx, "ProgressService.UpdateProgress")
	defer span.End()

	if strings.TrimSpace(problemID) == "" {
		return nil, domain.NewDomainError(domain.ErrValidation, "problem id is required")
	}

	completed := bool(req.Completed)
	span.SetAttributes(
		attribute.String("problem.id", problemID),
		attribute.Bool("progress.completed", completed),
	)

	progress := &domain.Progress{
		ProblemID:     problemID,
		UserCode:      req.UserCode,
		Completed:     completed,
		CompletedAt:   req.CompletedAt,
		LastAttempted: s.now().UTC(),
	}

	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}

	s.metrics.ProgressUpserts.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("completed", completed)),
	)
	s.logger.Debug("Progress updated",
		zap.String("problem_id", problemID),
		zap.Bool("completed", completed),
	)
	return progress, nil
}

// GetAllProgress returns the raw progress records
func (s *ProgressService) GetAllProgress(ctx context.Context) ([]domain.Progress, error) {
	ctx, span := s.tracer.Start(ctx, "ProgressService.GetAllProgress")
	defer span.End()

	return s.progressRepo.FindAll(ctx)
}
