package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/domain"
)

// LibraryService manages study resources and notes
type LibraryService struct {
	resourceRepo domain.ResourceRepository
	noteRepo     domain.NoteRepository
	tracer       trace.Tracer
	logger       *zap.Logger
	now          func() time.Time
}

// NewLibraryService creates a new library service
func NewLibraryService(
	resourceRepo domain.ResourceRepository,
	noteRepo domain.NoteRepository,
	tracer trace.Tracer,
	logger *zap.Logger,
) *LibraryService {
	return &LibraryService{
		resourceRepo: resourceRepo,
		noteRepo:     noteRepo,
		tracer:       tracer,
		logger:       logger,
		now:          time.Now,
	}
}

func validateResource(req *domain.ResourceRequest) error {
	if strings.TrimSpace(req.ResourceName) == "" || strings.TrimSpace(req.ResourceType) == "" {
		return domain.NewDomainError(domain.ErrValidation, "resourceName and resourceType are required")
	}
	return nil
}

// CreateResource stores a resource; addedAt defaults to now
func (s *LibraryService) CreateResource(ctx context.Context, req *domain.ResourceRequest) (*domain.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "LibraryService.CreateResource")
	defer span.End()

	if err := validateResource(req); err != nil {
		return nil, err
	}

	addedAt := s.now().UTC()
	if req.AddedAt != nil {
		addedAt = req.AddedAt.UTC()
	}

	resource := &domain.Resource{
		ResourceName:  req.ResourceName,
		ResourceType:  req.ResourceType,
		ResourceLink:  req.ResourceLink,
		DataStructure: req.DataStructure,
		IsFavorite:    req.IsFavorite,
		AddedAt:       addedAt,
	}
	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("resource.id", int(resource.ID)))
	return resource, nil
}

func (s *LibraryService) GetResources(ctx context.Context) ([]domain.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "LibraryService.GetResources")
	defer span.End()

	return s.resourceRepo.FindAll(ctx)
}

// UpdateResource replaces the editable fields of a resource
func (s *LibraryService) UpdateResource(ctx context.Context, id uint, req *domain.ResourceRequest) error {
	ctx, span := s.tracer.Start(ctx, "LibraryService.UpdateResource")
	defer span.End()

	span.SetAttributes(attribute.Int("resource.id", int(id)))

	if err := validateResource(req); err != nil {
		return err
	}

	return s.resourceRepo.Update(ctx, &domain.Resource{
		ID:            id,
		ResourceName:  req.ResourceName,
		ResourceType:  req.ResourceType,
		ResourceLink:  req.ResourceLink,
		DataStructure: req.DataStructure,
		IsFavorite:    req.IsFavorite,
	})
}

func (s *LibraryService) DeleteResource(ctx context.Context, id uint) error {
	ctx, span := s.tracer.Start(ctx, "LibraryService.DeleteResource")
	defer span.End()

	return s.resourceRepo.Delete(ctx, id)
}

// ToggleFavorite flips the favorite flag and returns the new state
func (s *LibraryService) ToggleFavorite(ctx context.Context, id uint) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "LibraryService.ToggleFavorite")
	defer span.End()

	favorite, err := s.resourceRepo.ToggleFavorite(ctx, id)
	if err != nil {
		return false, err
	}

	s.logger.Debug("Resource favorite toggled",
		zap.Uint("resource_id", id),
		zap.Bool("is_favorite", favorite),
	)
	return favorite, nil
}

func validateNote(req *domain.NoteRequest) error {
	if strings.TrimSpace(req.NoteTitle) == "" {
		return domain.NewDomainError(domain.ErrValidation, "noteTitle is required")
	}
	return nil
}

// CreateNote stores a note; createdAt defaults to now
func (s *LibraryService) CreateNote(ctx context.Context, req *domain.NoteRequest) (*domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "LibraryService.CreateNote")
	defer span.End()

	if err := validateNote(req); err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}

	note := &domain.Note{
		NoteTitle:     req.NoteTitle,
		NoteContent:   req.NoteContent,
		DataStructure: req.DataStructure,
		Tags:          req.Tags,
		CreatedAt:     createdAt,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *LibraryService) GetNotes(ctx context.Context) ([]domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "LibraryService.GetNotes")
	defer span.End()

	return s.noteRepo.FindAll(ctx)
}

// UpdateNote replaces the editable fields of a note
func (s *LibraryService) UpdateNote(ctx context.Context, id uint, req *domain.NoteRequest) error {
	ctx, span := s.tracer.Start(ctx, "LibraryService.UpdateNote")
	defer span.End()

	if err := validateNote(req); err != nil {
		return err
	}

	return s.noteRepo.Update(ctx, &domain.Note{
		ID:            id,
		NoteTitle:     req.NoteTitle,
		NoteContent:   req.NoteContent,
		DataStructure: req.DataStructure,
		Tags:          req.Tags,
	})
}

func (s *LibraryService) DeleteNote(ctx context.Context, id uint) error {
	ctx, span := s.tracer.Start(ctx, "LibraryService.DeleteNote")
	defer span.End()

	return s.noteRepo.Delete(ctx, id)
}
