package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dsa-study/backend/internal/domain"
)

// lessonCompletionRepository implements domain.LessonCompletionRepository using GORM
type lessonCompletionRepository struct {
	store
}

// NewLessonCompletionRepository creates a new lesson completion repository
func NewLessonCompletionRepository(db *gorm.DB, queryTimeout time.Duration) domain.LessonCompletionRepository {
	return &lessonCompletionRepository{store: newStore(db, queryTimeout)}
}

// MarkComplete inserts the completion with ON CONFLICT (lesson_id) DO NOTHING,
// keeping the first completed_at.
func (r *lessonCompletionRepository) MarkComplete(ctx context.Context, completion *domain.LessonCompletion) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lesson_id"}},
		DoNothing: true,
	}).Create(completion)
	if result.Error != nil {
		return false, translate("mark lesson complete", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindByLessonID returns the completion for a lesson, or nil when it is not completed
func (r *lessonCompletionRepository) FindByLessonID(ctx context.Context, lessonID string) (*domain.LessonCompletion, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var completion domain.LessonCompletion
	result := db.Where("lesson_id = ?", lessonID).First(&completion)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("find lesson completion", result.Error)
	}
	return &completion, nil
}

// FindAll returns all completions in insertion order
func (r *lessonCompletionRepository) FindAll(ctx context.Context) ([]domain.LessonCompletion, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var completions []domain.LessonCompletion
	if err := db.Order("id ASC").Find(&completions).Error; err != nil {
		return nil, translate("list lesson completions", err)
	}
	return completions, nil
}
