package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dsa-study/backend/internal/domain"
)

// progressColumns are replaced on every upsert
var progressColumns = []string{"user_code", "completed", "completed_at", "last_attempted"}

// progressRepository implements domain.ProgressRepository using GORM
type progressRepository struct {
	store
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *gorm.DB, queryTimeout time.Duration) domain.ProgressRepository {
	return &progressRepository{store: newStore(db, queryTimeout)}
}

// Upsert writes the full progress record for progress.ProblemID.
// The write is a single INSERT ... ON CONFLICT (problem_id) DO UPDATE, so concurrent
// writers for the same problem converge on one row holding the last write.
func (r *progressRepository) Upsert(ctx context.Context, progress *domain.Progress) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Problem{}).Where("id = ?", progress.ProblemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrProblemNotFound
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "problem_id"}},
			DoUpdates: clause.AssignmentColumns(progressColumns),
		}).Create(progress).Error
	})
	return translate("upsert progress", err)
}

// FindByProblemID returns the progress for a problem, or nil when none was written yet
func (r *progressRepository) FindByProblemID(ctx context.Context, problemID string) (*domain.Progress, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var progress domain.Progress
	result := db.Where("problem_id = ?", problemID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil // Not found is not an error here
		}
		return nil, translate("find progress", result.Error)
	}
	return &progress, nil
}

// FindAll returns every progress record
func (r *progressRepository) FindAll(ctx context.Context) ([]domain.Progress, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var progress []domain.Progress
	if err := db.Order("id ASC").Find(&progress).Error; err != nil {
		return nil, translate("list progress", err)
	}
	return progress, nil
}
