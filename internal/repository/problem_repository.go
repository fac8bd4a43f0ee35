package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dsa-study/backend/internal/domain"
)

// problemRepository implements domain.ProblemRepository using GORM
type problemRepository struct {
	store
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(db *gorm.DB, queryTimeout time.Duration) domain.ProblemRepository {
	return &problemRepository{store: newStore(db, queryTimeout)}
}

// Create inserts a new problem, failing with domain.ErrProblemExists on a duplicate id
func (r *problemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	created, err := r.CreateIfAbsent(ctx, problem)
	if err != nil {
		return err
	}
	if !created {
		return domain.ErrProblemExists
	}
	return nil
}

// CreateIfAbsent inserts the problem with ON CONFLICT (id) DO NOTHING.
// The primary key decides the race between concurrent writers, not a pre-check.
func (r *problemRepository) CreateIfAbsent(ctx context.Context, problem *domain.Problem) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(problem)
	if result.Error != nil {
		return false, translate("create problem", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindByID finds a problem by its ID with its progress preloaded
func (r *problemRepository) FindByID(ctx context.Context, id string) (*domain.Problem, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var problem domain.Problem
	result := db.Preload("Progress").Where("id = ?", id).First(&problem)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProblemNotFound
		}
		return nil, translate("find problem", result.Error)
	}
	return &problem, nil
}

// FindAll returns all problems, newest first, with their progress preloaded
func (r *problemRepository) FindAll(ctx context.Context) ([]domain.Problem, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var problems []domain.Problem
	result := db.Preload("Progress").
		Order("created_at DESC").
		Order("id ASC").
		Find(&problems)
	if result.Error != nil {
		return nil, translate("list problems", result.Error)
	}
	return problems, nil
}

// Exists reports whether a problem with the id is stored
func (r *problemRepository) Exists(ctx context.Context, id string) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&domain.Problem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate("check problem", err)
	}
	return count > 0, nil
}

// Update applies the editable fields present in update
func (r *problemRepository) Update(ctx context.Context, id string, update domain.ProblemUpdate) error {
	columns, err := update.Columns()
	if err != nil {
		return err
	}

	if len(columns) == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrProblemNotFound
		}
		return nil
	}

	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&domain.Problem{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return translate("update problem", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProblemNotFound
	}
	return nil
}

// Delete removes the problem and its progress in one transaction.
// Deleting an unknown id is not an error.
func (r *problemRepository) Delete(ctx context.Context, id string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ?", id).Delete(&domain.Progress{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Problem{}).Error
	})
	return translate("delete problem", err)
}
