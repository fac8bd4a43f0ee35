package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dsa-study/backend/internal/domain"
)

// resourceRepository implements domain.ResourceRepository using GORM
type resourceRepository struct {
	store
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB, queryTimeout time.Duration) domain.ResourceRepository {
	return &resourceRepository{store: newStore(db, queryTimeout)}
}

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translate("create resource", db.Create(resource).Error)
}

// FindAll returns resources, most recently added first
func (r *resourceRepository) FindAll(ctx context.Context) ([]domain.Resource, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var resources []domain.Resource
	if err := db.Order("added_at DESC").Order("id DESC").Find(&resources).Error; err != nil {
		return nil, translate("list resources", err)
	}
	return resources, nil
}

// Update replaces the editable fields, including zero values
func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&domain.Resource{}).
		Where("id = ?", resource.ID).
		Select("resource_name", "resource_type", "resource_link", "data_structure", "is_favorite").
		Updates(resource)
	if result.Error != nil {
		return translate("update resource", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translate("delete resource", db.Where("id = ?", id).Delete(&domain.Resource{}).Error)
}

// ToggleFavorite flips is_favorite in place and reads back the new value
func (r *resourceRepository) ToggleFavorite(ctx context.Context, id uint) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var favorite bool
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Resource{}).
			Where("id = ?", id).
			Update("is_favorite", gorm.Expr("NOT is_favorite"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrResourceNotFound
		}

		var resource domain.Resource
		if err := tx.Select("is_favorite").Where("id = ?", id).First(&resource).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrResourceNotFound
			}
			return err
		}
		favorite = resource.IsFavorite
		return nil
	})
	if err != nil {
		return false, translate("toggle favorite", err)
	}
	return favorite, nil
}
