package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dsa-study/backend/internal/domain"
)

// noteRepository implements domain.NoteRepository using GORM
type noteRepository struct {
	store
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB, queryTimeout time.Duration) domain.NoteRepository {
	return &noteRepository{store: newStore(db, queryTimeout)}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translate("create note", db.Create(note).Error)
}

// FindAll returns notes, newest first
func (r *noteRepository) FindAll(ctx context.Context) ([]domain.Note, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var notes []domain.Note
	if err := db.Order("created_at DESC").Order("id DESC").Find(&notes).Error; err != nil {
		return nil, translate("list notes", err)
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&domain.Note{}).
		Where("id = ?", note.ID).
		Select("note_title", "note_content", "data_structure", "tags").
		Updates(note)
	if result.Error != nil {
		return translate("update note", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return translate("delete note", db.Where("id = ?", id).Delete(&domain.Note{}).Error)
}
