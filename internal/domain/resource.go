package domain

import (
	"context"
	"time"
)

// Resource is a saved study reference such as an article, video or course
type Resource struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ResourceName  string    `json:"resourceName" gorm:"not null"`
	ResourceType  string    `json:"resourceType" gorm:"not null"`
	ResourceLink  *string   `json:"resourceLink"`
	DataStructure *string   `json:"dataStructure"`
	IsFavorite    bool      `json:"isFavorite" gorm:"not null"`
	AddedAt       time.Time `json:"addedAt" gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (Resource) TableName() string {
	return "resources"
}

// ResourceRepository defines the interface for resource data access
type ResourceRepository interface {
	Create(ctx context.Context, resource *Resource) error
	FindAll(ctx context.Context) ([]Resource, error)
	Update(ctx context.Context, resource *Resource) error
	Delete(ctx context.Context, id uint) error
	// ToggleFavorite flips the favorite flag atomically and returns the new value
	ToggleFavorite(ctx context.Context, id uint) (bool, error)
}

// ResourceRequest is the body of resource create and update calls
type ResourceRequest struct {
	ResourceName  string     `json:"resourceName" binding:"required"`
	ResourceType  string     `json:"resourceType" binding:"required"`
	ResourceLink  *string    `json:"resourceLink"`
	DataStructure *string    `json:"dataStructure"`
	IsFavorite    bool       `json:"isFavorite"`
	AddedAt       *time.Time `json:"addedAt"`
}

// Note is a free-form study note
type Note struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	NoteTitle     string    `json:"noteTitle" gorm:"not null"`
	NoteContent   *string   `json:"noteContent"`
	DataStructure *string   `json:"dataStructure"`
	Tags          *string   `json:"tags"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (Note) TableName() string {
	return "notes"
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	FindAll(ctx context.Context) ([]Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id uint) error
}

// NoteRequest is the body of note create and update calls
type NoteRequest struct {
	NoteTitle     string     `json:"noteTitle" binding:"required"`
	NoteContent   *string    `json:"noteContent"`
	DataStructure *string    `json:"dataStructure"`
	Tags          *string    `json:"tags"`
	CreatedAt     *time.Time `json:"createdAt"`
}
