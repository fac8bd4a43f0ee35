package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Progress is the single mutable attempt record for one problem
type Progress struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	ProblemID     string     `json:"problem_id" gorm:"type:varchar(191);not null;uniqueIndex"`
	UserCode      *string    `json:"user_code"`
	Completed     bool       `json:"completed" gorm:"not null"`
	CompletedAt   *time.Time `json:"completed_at"`
	LastAttempted time.Time  `json:"last_attempted" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Progress) TableName() string {
	return "user_progress"
}

// ProgressRepository defines the interface for progress data access
type ProgressRepository interface {
	// Upsert writes the full progress state for progress.ProblemID in a single
	// conditional statement. It fails with ErrProblemNotFound when the problem is unknown.
	Upsert(ctx context.Context, progress *Progress) error
	FindByProblemID(ctx context.Context, problemID string) (*Progress, error)
	FindAll(ctx context.Context) ([]Progress, error)
}

// UpdateProgressRequest is the full progress state sent by the client.
// Omitted fields reset to their zero value.
type UpdateProgressRequest struct {
	UserCode    *string    `json:"user_code"`
	Completed   Flag       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Flag is a boolean that also decodes the 0/1 integers the lessons page sends.
// Any non-zero number is true; null is false.
type Flag bool

// UnmarshalJSON accepts true, false, null or a JSON number
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("completed must be a boolean or 0/1, got %s", data)
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("completed must be a boolean or 0/1, got %s", data)
	}
	*f = v != 0
	return nil
}
