package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dsa-study/backend/internal/domain"
)

// DefaultQueryTimeout bounds a storage call when no timeout is configured
const DefaultQueryTimeout = 5 * time.Second

// store is embedded by every GORM repository
type store struct {
	db      *gorm.DB
	timeout time.Duration
}

func newStore(db *gorm.DB, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return store{db: db, timeout: timeout}
}

// conn returns a session bound to ctx with the query deadline applied.
// The cancel func must be called once the session is no longer used.
func (s store) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// translate maps driver failures to domain errors. Domain errors pass through unchanged.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrValidation):
		return err
	default:
		return domain.StorageError(op, err)
	}
}
