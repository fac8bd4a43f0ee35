package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/infrastructure"
)

// setupTestDB opens a private in-memory database migrated with every model
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(infrastructure.Models()...))
	return db
}

func strPtr(s string) *string { return &s }

func newProblem(id string) *domain.Problem {
	return &domain.Problem{
		ID:         id,
		Title:      "Two Sum",
		Category:   "Arrays",
		Difficulty: "Easy",
		TestCases:  []byte("[]"),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.Same(t, domain.ErrProblemNotFound, translate("op", domain.ErrProblemNotFound))

	err := translate("list problems", errors.New("database is locked"))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.True(t, domain.IsRetryable(err))
	assert.Contains(t, err.Error(), "list problems")
}

func TestStoreConnAppliesTimeout(t *testing.T) {
	s := newStore(nil, 0)
	assert.Equal(t, DefaultQueryTimeout, s.timeout)

	s = newStore(setupTestDB(t), 50*time.Millisecond)
	db, cancel := s.conn(context.Background())
	defer cancel()

	deadline, ok := db.Statement.Context.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
}
