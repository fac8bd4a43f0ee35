package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsa-study/backend/internal/domain"
)

func TestProgressRepository_UpsertReplacesState(t *testing.T) {
	db := setupTestDB(t)
	problems := NewProblemRepository(db, time.Second)
	repo := NewProgressRepository(db, time.Second)
	ctx := context.Background()

	require.NoError(t, problems.Create(ctx, newProblem("p1")))

	first := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	completedAt := first.Add(time.Minute)
	require.NoError(t, repo.Upsert(ctx, &domain.Progress{
		ProblemID:     "p1",
		UserCode:      strPtr("def solve(): pass"),
		Completed:     true,
		CompletedAt:   &completedAt,
		LastAttempted: first,
	}))

	second := first.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, &domain.Progress{
		ProblemID:     "p1",
		Completed:     false,
		LastAttempted: second,
	}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	progress := all[0]
	assert.Equal(t, "p1", progress.ProblemID)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.UserCode, "omitted fields are cleared, not merged")
	assert.Nil(t, progress.CompletedAt)
	assert.True(t, second.Equal(progress.LastAttempted))
}

func TestProgressRepository_UpsertUnknownProblem(t *testing.T) {
	repo := NewProgressRepository(setupTestDB(t), time.Second)

	err := repo.Upsert(context.Background(), &domain.Progress{
		ProblemID:     "nope",
		LastAttempted: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrProblemNotFound)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProgressRepository_ConcurrentUpsertsKeepOneRow(t *testing.T) {
	db := setupTestDB(t)
	problems := NewProblemRepository(db, 5*time.Second)
	repo := NewProgressRepository(db, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, problems.Create(ctx, newProblem("hot")))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Upsert(ctx, &domain.Progress{
				ProblemID:     "hot",
				UserCode:      strPtr(fmt.Sprintf("attempt %d", i)),
				Completed:     i%2 == 0,
				LastAttempted: time.Now().UTC(),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	progress, err := repo.FindByProblemID(ctx, "hot")
	require.NoError(t, err)
	require.NotNil(t, progress)
	require.NotNil(t, progress.UserCode)
	assert.Contains(t, *progress.UserCode, "attempt ")
}

func TestProgressRepository_FindByProblemIDMissing(t *testing.T) {
	repo := NewProgressRepository(setupTestDB(t), time.Second)

	progress, err := repo.FindByProblemID(context.Background(), "none")
	require.NoError(t, err)
	assert.Nil(t, progress)
}
