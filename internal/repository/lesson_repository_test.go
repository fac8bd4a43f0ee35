package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsa-study/backend/internal/domain"
)

func TestLessonCompletionRepository_FirstWriteWins(t *testing.T) {
	repo := NewLessonCompletionRepository(setupTestDB(t), time.Second)
	ctx := context.Background()

	first := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	created, err := repo.MarkComplete(ctx, &domain.LessonCompletion{LessonID: "a1", CompletedAt: first})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.MarkComplete(ctx, &domain.LessonCompletion{LessonID: "a1", CompletedAt: first.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.False(t, created)

	completion, err := repo.FindByLessonID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, completion)
	assert.True(t, first.Equal(completion.CompletedAt))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLessonCompletionRepository_FindAllInsertionOrder(t *testing.T) {
	repo := NewLessonCompletionRepository(setupTestDB(t), time.Second)
	ctx := context.Background()

	for _, id := range []string{"b2", "a1", "c3"} {
		_, err := repo.MarkComplete(ctx, &domain.LessonCompletion{LessonID: id, CompletedAt: time.Now().UTC()})
		require.NoError(t, err)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b2", all[0].LessonID)
	assert.Equal(t, "a1", all[1].LessonID)
	assert.Equal(t, "c3", all[2].LessonID)

	missing, err := repo.FindByLessonID(ctx, "zz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
