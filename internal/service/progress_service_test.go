package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsa-study/backend/internal/domain"
	"github.com/dsa-study/backend/internal/repository"
)

func TestProgressService_LastAttemptedIsServerTime(t *testing.T) {
	db := setupTestDB(t)
	problems := repository.NewProblemRepository(db, time.Second)
	svc := NewProgressService(repository.NewProgressRepository(db, time.Second), testTracer(), testMetrics(t), testLogger)

	start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(start, time.Minute)
	ctx := context.Background()

	require.NoError(t, problems.Create(ctx, &domain.Problem{
		ID: "p1", Title: "A", Category: "B", Difficulty: "Easy", TestCases: []byte("[]"), CreatedAt: start,
	}))

	completedAt := start.Add(-time.Hour)
	_, err := svc.UpdateProgress(ctx, "p1", &domain.UpdateProgressRequest{
		UserCode:    strPtr("first"),
		Completed:   true,
		CompletedAt: &completedAt,
	})
	require.NoError(t, err)

	second, err := svc.UpdateProgress(ctx, "p1", &domain.UpdateProgressRequest{
		UserCode:    strPtr("second"),
		Completed:   true,
		CompletedAt: &completedAt,
	})
	require.NoError(t, err)
	assert.True(t, start.Add(time.Minute).Equal(second.LastAttempted))

	stored, err := problems.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stored.Progress)

	resp := stored.ToResponse()
	require.NotNil(t, resp.Completed)
	assert.True(t, *resp.Completed)
	require.NotNil(t, resp.UserCode)
	assert.Equal(t, "second", *resp.UserCode)
	require.NotNil(t, resp.LastAttempted)
	assert.True(t, start.Add(time.Minute).Equal(*resp.LastAttempted))
	require.NotNil(t, resp.CompletedAt)
	assert.True(t, completedAt.Equal(*resp.CompletedAt))
}

func TestProgressService_Errors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(repository.NewProgressRepository(db, time.Second), testTracer(), testMetrics(t), testLogger)
	ctx := context.Background()

	_, err := svc.UpdateProgress(ctx, " ", &domain.UpdateProgressRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProgress(ctx, "unknown", &domain.UpdateProgressRequest{Completed: true})
	assert.ErrorIs(t, err, domain.ErrProblemNotFound)
}
