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

func TestLessonService_MarkCompleteKeepsFirstTime(t *testing.T) {
	svc := NewLessonService(repository.NewLessonCompletionRepository(setupTestDB(t), time.Second), testTracer(), testMetrics(t), testLogger)
	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(start, time.Hour)
	ctx := context.Background()

	created, err := svc.MarkComplete(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.MarkComplete(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, created)

	lessons, err := svc.GetCompletedLessons(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "a1", lessons[0].LessonID)
	assert.True(t, start.Equal(lessons[0].CompletedAt))
}

func TestLessonService_RequiresID(t *testing.T) {
	svc := NewLessonService(repository.NewLessonCompletionRepository(setupTestDB(t), time.Second), testTracer(), testMetrics(t), testLogger)

	_, err := svc.MarkComplete(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
