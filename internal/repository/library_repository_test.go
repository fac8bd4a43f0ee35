package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsa-study/backend/internal/domain"
)

func TestResourceRepository_CRUD(t *testing.T) {
	repo := NewResourceRepository(setupTestDB(t), time.Second)
	ctx := context.Background()

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	video := &domain.Resource{ResourceName: "Graphs video", ResourceType: "video", AddedAt: base}
	article := &domain.Resource{
		ResourceName:  "Heaps article",
		ResourceType:  "article",
		ResourceLink:  strPtr("https://example.com/heaps"),
		DataStructure: strPtr("Heap"),
		AddedAt:       base.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, video))
	require.NoError(t, repo.Create(ctx, article))
	assert.NotZero(t, video.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Heaps article", all[0].ResourceName, "newest first")

	article.ResourceName = "Heaps, revisited"
	article.ResourceLink = nil
	require.NoError(t, repo.Update(ctx, article))

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Heaps, revisited", all[0].ResourceName)
	assert.Nil(t, all[0].ResourceLink)
	assert.True(t, all[0].AddedAt.Equal(article.AddedAt))

	assert.ErrorIs(t, repo.Update(ctx, &domain.Resource{ID: 999, ResourceName: "x", ResourceType: "y"}), domain.ErrResourceNotFound)

	require.NoError(t, repo.Delete(ctx, video.ID))
	require.NoError(t, repo.Delete(ctx, video.ID))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResourceRepository_ToggleFavorite(t *testing.T) {
	repo := NewResourceRepository(setupTestDB(t), time.Second)
	ctx := context.Background()

	resource := &domain.Resource{ResourceName: "Tries", ResourceType: "course", AddedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, resource))

	favorite, err := repo.ToggleFavorite(ctx, resource.ID)
	require.NoError(t, err)
	assert.True(t, favorite)

	favorite, err = repo.ToggleFavorite(ctx, resource.ID)
	require.NoError(t, err)
	assert.False(t, favorite)

	_, err = repo.ToggleFavorite(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestNoteRepository_CRUD(t *testing.T) {
	repo := NewNoteRepository(setupTestDB(t), time.Second)
	ctx := context.Background()

	created := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	note := &domain.Note{
		NoteTitle:   "Two pointers",
		NoteContent: strPtr("Move the slower pointer"),
		Tags:        strPtr("arrays,patterns"),
		CreatedAt:   created,
	}
	require.NoError(t, repo.Create(ctx, note))

	note.NoteTitle = "Two pointers pattern"
	note.Tags = nil
	require.NoError(t, repo.Update(ctx, note))

	notes, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Two pointers pattern", notes[0].NoteTitle)
	assert.Nil(t, notes[0].Tags)
	assert.True(t, created.Equal(notes[0].CreatedAt))

	assert.ErrorIs(t, repo.Update(ctx, &domain.Note{ID: 77, NoteTitle: "x"}), domain.ErrNoteNotFound)

	require.NoError(t, repo.Delete(ctx, note.ID))
	notes, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
