package repositoryimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/internal/task"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

func TestYAMLRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewYAMLRepository(storage.NewMemoryStorage())
	fixed := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	for _, tk := range []*task.Task{
		{ID: 3, CategoryID: 1, Status: task.StatusPending},
		{ID: 1, CategoryID: 4, Status: task.StatusInProgress},
		{ID: 2, CategoryID: 1, Status: task.StatusPending},
	} {
		require.NoError(t, repo.Save(ctx, tk))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	pending, err := repo.List(ctx, task.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	got, err := repo.UpdateStatus(ctx, 2, task.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, got.Status)
	assert.Equal(t, fixed, got.CompletedAt)

	stored, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, stored.Status)

	_, err = repo.Get(ctx, 99)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
	_, err = repo.UpdateStatus(ctx, 99, task.StatusFailed)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}
