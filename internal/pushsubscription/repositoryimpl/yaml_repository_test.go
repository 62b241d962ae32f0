package repositoryimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/internal/pushsubscription"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

func TestYAMLRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewYAMLRepository(storage.NewMemoryStorage())
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	ok, err := repo.Upsert(ctx, &pushsubscription.Subscription{ID: "01A", Endpoint: "https://push/1", P256dhKey: "k1", AuthKey: "a1", CreatedAt: created})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Upsert(ctx, &pushsubscription.Subscription{ID: "01B", Endpoint: "https://push/1", P256dhKey: "k2", AuthKey: "a2", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.False(t, ok, "same endpoint replaces the subscription")

	ok, err = repo.Upsert(ctx, &pushsubscription.Subscription{ID: "01C", Endpoint: "https://push/2"})
	require.NoError(t, err)
	assert.True(t, ok)

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "01A", subs[0].ID)
	assert.Equal(t, "k2", subs[0].P256dhKey)
	assert.True(t, subs[0].CreatedAt.Equal(created))

	require.NoError(t, repo.DeleteByEndpoint(ctx, "https://push/1"))
	err = repo.DeleteByEndpoint(ctx, "https://push/1")
	assert.True(t, cerr.IsCode(err, cerr.NotFound))

	subs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "01C", subs[0].ID)
}
