package repositoryimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/pkg/storage"
)

func TestYAMLRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewYAMLRepository(storage.NewMemoryStorage())

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveActive(ctx, []maintenance.Schedule{
		{ScheduleID: 2, DeviceModelName: "Sony A7", NextMaintenanceDate: start},
		{ScheduleID: 1, DeviceModelName: "Canon R6", Type: maintenance.TypePriority},
	}))
	require.NoError(t, repo.SaveInactive(ctx, []maintenance.Schedule{
		{ScheduleID: 3, DeviceModelName: "DJI Ronin"},
	}))

	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, int64(2), active[0].ScheduleID)
	assert.True(t, active[0].NextMaintenanceDate.Equal(start))

	inactive, err := repo.ListInactive(ctx)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.True(t, inactive[0].IsInactive)
}
