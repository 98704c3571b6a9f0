package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/storage/memory"
)

func testRecord(id string) model.SnapshotRecord {
	return model.SnapshotRecord{
		ID:       id,
		DeviceID: "device-1",
		Stats: model.Stats{
			Connected:      true,
			ConnectedNodes: 2,
			Uptime:         42 * time.Second,
			BytesSent:      1024,
			BytesReceived:  4096,
			ExitPoints:     []model.ExitPoint{{ID: "ep-1", Country: "NL"}},
			NodeAddresses:  []string{"192.0.2.1:4433"},
			CapturedAt:     time.Now().UTC(),
		},
	}
}

func TestRepositoryRecordAndList(t *testing.T) {
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	require.NoError(t, repo.RecordSnapshot(ctx, testRecord("snap-1")))
	require.NoError(t, repo.RecordSnapshot(ctx, testRecord("snap-2")))

	records, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Insertion order preserved.
	assert.Equal(t, "snap-1", records[0].ID)
	assert.Equal(t, "snap-2", records[1].ID)
	assert.Equal(t, uint64(4096), records[0].Stats.BytesReceived)
}

func TestRepositoryRejectsDuplicates(t *testing.T) {
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	require.NoError(t, repo.RecordSnapshot(ctx, testRecord("snap-1")))

	err = repo.RecordSnapshot(ctx, testRecord("snap-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotValid)

	records, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRepositoryRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	tests := map[string]model.SnapshotRecord{
		"A record without ID should be rejected.":        {DeviceID: "device-1"},
		"A record without device ID should be rejected.": {ID: "snap-1"},
	}

	for name, record := range tests {
		t.Run(name, func(t *testing.T) {
			err := repo.RecordSnapshot(ctx, record)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrNotValid)
		})
	}
}
