package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/storage/sqlite"
)

func newTestRepository(t *testing.T) *sqlite.Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: dbPath,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func TestRepositoryRecordAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	capturedAt := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)

	record := model.SnapshotRecord{
		ID:       "snap-1",
		DeviceID: "device-1",
		Stats: model.Stats{
			Connected:      true,
			ConnectedNodes: 2,
			Uptime:         90 * time.Second,
			ActiveStreams:  1,
			TotalStreams:   12,
			BytesSent:      2048,
			BytesReceived:  8192,
			ReconnectCount: 3,
			LastError:      "transient timeout",
			ExitPoints:     []model.ExitPoint{{ID: "ep-1", Address: "198.51.100.10:443", Country: "NL"}},
			NodeAddresses:  []string{"192.0.2.1:4433"},
			CapturedAt:     capturedAt,
		},
	}

	require.NoError(t, repo.RecordSnapshot(ctx, record))

	records, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.DeviceID, got.DeviceID)
	assert.Equal(t, record.Stats.Connected, got.Stats.Connected)
	assert.Equal(t, record.Stats.Uptime, got.Stats.Uptime)
	assert.Equal(t, record.Stats.BytesReceived, got.Stats.BytesReceived)
	assert.Equal(t, record.Stats.LastError, got.Stats.LastError)
	assert.Equal(t, record.Stats.ExitPoints, got.Stats.ExitPoints)
	assert.Equal(t, record.Stats.NodeAddresses, got.Stats.NodeAddresses)
	assert.Equal(t, capturedAt, got.Stats.CapturedAt)
}

func TestRepositoryRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	record := model.SnapshotRecord{
		ID:       "snap-1",
		DeviceID: "device-1",
		Stats:    model.Stats{CapturedAt: time.Now().UTC()},
	}

	require.NoError(t, repo.RecordSnapshot(ctx, record))

	err := repo.RecordSnapshot(ctx, record)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotValid)
}

func TestRepositoryListOrdersByCaptureTime(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"snap-c", "snap-a", "snap-b"} {
		record := model.SnapshotRecord{
			ID:       id,
			DeviceID: "device-1",
			Stats: model.Stats{
				ExitPoints:    []model.ExitPoint{},
				NodeAddresses: []string{},
				// Insert out of order on purpose.
				CapturedAt: base.Add(time.Duration(2-i) * time.Minute),
			},
		}
		require.NoError(t, repo.RecordSnapshot(ctx, record))
	}

	records, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "snap-b", records[0].ID)
	assert.Equal(t, "snap-a", records[1].ID)
	assert.Equal(t, "snap-c", records[2].ID)
}
