package storage

import (
	"context"

	"github.com/prx-network/relayleaf/internal/model"
)

// SnapshotRepository is the interface for statistics snapshot history
// persistence. The wrapper core never depends on it, it only serves
// callers that want to keep a record of periodic stats reads.
type SnapshotRepository interface {
	RecordSnapshot(ctx context.Context, r model.SnapshotRecord) error
	ListSnapshots(ctx context.Context) ([]model.SnapshotRecord, error)
}
