package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/prx-network/relayleaf/internal/log"
	"github.com/prx-network/relayleaf/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.SnapshotRepository.
type Repository struct {
	snapshots []model.SnapshotRecord
	ids       map[string]struct{}
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		ids:    map[string]struct{}{},
		logger: cfg.Logger,
	}, nil
}

// RecordSnapshot appends a snapshot record, preserving insertion order.
func (r *Repository) RecordSnapshot(ctx context.Context, record model.SnapshotRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[record.ID]; ok {
		return fmt.Errorf("snapshot record %s already recorded: %w", record.ID, model.ErrNotValid)
	}

	r.ids[record.ID] = struct{}{}
	r.snapshots = append(r.snapshots, record)
	r.logger.Debugf("Recorded snapshot: %s", record.ID)

	return nil
}

// ListSnapshots returns all recorded snapshots in insertion order.
func (r *Repository) ListSnapshots(ctx context.Context) ([]model.SnapshotRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy.
	snapshots := make([]model.SnapshotRecord, len(r.snapshots))
	copy(snapshots, r.snapshots)

	return snapshots, nil
}
