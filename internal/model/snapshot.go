package model

import "fmt"

// SnapshotRecord is one statistics snapshot persisted to history storage,
// tied to the device that produced it.
type SnapshotRecord struct {
	ID       string
	DeviceID string
	Stats    Stats
}

// Validate validates the snapshot record before persisting it.
func (r *SnapshotRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if r.DeviceID == "" {
		return fmt.Errorf("device id is required: %w", ErrNotValid)
	}
	return nil
}
