package printer

import "github.com/prx-network/relayleaf/internal/model"

// Printer knows how to print relay client information in different formats.
type Printer interface {
	PrintStats(stats model.Stats) error
	PrintHistory(records []model.SnapshotRecord) error
	PrintMessage(msg string) error
}
