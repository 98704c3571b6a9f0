package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/prx-network/relayleaf/internal/model"
)

// JSONPrinter prints relay client information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// statsOutput represents one statistics snapshot output.
type statsOutput struct {
	Connected      bool              `json:"connected"`
	ConnectedNodes int               `json:"connected_nodes"`
	UptimeSeconds  int64             `json:"uptime_seconds"`
	ActiveStreams  int               `json:"active_streams"`
	TotalStreams   uint64            `json:"total_streams"`
	BytesSent      uint64            `json:"bytes_sent"`
	BytesReceived  uint64            `json:"bytes_received"`
	ReconnectCount uint64            `json:"reconnect_count"`
	LastError      string            `json:"last_error,omitempty"`
	ExitPoints     []model.ExitPoint `json:"exit_points"`
	NodeAddresses  []string          `json:"node_addresses"`
	DecodeWarnings []string          `json:"decode_warnings,omitempty"`
	CapturedAt     time.Time         `json:"captured_at"`
}

// historyItem represents a recorded snapshot in the history output.
type historyItem struct {
	ID       string      `json:"id"`
	DeviceID string      `json:"device_id"`
	Stats    statsOutput `json:"stats"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintStats prints one statistics snapshot in JSON format.
func (j *JSONPrinter) PrintStats(stats model.Stats) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(newStatsOutput(stats))
}

// PrintHistory prints recorded snapshots in JSON format.
func (j *JSONPrinter) PrintHistory(records []model.SnapshotRecord) error {
	items := make([]historyItem, len(records))
	for i, r := range records {
		items[i] = historyItem{
			ID:       r.ID,
			DeviceID: r.DeviceID,
			Stats:    newStatsOutput(r.Stats),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(messageOutput{Message: msg})
}

func newStatsOutput(stats model.Stats) statsOutput {
	return statsOutput{
		Connected:      stats.Connected,
		ConnectedNodes: stats.ConnectedNodes,
		UptimeSeconds:  int64(stats.Uptime / time.Second),
		ActiveStreams:  stats.ActiveStreams,
		TotalStreams:   stats.TotalStreams,
		BytesSent:      stats.BytesSent,
		BytesReceived:  stats.BytesReceived,
		ReconnectCount: stats.ReconnectCount,
		LastError:      stats.LastError,
		ExitPoints:     stats.ExitPoints,
		NodeAddresses:  stats.NodeAddresses,
		DecodeWarnings: stats.DecodeWarnings,
		CapturedAt:     stats.CapturedAt.UTC(),
	}
}
