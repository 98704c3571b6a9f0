package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RawStats is the flat statistics record as it crosses the engine boundary.
// Counters are signed and the two sub-documents are raw JSON strings, exactly
// as the native struct lays them out.
type RawStats struct {
	Connected         bool
	ConnectedNodes    int
	UptimeSeconds     int64
	ActiveStreams     int
	TotalStreams      int64
	BytesSent         int64
	BytesReceived     int64
	ReconnectCount    int64
	LastError         string
	ExitPointsJSON    string
	NodeAddressesJSON string
}

// ExitPoint is a relay network egress node as reported in statistics. Fields
// the engine does not report stay at their zero value.
type ExitPoint struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// Stats is an immutable snapshot of one statistics read. Counters are
// per-session: they reset when the client is started again after a stop, so
// they are only monotonic within one started session.
type Stats struct {
	Connected      bool
	ConnectedNodes int
	Uptime         time.Duration
	ActiveStreams  int
	TotalStreams   uint64
	BytesSent      uint64
	BytesReceived  uint64
	ReconnectCount uint64
	LastError      string
	ExitPoints     []ExitPoint
	NodeAddresses  []string

	// DecodeWarnings records sub-document decode failures. A malformed
	// sub-document degrades to its empty form instead of failing the
	// snapshot.
	DecodeWarnings []string

	CapturedAt time.Time
}

// NewStats builds a typed snapshot from the flat engine record. It never
// fails: each JSON sub-document decodes independently and degrades to an
// empty structure on failure, with the failure recorded in DecodeWarnings.
func NewStats(raw RawStats) Stats {
	s := Stats{
		Connected:      raw.Connected,
		ConnectedNodes: raw.ConnectedNodes,
		Uptime:         time.Duration(raw.UptimeSeconds) * time.Second,
		ActiveStreams:  raw.ActiveStreams,
		TotalStreams:   clampCounter(raw.TotalStreams),
		BytesSent:      clampCounter(raw.BytesSent),
		BytesReceived:  clampCounter(raw.BytesReceived),
		ReconnectCount: clampCounter(raw.ReconnectCount),
		LastError:      raw.LastError,
		ExitPoints:     []ExitPoint{},
		NodeAddresses:  []string{},
		CapturedAt:     time.Now().UTC(),
	}

	exitPoints, err := decodeExitPoints(raw.ExitPointsJSON)
	if err != nil {
		s.DecodeWarnings = append(s.DecodeWarnings, fmt.Sprintf("exit points: %v", err))
	} else {
		s.ExitPoints = exitPoints
	}

	nodeAddresses, err := decodeNodeAddresses(raw.NodeAddressesJSON)
	if err != nil {
		s.DecodeWarnings = append(s.DecodeWarnings, fmt.Sprintf("node addresses: %v", err))
	} else {
		s.NodeAddresses = nodeAddresses
	}

	return s
}

func decodeExitPoints(raw string) ([]ExitPoint, error) {
	if raw == "" {
		return []ExitPoint{}, nil
	}

	var exitPoints []ExitPoint
	if err := json.Unmarshal([]byte(raw), &exitPoints); err != nil {
		return nil, fmt.Errorf("could not decode JSON: %w", err)
	}
	if exitPoints == nil {
		exitPoints = []ExitPoint{}
	}

	return exitPoints, nil
}

func decodeNodeAddresses(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	var addresses []string
	if err := json.Unmarshal([]byte(raw), &addresses); err != nil {
		return nil, fmt.Errorf("could not decode JSON: %w", err)
	}
	if addresses == nil {
		addresses = []string{}
	}

	return addresses, nil
}

// clampCounter converts a native signed counter to unsigned, treating
// negative values from the boundary as zero.
func clampCounter(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
