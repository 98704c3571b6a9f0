package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/prx-network/relayleaf/internal/log"
	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.SnapshotRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// RecordSnapshot inserts a snapshot record.
func (r *Repository) RecordSnapshot(ctx context.Context, record model.SnapshotRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot record: %w", err)
	}

	exitPoints, err := json.Marshal(record.Stats.ExitPoints)
	if err != nil {
		return fmt.Errorf("could not marshal exit points: %w", err)
	}
	nodeAddresses, err := json.Marshal(record.Stats.NodeAddresses)
	if err != nil {
		return fmt.Errorf("could not marshal node addresses: %w", err)
	}

	query := `
		INSERT INTO snapshots (
			id, device_id,
			connected, connected_nodes, uptime_seconds,
			active_streams, total_streams,
			bytes_sent, bytes_received, reconnect_count,
			last_error, exit_points, node_addresses,
			captured_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.DeviceID,
		record.Stats.Connected,
		record.Stats.ConnectedNodes,
		int64(record.Stats.Uptime/time.Second),
		record.Stats.ActiveStreams,
		record.Stats.TotalStreams,
		record.Stats.BytesSent,
		record.Stats.BytesReceived,
		record.Stats.ReconnectCount,
		record.Stats.LastError,
		string(exitPoints),
		string(nodeAddresses),
		record.Stats.CapturedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: snapshots.") {
			return fmt.Errorf("snapshot record already exists: %w", model.ErrNotValid)
		}
		return fmt.Errorf("could not insert snapshot: %w", err)
	}

	r.logger.Debugf("Recorded snapshot: %s", record.ID)
	return nil
}

// ListSnapshots returns all recorded snapshots ordered by capture time.
func (r *Repository) ListSnapshots(ctx context.Context) ([]model.SnapshotRecord, error) {
	query := `
		SELECT
			id, device_id,
			connected, connected_nodes, uptime_seconds,
			active_streams, total_streams,
			bytes_sent, bytes_received, reconnect_count,
			last_error, exit_points, node_addresses,
			captured_at
		FROM snapshots
		ORDER BY captured_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query snapshots: %w", err)
	}
	defer rows.Close()

	var records []model.SnapshotRecord
	for rows.Next() {
		record, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate snapshots: %w", err)
	}

	return records, nil
}

func scanSnapshot(rows *sql.Rows) (*model.SnapshotRecord, error) {
	var (
		record        model.SnapshotRecord
		uptimeSeconds int64
		exitPoints    string
		nodeAddresses string
		capturedAt    int64
	)

	err := rows.Scan(
		&record.ID,
		&record.DeviceID,
		&record.Stats.Connected,
		&record.Stats.ConnectedNodes,
		&uptimeSeconds,
		&record.Stats.ActiveStreams,
		&record.Stats.TotalStreams,
		&record.Stats.BytesSent,
		&record.Stats.BytesReceived,
		&record.Stats.ReconnectCount,
		&record.Stats.LastError,
		&exitPoints,
		&nodeAddresses,
		&capturedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("could not scan snapshot: %w", err)
	}

	record.Stats.Uptime = time.Duration(uptimeSeconds) * time.Second
	record.Stats.CapturedAt = time.Unix(capturedAt, 0).UTC()

	if err := json.Unmarshal([]byte(exitPoints), &record.Stats.ExitPoints); err != nil {
		return nil, fmt.Errorf("could not unmarshal exit points: %w", err)
	}
	if err := json.Unmarshal([]byte(nodeAddresses), &record.Stats.NodeAddresses); err != nil {
		return nil, fmt.Errorf("could not unmarshal node addresses: %w", err)
	}

	return &record, nil
}
