package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Snapshot index operations

// UpsertSnapshot inserts or replaces the index record for a version.
// Replacement matches the storage semantics: re-saving a version
// destructively overwrites the prior snapshot.
func (s *Store) UpsertSnapshot(rec *SnapshotRecord) error {
	query := `
		INSERT OR REPLACE INTO snapshots
		(version, created_at, reason, degraded, pc_source, lib_files)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		rec.Version,
		rec.CreatedAt.Format(time.RFC3339),
		rec.Reason,
		rec.Degraded,
		rec.PCSource,
		rec.LibFiles,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", rec.Version, err)
	}

	return nil
}

// GetSnapshot retrieves the index record for a version. Returns (nil, nil)
// when no record exists; a snapshot directory without a record is legal
// (for example one created by an older build).
func (s *Store) GetSnapshot(version string) (*SnapshotRecord, error) {
	query := `
		SELECT version, created_at, reason, degraded, pc_source, lib_files
		FROM snapshots
		WHERE version = ?
	`

	var rec SnapshotRecord
	var createdAt string

	err := s.db.QueryRow(query, version).Scan(
		&rec.Version,
		&createdAt,
		&rec.Reason,
		&rec.Degraded,
		&rec.PCSource,
		&rec.LibFiles,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", version, err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for snapshot %s: %w", version, err)
	}

	return &rec, nil
}

// ListSnapshots returns all index records ordered by creation time
// (newest first).
func (s *Store) ListSnapshots() ([]*SnapshotRecord, error) {
	query := `
		SELECT version, created_at, reason, degraded, pc_source, lib_files
		FROM snapshots
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var records []*SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		var createdAt string

		err := rows.Scan(
			&rec.Version,
			&createdAt,
			&rec.Reason,
			&rec.Degraded,
			&rec.PCSource,
			&rec.LibFiles,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for snapshot %s: %w", rec.Version, err)
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return records, nil
}

// Event journal operations

// InsertEvent appends one journal entry. The timestamp is set here when
// the caller left it zero.
func (s *Store) InsertEvent(ev *Event) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
		INSERT INTO events (action, from_version, to_version, detail, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		ev.Action,
		ev.FromVersion,
		ev.ToVersion,
		ev.Detail,
		ts.Format(time.RFC3339),
	)

	if err != nil {
		return fmt.Errorf("failed to insert %s event: %w", ev.Action, err)
	}

	return nil
}

// LastSwitchEvent returns the most recent switch or undo journal entry,
// or (nil, nil) when none exists. Undo entries count because undoing an
// undo should bounce back, not replay an older switch.
func (s *Store) LastSwitchEvent() (*Event, error) {
	query := `
		SELECT id, action, from_version, to_version, detail, timestamp
		FROM events
		WHERE action IN (?, ?)
		ORDER BY id DESC
		LIMIT 1
	`

	var ev Event
	var timestamp string

	err := s.db.QueryRow(query, ActionSwitch, ActionUndo).Scan(
		&ev.ID,
		&ev.Action,
		&ev.FromVersion,
		&ev.ToVersion,
		&ev.Detail,
		&timestamp,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last switch event: %w", err)
	}

	ev.Timestamp, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event timestamp: %w", err)
	}

	return &ev, nil
}

// ListEvents returns the most recent journal entries, newest first.
func (s *Store) ListEvents(limit int) ([]*Event, error) {
	query := `
		SELECT id, action, from_version, to_version, detail, timestamp
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var ev Event
		var timestamp string

		err := rows.Scan(
			&ev.ID,
			&ev.Action,
			&ev.FromVersion,
			&ev.ToVersion,
			&ev.Detail,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		ev.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event timestamp: %w", err)
		}

		events = append(events, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
