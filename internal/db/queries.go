package db

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/avelis/repoview/internal/errors"
)

// SyncRecord is one row of the sync audit trail.
type SyncRecord struct {
	ID         string    `json:"id"`
	RemoteURL  string    `json:"remote_url"`
	Branch     string    `json:"branch"`
	Mode       string    `json:"mode"` // "clone" or "pull"
	OK         bool      `json:"ok"`
	Message    string    `json:"message,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewID generates a ULID for a sync record.
func NewID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id.String(), nil
}

// RecordSync inserts one sync attempt into the audit trail.
func RecordSync(db *sql.DB, rec *SyncRecord) error {
	var message sql.NullString
	if rec.Message != "" {
		message = sql.NullString{String: rec.Message, Valid: true}
	}

	query := `
		INSERT INTO sync_history (
			id, remote_url, branch, mode, ok, message, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		rec.ID, rec.RemoteURL, rec.Branch, rec.Mode, boolToInt(rec.OK),
		message, rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// RecentSyncs returns the most recent sync attempts, newest first.
func RecentSyncs(db *sql.DB, limit int) ([]SyncRecord, error) {
	query := `
		SELECT id, remote_url, branch, mode, ok, message, started_at, finished_at
		FROM sync_history
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records := make([]SyncRecord, 0)
	for rows.Next() {
		rec, err := scanSyncRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}

// scanSyncRecord scans one sync_history row.
func scanSyncRecord(rows *sql.Rows) (*SyncRecord, error) {
	var rec SyncRecord
	var ok int
	var message sql.NullString
	var started, finished string

	if err := rows.Scan(&rec.ID, &rec.RemoteURL, &rec.Branch, &rec.Mode,
		&ok, &message, &started, &finished); err != nil {
		return nil, errors.NewInternal(err)
	}

	rec.OK = ok != 0
	if message.Valid {
		rec.Message = message.String
	}

	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, errors.NewInternal(err)
	}
	if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, errors.NewInternal(err)
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
