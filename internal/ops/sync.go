package ops

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/avelis/repoview/internal/db"
	"github.com/avelis/repoview/internal/mirror"
)

// SyncOutput contains the result of the Sync operation.
type SyncOutput struct {
	Mode       string `json:"mode"` // "clone" or "pull"
	RemoteURL  string `json:"remote_url"`
	Branch     string `json:"branch"`
	Root       string `json:"root"`
	DurationMs int64  `json:"duration_ms"`
}

// Sync brings the mirror up to date and records the attempt in the
// audit trail. Failed attempts are recorded too; recording problems
// never mask the sync result. database may be nil (no audit trail).
func Sync(ctx context.Context, database *sql.DB, m *mirror.Mirror) (*SyncOutput, error) {
	started := time.Now()
	mode, err := m.EnsureSynced(ctx)
	finished := time.Now()

	recordSync(database, m, mode, started, finished, err)

	if err != nil {
		return nil, err
	}

	return &SyncOutput{
		Mode:       string(mode),
		RemoteURL:  m.Remote(),
		Branch:     m.Branch(),
		Root:       m.Root(),
		DurationMs: finished.Sub(started).Milliseconds(),
	}, nil
}

func recordSync(database *sql.DB, m *mirror.Mirror, mode mirror.SyncMode, started, finished time.Time, syncErr error) {
	if database == nil {
		return
	}

	id, err := db.NewID()
	if err != nil {
		log.Printf("warning: sync audit row dropped: %v", err)
		return
	}
	rec := &db.SyncRecord{
		ID:         id,
		RemoteURL:  m.Remote(),
		Branch:     m.Branch(),
		Mode:       string(mode),
		OK:         syncErr == nil,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if syncErr != nil {
		rec.Message = syncErr.Error()
	}
	if err := db.RecordSync(database, rec); err != nil {
		log.Printf("warning: sync audit row dropped: %v", err)
	}
}
