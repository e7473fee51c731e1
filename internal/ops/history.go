package ops

import (
	"database/sql"

	"github.com/avelis/repoview/internal/db"
)

// History limits.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Limit int // 0 means DefaultHistoryLimit, capped at MaxHistoryLimit
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Syncs []db.SyncRecord `json:"syncs"`
	Limit int             `json:"limit"`
}

// History returns the most recent sync attempts, newest first.
func History(database *sql.DB, input HistoryInput) (*HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := db.RecentSyncs(database, limit)
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{Syncs: records, Limit: limit}, nil
}
