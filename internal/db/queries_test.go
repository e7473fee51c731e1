package db

import (
	"database/sql"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestRecord(t *testing.T, mode string, ok bool, startedAt time.Time) *SyncRecord {
	t.Helper()
	id, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error: %v", err)
	}
	rec := &SyncRecord{
		ID:         id,
		RemoteURL:  "https://example.com/site.git",
		Branch:     "main",
		Mode:       mode,
		OK:         ok,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(2 * time.Second),
	}
	if !ok {
		rec.Message = "SYNC_FAILED: git pull failed: network unreachable"
	}
	return rec
}

func TestNewID(t *testing.T) {
	a, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error: %v", err)
	}
	b, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error: %v", err)
	}
	if len(a) != 26 {
		t.Errorf("len(id) = %d, want 26", len(a))
	}
	if a == b {
		t.Errorf("two generated IDs are equal: %s", a)
	}
}

func TestRecordAndRecentSyncs(t *testing.T) {
	database := setupTestDB(t)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	first := newTestRecord(t, "clone", true, base)
	second := newTestRecord(t, "pull", false, base.Add(time.Minute))

	if err := RecordSync(database, first); err != nil {
		t.Fatalf("RecordSync(first) error: %v", err)
	}
	if err := RecordSync(database, second); err != nil {
		t.Fatalf("RecordSync(second) error: %v", err)
	}

	records, err := RecentSyncs(database, 10)
	if err != nil {
		t.Fatalf("RecentSyncs() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// Newest first.
	if records[0].ID != second.ID {
		t.Errorf("records[0].ID = %s, want most recent %s", records[0].ID, second.ID)
	}
	if records[0].Mode != "pull" || records[0].OK {
		t.Errorf("records[0] = %+v, want failed pull", records[0])
	}
	if records[0].Message == "" {
		t.Error("failed sync record lost its message")
	}
	if records[1].Mode != "clone" || !records[1].OK {
		t.Errorf("records[1] = %+v, want successful clone", records[1])
	}
	if records[1].Message != "" {
		t.Errorf("successful record has message %q, want empty", records[1].Message)
	}

	if !records[1].StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, want %v", records[1].StartedAt, base)
	}
}

func TestRecentSyncsLimit(t *testing.T) {
	database := setupTestDB(t)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := newTestRecord(t, "pull", true, base.Add(time.Duration(i)*time.Minute))
		if err := RecordSync(database, rec); err != nil {
			t.Fatalf("RecordSync() error: %v", err)
		}
	}

	records, err := RecentSyncs(database, 3)
	if err != nil {
		t.Fatalf("RecentSyncs() error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("len(records) = %d, want 3", len(records))
	}
}

func TestRecentSyncsEmpty(t *testing.T) {
	database := setupTestDB(t)

	records, err := RecentSyncs(database, 10)
	if err != nil {
		t.Fatalf("RecentSyncs() error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil slice", records)
	}
}
