package ops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/db"
	"github.com/avelis/repoview/internal/mirror"
)

// TestFullWorkflow exercises the complete tool lifecycle:
// sync (clone) → read → analyze → remote change → sync (pull) → re-read → history
func TestFullWorkflow(t *testing.T) {
	origin := newOriginRepo(t)
	ctx := context.Background()

	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	defer database.Close()

	cfg := config.DefaultConfig()
	m := mirror.New(origin, "main", filepath.Join(t.TempDir(), "mirror"))

	// 1. First sync clones.
	syncOut, err := Sync(ctx, database, m)
	require.NoError(t, err)
	require.Equal(t, "clone", syncOut.Mode)

	// 2. Read the committed file.
	readOut, err := ReadFile(m, cfg, ReadFileInput{Path: "index.html"})
	require.NoError(t, err)
	require.Equal(t, "<html></html>", readOut.Content)
	require.False(t, readOut.Truncated)

	// 3. Push a styled page to the origin.
	page := `<main id="top"><div class="card wide"></div><div class="card"></div></main>`
	require.NoError(t, os.WriteFile(filepath.Join(origin, "page.html"), []byte(page), 0o644))
	for _, args := range [][]string{{"add", "page.html"}, {"commit", "-m", "add page"}} {
		cmd := exec.Command("git", args...)
		cmd.Dir = origin
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	// 4. Second sync pulls.
	syncOut, err = Sync(ctx, database, m)
	require.NoError(t, err)
	require.Equal(t, "pull", syncOut.Mode)

	// 5. Analyze the new page.
	analyzeOut, err := Analyze(m, cfg, AnalyzeInput{Path: "page.html"})
	require.NoError(t, err)
	require.Equal(t, []string{"card", "wide"}, analyzeOut.Classes)
	require.Equal(t, []string{"top"}, analyzeOut.IDs)
	require.Equal(t, []string{"div", "main"}, analyzeOut.Tags)
	require.Len(t, analyzeOut.Elements, 3)

	// 6. Both syncs are in the audit trail, newest first.
	hist, err := History(database, HistoryInput{})
	require.NoError(t, err)
	require.Len(t, hist.Syncs, 2)
	require.Equal(t, "pull", hist.Syncs[0].Mode)
	require.Equal(t, "clone", hist.Syncs[1].Mode)
	require.True(t, hist.Syncs[0].OK)
	require.True(t, hist.Syncs[1].OK)
}
