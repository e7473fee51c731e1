package mirror

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/avelis/repoview/internal/errors"
)

// SyncMode identifies which git operation a sync performed.
type SyncMode string

const (
	ModeClone SyncMode = "clone"
	ModePull  SyncMode = "pull"
)

// Mirror owns the single local working copy of one remote repository.
// All mutation of the working copy happens under the write lock; file
// reads take the read lock, so a reader never observes a half-applied
// pull.
type Mirror struct {
	remote string
	branch string
	root   string

	mu     sync.RWMutex
	synced bool
}

// New creates a Mirror for the given remote URL, branch, and local root.
// The root is fixed for the lifetime of the process.
func New(remote, branch, root string) *Mirror {
	return &Mirror{
		remote: remote,
		branch: branch,
		root:   root,
	}
}

// Remote returns the remote URL the mirror tracks.
func (m *Mirror) Remote() string { return m.remote }

// Branch returns the branch the mirror tracks.
func (m *Mirror) Branch() string { return m.branch }

// Root returns the local mirror directory.
func (m *Mirror) Root() string { return m.root }

// Synced reports whether at least one clone or pull has succeeded.
func (m *Mirror) Synced() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.synced
}

// EnsureSynced brings the local working copy up to date: a full clone
// when the mirror directory is absent, otherwise a pull of the tracked
// branch. A clone that fails because the directory already exists falls
// through to pull. Single attempt, no retries; the caller re-invokes if
// it wants another try. Safe to call repeatedly and idempotent with
// respect to repository content.
func (m *Mirror) EnsureSynced(ctx context.Context) (SyncMode, error) {
	if strings.TrimSpace(m.remote) == "" {
		return "", errors.NewInvalidRequest("remote_url is not configured")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isWorkingCopy() {
		if err := m.pull(ctx); err != nil {
			return ModePull, err
		}
		m.synced = true
		return ModePull, nil
	}

	if err := m.clone(ctx); err != nil {
		// The directory may have appeared out of band (a previous
		// partial run, or an operator-created checkout). In that case
		// the clone failure is expected; fall through to pull.
		if m.isWorkingCopy() {
			if pullErr := m.pull(ctx); pullErr != nil {
				return ModePull, pullErr
			}
			m.synced = true
			return ModePull, nil
		}
		return ModeClone, err
	}
	m.synced = true
	return ModeClone, nil
}

// Wipe removes the local mirror directory entirely. The next sync will
// perform a fresh clone. Used by the CLI escape hatch for recovering
// from local corruption; never called on the tool path.
func (m *Mirror) Wipe() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.RemoveAll(m.root); err != nil {
		return errors.NewInternal(err)
	}
	m.synced = false
	return nil
}

// isWorkingCopy reports whether root holds a git working copy.
func (m *Mirror) isWorkingCopy() bool {
	_, err := os.Stat(filepath.Join(m.root, ".git"))
	return err == nil
}

func (m *Mirror) clone(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(m.root), 0o755); err != nil {
		return errors.NewInternal(err)
	}
	cmd := exec.CommandContext(ctx, "git", "clone", "--branch", m.branch, "--single-branch", m.remote, m.root)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.NewSyncFailed(string(ModeClone), strings.TrimSpace(string(out)))
	}
	return nil
}

func (m *Mirror) pull(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "pull", "origin", m.branch)
	cmd.Dir = m.root
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.NewSyncFailed(string(ModePull), strings.TrimSpace(string(out)))
	}
	return nil
}
