package mirror

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/avelis/repoview/internal/errors"
)

// ReadFile reads a file under the mirror root, addressed by a path
// relative to the root. The resolved path is canonicalized, symlinks
// included, and rejected if it escapes the root. Size bounding is the
// caller's concern; this returns the raw content.
//
// Reads hold the read lock, so they wait out any in-flight sync rather
// than observing a partially updated tree.
func (m *Mirror) ReadFile(rel string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	abs, err := m.resolve(rel)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(rel)
		}
		return "", errors.NewReadFailed(rel, err)
	}
	return string(data), nil
}

// resolve validates rel, joins it to the mirror root, and canonicalizes
// the result. The lexical checks alone are not enough: a symlink
// committed to the mirrored repository can point anywhere, so the path
// is resolved and re-verified against the resolved root.
func (m *Mirror) resolve(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", errors.NewInvalidPath("file path must not be empty")
	}
	if containsTraversal(rel) {
		return "", errors.NewInvalidPath("file path must not contain directory traversal (..)")
	}
	if filepath.IsAbs(rel) {
		return "", errors.NewInvalidPath("file path must be relative to the repository root")
	}

	rootAbs, err := filepath.Abs(m.root)
	if err != nil {
		return "", errors.NewInvalidPath("invalid mirror root: " + err.Error())
	}
	abs, err := filepath.Abs(filepath.Join(rootAbs, filepath.Clean(rel)))
	if err != nil {
		return "", errors.NewInvalidPath("invalid file path: " + err.Error())
	}
	if abs != rootAbs && !strings.HasPrefix(abs, rootAbs+string(filepath.Separator)) {
		return "", errors.NewInvalidPath("file path escapes the repository root")
	}

	rootReal, err := filepath.EvalSymlinks(rootAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(rel)
		}
		return "", errors.NewReadFailed(rel, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(rel)
		}
		return "", errors.NewReadFailed(rel, err)
	}
	if real != rootReal && !strings.HasPrefix(real, rootReal+string(filepath.Separator)) {
		return "", errors.NewInvalidPath("file path resolves outside the repository root")
	}
	return real, nil
}

// containsTraversal checks if path contains ".." directory traversal.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	// Also check forward slashes on all platforms (e.g., user input)
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}
