package ops

import (
	"strings"

	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/errors"
	"github.com/avelis/repoview/internal/mirror"
)

// ReadFileInput contains parameters for the ReadFile operation.
type ReadFileInput struct {
	Path string // relative to the mirror root, required
}

// ReadFileOutput contains the result of the ReadFile operation.
// Content holds at most the configured maximum number of characters;
// when Truncated is set, OriginalLength exceeds that maximum.
type ReadFileOutput struct {
	Path           string `json:"path"`
	Content        string `json:"content"`
	Truncated      bool   `json:"truncated"`
	OriginalLength int    `json:"original_length"`
}

// ReadFile reads a file from the mirror, bounded by cfg.MaxFileChars.
// Oversized content is truncated to the first MaxFileChars characters,
// never rejected.
func ReadFile(m *mirror.Mirror, cfg *config.Config, input ReadFileInput) (*ReadFileOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("file_path is required")
	}

	content, err := m.ReadFile(input.Path)
	if err != nil {
		return nil, err
	}

	max := cfg.MaxFileChars
	if max <= 0 {
		max = config.DefaultMaxFileChars
	}

	out := &ReadFileOutput{Path: input.Path, Content: content}
	runes := []rune(content)
	out.OriginalLength = len(runes)
	if out.OriginalLength > max {
		out.Content = string(runes[:max])
		out.Truncated = true
	}
	return out, nil
}
