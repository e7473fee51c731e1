package ops

import (
	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/htmlscan"
	"github.com/avelis/repoview/internal/mirror"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Path string // relative to the mirror root, required
}

// AnalyzeOutput contains the result of the Analyze operation.
type AnalyzeOutput struct {
	htmlscan.Analysis
	Path      string `json:"path"`
	Truncated bool   `json:"truncated"`
}

// Analyze reads an HTML file through the bounded reader and extracts
// its structural inventory. Read errors propagate unchanged; when the
// file was truncated the analysis covers the truncated prefix and the
// output says so.
func Analyze(m *mirror.Mirror, cfg *config.Config, input AnalyzeInput) (*AnalyzeOutput, error) {
	read, err := ReadFile(m, cfg, ReadFileInput{Path: input.Path})
	if err != nil {
		return nil, err
	}

	analysis, err := htmlscan.Scan(read.Content)
	if err != nil {
		return nil, err
	}

	return &AnalyzeOutput{
		Analysis:  *analysis,
		Path:      read.Path,
		Truncated: read.Truncated,
	}, nil
}
