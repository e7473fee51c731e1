package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/errors"
	"github.com/avelis/repoview/internal/mirror"
	"github.com/avelis/repoview/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	mirror *mirror.Mirror
	db     *sql.DB
	cfg    *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(m *mirror.Mirror, database *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{mirror: m, db: database, cfg: cfg}
}

// Request types for each tool

// FileContentRequest represents the arguments for get-file-content.
type FileContentRequest struct {
	FilePath string `json:"file_path"`
}

// AnalyzeHTMLRequest represents the arguments for analyze-html-structure.
type AnalyzeHTMLRequest struct {
	FilePath string `json:"file_path"`
}

// Handler implementations

// HandleSync handles the sync tool call.
func (h *Handlers) HandleSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := ops.Sync(ctx, h.db, h.mirror)
	if err != nil {
		return errorResult(err), nil
	}

	text := fmt.Sprintf("Repository synced via %s: %s (branch %s) -> %s in %dms",
		out.Mode, out.RemoteURL, out.Branch, out.Root, out.DurationMs)
	return mcp.NewToolResultText(text), nil
}

// HandleFileContent handles the get-file-content tool call.
func (h *Handlers) HandleFileContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FileContentRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if strings.TrimSpace(input.FilePath) == "" {
		return errorResult(errors.NewInvalidRequest("file_path is required")), nil
	}

	out, err := ops.ReadFile(h.mirror, h.cfg, ops.ReadFileInput{Path: input.FilePath})
	if err != nil {
		return errorResult(err), nil
	}

	body := out.Content
	if out.Truncated {
		body += fmt.Sprintf("\n\n[truncated: showing first %d of %d characters]",
			h.maxFileChars(), out.OriginalLength)
	}
	return mcp.NewToolResultText(fmt.Sprintf("File: %s\n\n%s", out.Path, body)), nil
}

// HandleAnalyzeHTML handles the analyze-html-structure tool call.
func (h *Handlers) HandleAnalyzeHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnalyzeHTMLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if strings.TrimSpace(input.FilePath) == "" {
		return errorResult(errors.NewInvalidRequest("file_path is required")), nil
	}

	out, err := ops.Analyze(h.mirror, h.cfg, ops.AnalyzeInput{Path: input.FilePath})
	if err != nil {
		return errorResult(err), nil
	}

	payload, err := json.MarshalIndent(out.Analysis, "", "  ")
	if err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("HTML Analysis for: %s\n\n%s", out.Path, payload)), nil
}

func (h *Handlers) maxFileChars() int {
	if h.cfg != nil && h.cfg.MaxFileChars > 0 {
		return h.cfg.MaxFileChars
	}
	return config.DefaultMaxFileChars
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if rErr, ok := err.(*errors.RepoError); ok {
		errorObj := map[string]any{
			"code":    rErr.Code,
			"message": rErr.Message,
			"status":  rErr.Status,
		}
		if rErr.Code != errors.ErrInternal && rErr.Details != nil {
			errorObj["details"] = rErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}
