package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/mirror"
)

// Tool names. The catalog is fixed: exactly these three tools exist.
const (
	ToolSync        = "sync"
	ToolFileContent = "get-file-content"
	ToolAnalyzeHTML = "analyze-html-structure"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	ToolSync: {
		def: mcp.NewTool(ToolSync,
			mcp.WithDescription("Clone or pull the mirrored repository so the local copy matches the remote branch."),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSync },
	},
	ToolFileContent: {
		def: mcp.NewTool(ToolFileContent,
			mcp.WithDescription("Read a file from the mirrored repository. Content longer than the configured maximum is truncated with a marker."),
			mcp.WithString("file_path",
				mcp.Required(),
				mcp.Description("Path of the file, relative to the repository root"),
			),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFileContent },
	},
	ToolAnalyzeHTML: {
		def: mcp.NewTool(ToolAnalyzeHTML,
			mcp.WithDescription("Extract the CSS classes, element ids, tag names, and per-element breakdown of an HTML file in the mirrored repository."),
			mcp.WithString("file_path",
				mcp.Required(),
				mcp.Description("Path of the HTML file, relative to the repository root"),
			),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnalyzeHTML },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the repoview tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration, so a
// call to them fails at the protocol level like any unknown tool.
func NewServer(m *mirror.Mirror, database *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"repoview",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(m, database, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(m *mirror.Mirror, database *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(m, database, cfg, version)
	return server.ServeStdio(s)
}
