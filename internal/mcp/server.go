// Package mcp exposes the browse operations as Model Context Protocol
// tools over stdio.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soslens/soslens/internal/browse"
	"github.com/soslens/soslens/internal/config"
)

// Server wraps the MCP server instance.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server with the report browsing tools
// registered against the given service.
func NewServer(version string, svc *browse.Service, cfg config.Config) *Server {
	s := server.NewMCPServer("soslens", version, server.WithLogging())

	h := &handlers{svc: svc, cfg: cfg}
	registerTools(s, h)

	return &Server{mcpServer: s}
}

// Start runs the server in stdio mode (blocking).
func (s *Server) Start(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools adds all supported tools to the server.
func registerTools(s *server.MCPServer, h *handlers) {
	// Tool: query_sos_reports
	queryTool := mcp.NewTool("query_sos_reports",
		mcp.WithDescription("List available sos reports with their metadata. Call this FIRST to obtain the report_id values used by every other tool."),
		mcp.WithString("hostname",
			mcp.Description("Filter by hostname (partial match, case-insensitive)"),
		),
		mcp.WithString("serial_number",
			mcp.Description("Filter by hardware serial number (exact match)"),
		),
		mcp.WithString("date_contains",
			mcp.Description("Filter by creation date (partial match)"),
		),
	)
	s.AddTool(queryTool, h.handleQueryReports)

	// Tool: list_dir
	listTool := mcp.NewTool("list_dir",
		mcp.WithDescription("List contents of a directory within a sos report, paginated. Directories end with '/'. Useful paths: 'etc', 'var/log', 'sos_commands', 'proc'."),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report ID from query_sos_reports"),
		),
		mcp.WithString("path",
			mcp.Description("Path within the report (e.g. 'etc', 'var/log'). Empty string for the report root."),
		),
		mcp.WithNumber("offset",
			mcp.Description("Skip this many items (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Return at most this many items (default 50, max 100)"),
		),
		mcp.WithNumber("max_search",
			mcp.Description("Stop after collecting this many items (default 500, max 2000)"),
		),
	)
	s.AddTool(listTool, h.handleListDir)

	// Tool: find_files_by_name
	findTool := mcp.NewTool("find_files_by_name",
		mcp.WithDescription("Find files by name pattern within a single directory (non-recursive). Matching is case-insensitive, against the filename only. Globstar (**) is not allowed."),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report ID from query_sos_reports"),
		),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Glob pattern to match filenames (e.g. '*swap*', '*.conf', 'ip_*')"),
		),
		mcp.WithString("search_path",
			mcp.Description("Path within the report to search (default: report root)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Skip this many matches (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Return at most this many matches (default 50, max 100)"),
		),
		mcp.WithNumber("max_search",
			mcp.Description("Stop searching after this many matches (default 500, max 2000)"),
		),
	)
	s.AddTool(findTool, h.handleFindFiles)

	// Tool: find_files_by_name_recursive
	findRecursiveTool := mcp.NewTool("find_files_by_name_recursive",
		mcp.WithDescription("Find files by name pattern recursively through all subdirectories. Matching is case-insensitive, against the filename only. Globstar (**) is not allowed."),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report ID from query_sos_reports"),
		),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Glob pattern to match filenames (e.g. '*swap*', '*.conf', 'ip_*')"),
		),
		mcp.WithString("search_path",
			mcp.Description("Path within the report to start the search (default: whole report)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Skip this many matches (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Return at most this many matches (default 50, max 100)"),
		),
		mcp.WithNumber("max_search",
			mcp.Description("Stop searching after this many matches (default 500, max 2000)"),
		),
	)
	s.AddTool(findRecursiveTool, h.handleFindFilesRecursive)

	// Tool: read_file
	readTool := mcp.NewTool("read_file",
		mcp.WithDescription("Read the contents of a file from a sos report with character-based pagination. Useful files: 'etc/hostname', 'etc/os-release', 'var/log/messages', 'sos_commands/networking/ip_addr'."),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report ID from query_sos_reports"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the file within the report (e.g. 'etc/hostname')"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Character offset to start reading (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum characters to return (default and max 10000)"),
		),
	)
	s.AddTool(readTool, h.handleReadFile)

	// Tool: search_file
	searchTool := mcp.NewTool("search_file",
		mcp.WithDescription("Search for text within a file from a sos report, case-insensitive, with optional context lines and character-paginated output. Try 'ERROR' in log files or 'inet ' in networking captures."),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report ID from query_sos_reports"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the file within the report"),
		),
		mcp.WithString("substring",
			mcp.Required(),
			mcp.Description("Text to search for (case-insensitive)"),
		),
		mcp.WithNumber("lines_before",
			mcp.Description("Context lines before each match (default 0)"),
		),
		mcp.WithNumber("lines_after",
			mcp.Description("Context lines after each match (default 0)"),
		),
		mcp.WithNumber("max_matches",
			mcp.Description("Maximum matches to collect (default 50, max 200)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Character position to start the rendered output from (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum characters of rendered output (default 10000, max 50000)"),
		),
	)
	s.AddTool(searchTool, h.handleSearchFile)
}
