package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/soslens/soslens/internal/browse"
	"github.com/soslens/soslens/internal/config"
	"github.com/soslens/soslens/internal/model"
	"github.com/soslens/soslens/internal/page"
)

// handlers binds the tool callbacks to the browse service and the
// configured response ceiling.
type handlers struct {
	svc *browse.Service
	cfg config.Config
}

// handleQueryReports lists available reports with optional metadata filters.
func (h *handlers) handleQueryReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	filter := model.ReportFilter{
		Hostname:     stringArg(args, "hostname", ""),
		SerialNumber: stringArg(args, "serial_number", ""),
		DateContains: stringArg(args, "date_contains", ""),
	}
	return h.respond(h.svc.DiscoverReports(filter)), nil
}

// handleListDir lists one page of a directory inside a report.
func (h *handlers) handleListDir(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	reportID := stringArg(args, "report", "")
	if reportID == "" {
		return errResult("report is required"), nil
	}
	path := stringArg(args, "path", "")

	listing, opErr := h.svc.ListDirectory(reportID, path,
		intArg(args, "offset", 0),
		intArg(args, "limit", 0),
		intArg(args, "max_search", 0),
	)
	if opErr != nil {
		return h.fail(opErr, map[string]string{"report": reportID, "path": path}), nil
	}
	return h.respond(listing), nil
}

// handleFindFiles searches a single directory for filename matches.
func (h *handlers) handleFindFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.findFiles(request, false)
}

// handleFindFilesRecursive searches a whole subtree for filename matches.
func (h *handlers) handleFindFilesRecursive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.findFiles(request, true)
}

func (h *handlers) findFiles(request mcp.CallToolRequest, recursive bool) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	reportID := stringArg(args, "report", "")
	if reportID == "" {
		return errResult("report is required"), nil
	}
	pattern := stringArg(args, "pattern", "")
	if pattern == "" {
		return errResult("pattern is required"), nil
	}
	searchPath := stringArg(args, "search_path", "")

	result, opErr := h.svc.FindFiles(reportID, pattern, searchPath,
		intArg(args, "offset", 0),
		intArg(args, "limit", 0),
		intArg(args, "max_search", 0),
		recursive,
	)
	if opErr != nil {
		return h.fail(opErr, map[string]string{
			"report":      reportID,
			"pattern":     pattern,
			"search_path": searchPath,
		}), nil
	}
	return h.respond(result), nil
}

// handleReadFile returns one character page of a file.
func (h *handlers) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	reportID := stringArg(args, "report", "")
	if reportID == "" {
		return errResult("report is required"), nil
	}
	path := stringArg(args, "path", "")
	if path == "" {
		return errResult("path is required"), nil
	}

	slice, opErr := h.svc.ReadFile(reportID, path,
		intArg(args, "offset", 0),
		intArg(args, "limit", 0),
	)
	if opErr != nil {
		return h.fail(opErr, map[string]string{"report": reportID, "path": path}), nil
	}
	return h.respond(slice), nil
}

// handleSearchFile searches inside a file and returns rendered matches.
func (h *handlers) handleSearchFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	reportID := stringArg(args, "report", "")
	if reportID == "" {
		return errResult("report is required"), nil
	}
	path := stringArg(args, "path", "")
	if path == "" {
		return errResult("path is required"), nil
	}
	substring := stringArg(args, "substring", "")
	if substring == "" {
		return errResult("substring is required"), nil
	}

	result, opErr := h.svc.SearchFile(reportID, path, substring,
		intArg(args, "lines_before", 0),
		intArg(args, "lines_after", 0),
		intArg(args, "max_matches", 0),
		intArg(args, "offset", 0),
		intArg(args, "limit", 0),
	)
	if opErr != nil {
		return h.fail(opErr, map[string]string{
			"report":    reportID,
			"path":      path,
			"substring": substring,
		}), nil
	}
	return h.respond(result), nil
}

// respond serializes a successful result and applies the byte-ceiling
// backstop. The backstop wraps every operation's output exactly once,
// after all other pagination.
func (h *handlers) respond(v interface{}) *mcp.CallToolResult {
	raw, err := json.Marshal(v)
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err))
	}
	return newTextResult(string(page.Enforce(raw, h.cfg.MaxResponseBytes)))
}

// fail renders a structured error with an echo of the inputs that
// produced it. The byte ceiling applies to error payloads too.
func (h *handlers) fail(opErr *model.OpError, params map[string]string) *mcp.CallToolResult {
	raw, err := json.Marshal(model.ErrorResponse{
		Error:  opErr.Message,
		Kind:   opErr.Kind,
		Params: params,
	})
	if err != nil {
		return errResult(opErr.Message)
	}
	result := newTextResult(string(page.Enforce(raw, h.cfg.MaxResponseBytes)))
	result.IsError = true
	return result
}

// getArgs safely extracts the arguments map from a CallToolRequest.
// Returns an empty map if Arguments is nil or not a map.
func getArgs(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// stringArg extracts a string argument with a default value.
func stringArg(args map[string]interface{}, key, defaultVal string) string {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return defaultVal
	}
	return s
}

// intArg extracts a numeric argument with a default value. JSON numbers
// arrive as float64.
func intArg(args map[string]interface{}, key string, defaultVal int) int {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return defaultVal
}

// newTextResult creates a successful MCP tool result with text content.
func newTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

// errResult creates an MCP tool error result (IsError=true).
// This is returned as a tool-level error, not a transport-level JSON-RPC
// error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
	}
}
